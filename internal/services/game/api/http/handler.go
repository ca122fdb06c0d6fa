// Package http exposes the game service as a JSON API. It is a thin
// transport: all rules live in the domain, all sequencing in the app
// service.
package http

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/ychleo102615/hanahuda-sub001/internal/platform/errors"
	"github.com/ychleo102615/hanahuda-sub001/internal/services/game/app"
	"github.com/ychleo102615/hanahuda-sub001/internal/services/game/domain/card"
	"github.com/ychleo102615/hanahuda-sub001/internal/services/game/domain/game"
	"github.com/ychleo102615/hanahuda-sub001/internal/services/game/domain/round"
)

const tracerName = "hanahuda.game.api"

// Handler serves the game JSON API.
type Handler struct {
	svc    *app.Service
	tracer trace.Tracer
}

// NewHandler builds the API routes over the given service.
func NewHandler(svc *app.Service) http.Handler {
	h := &Handler{
		svc:    svc,
		tracer: otel.Tracer(tracerName),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/games", h.handleCreate)
	mux.HandleFunc("GET /v1/games", h.handleList)
	mux.HandleFunc("GET /v1/games/{gameID}", h.handleGet)
	mux.HandleFunc("GET /v1/games/{gameID}/snapshot", h.handleSnapshot)
	mux.HandleFunc("POST /v1/games/{gameID}/join", h.handleJoin)
	mux.HandleFunc("POST /v1/games/{gameID}/play", h.handlePlay)
	mux.HandleFunc("POST /v1/games/{gameID}/select", h.handleSelect)
	mux.HandleFunc("POST /v1/games/{gameID}/decision", h.handleDecision)
	mux.HandleFunc("POST /v1/games/{gameID}/leave", h.handleLeave)
	return mux
}

type createRequest struct {
	PlayerID    string `json:"player_id"`
	PlayerName  string `json:"player_name"`
	TotalRounds int    `json:"total_rounds"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "create_game")
	defer span.End()

	var req createRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	var rules *game.Ruleset
	if req.TotalRounds > 0 {
		custom := game.DefaultRuleset()
		custom.TotalRounds = req.TotalRounds
		rules = &custom
	}

	snapshot, err := h.svc.CreateGame(ctx, game.Player{ID: req.PlayerID, Name: req.PlayerName}, rules)
	if err != nil {
		writeError(w, err)
		return
	}
	span.SetAttributes(attribute.String("game.id", snapshot.GameID))
	writeJSON(w, http.StatusCreated, gameView(snapshot))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "list_games")
	defer span.End()

	pageSize := 50
	page, err := h.svc.ListGames(ctx, pageSize, strings.TrimSpace(r.URL.Query().Get("page_token")))
	if err != nil {
		writeError(w, err)
		return
	}

	type listResponse struct {
		Games         []GameView `json:"games"`
		NextPageToken string     `json:"next_page_token,omitempty"`
	}
	resp := listResponse{Games: make([]GameView, 0, len(page.Games)), NextPageToken: page.NextPageToken}
	for _, record := range page.Games {
		resp.Games = append(resp.Games, gameView(record.Snapshot))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "get_game")
	defer span.End()

	snapshot, err := h.svc.Snapshot(ctx, r.PathValue("gameID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, gameView(snapshot))
}

// handleSnapshot returns the full stored snapshot, stock ordering
// included. It exists for persistence tooling, not for players.
func (h *Handler) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "get_snapshot")
	defer span.End()

	snapshot, err := h.svc.Snapshot(ctx, r.PathValue("gameID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

type joinRequest struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

func (h *Handler) handleJoin(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "join_game")
	defer span.End()

	var req joinRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	snapshot, err := h.svc.JoinGame(ctx, r.PathValue("gameID"), game.Player{ID: req.PlayerID, Name: req.PlayerName})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, gameView(snapshot))
}

type playRequest struct {
	PlayerID string   `json:"player_id"`
	Card     card.ID  `json:"card"`
	Target   *card.ID `json:"target,omitempty"`
}

func (h *Handler) handlePlay(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "play_hand_card")
	defer span.End()

	var req playRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, snapshot, err := h.svc.PlayHandCard(ctx, r.PathValue("gameID"), req.PlayerID, req.Card, req.Target)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := PlayResponse{
		HandPlay: captureView(result.HandPlay),
		Drawn:    result.Drawn,
		NewYaku:  yakuViews(result.NewYaku),
		Flow:     result.Flow.String(),
		End:      endView(result.End),
		Game:     gameView(snapshot),
	}
	if result.DrawPlay != nil {
		view := captureView(*result.DrawPlay)
		resp.DrawPlay = &view
	}
	writeJSON(w, http.StatusOK, resp)
}

type selectRequest struct {
	PlayerID string  `json:"player_id"`
	Target   card.ID `json:"target"`
}

func (h *Handler) handleSelect(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "select_target")
	defer span.End()

	var req selectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, snapshot, err := h.svc.SelectTarget(ctx, r.PathValue("gameID"), req.PlayerID, req.Target)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SelectResponse{
		DrawPlay: captureView(result.DrawPlay),
		NewYaku:  yakuViews(result.NewYaku),
		Flow:     result.Flow.String(),
		End:      endView(result.End),
		Game:     gameView(snapshot),
	})
}

type decisionRequest struct {
	PlayerID string `json:"player_id"`
	Decision string `json:"decision"`
}

func (h *Handler) handleDecision(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "make_decision")
	defer span.End()

	var req decisionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	var decision round.Decision
	switch req.Decision {
	case round.DecisionKoiKoi.String():
		decision = round.DecisionKoiKoi
	case round.DecisionEndRound.String():
		decision = round.DecisionEndRound
	default:
		writeError(w, apperrors.New(apperrors.CodeMalformedRequest,
			fmt.Sprintf("unknown decision %q", req.Decision)))
		return
	}

	result, snapshot, err := h.svc.MakeDecision(ctx, r.PathValue("gameID"), req.PlayerID, decision)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DecisionResponse{
		Decision: result.Decision.String(),
		Flow:     result.Flow.String(),
		End:      endView(result.End),
		Game:     gameView(snapshot),
	})
}

type leaveRequest struct {
	PlayerID string `json:"player_id"`
}

func (h *Handler) handleLeave(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "leave_game")
	defer span.End()

	var req leaveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	snapshot, err := h.svc.Leave(ctx, r.PathValue("gameID"), req.PlayerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, gameView(snapshot))
}

func decodeJSON(r *http.Request, target any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return apperrors.Wrap(apperrors.CodeMalformedRequest, "decode request body", err)
	}
	return nil
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func writeError(w http.ResponseWriter, err error) {
	code := apperrors.CodeOf(err)
	status := code.HTTPStatus()
	if status == http.StatusInternalServerError {
		log.Printf("internal error: %v", err)
	}

	var body errorBody
	body.Error.Code = string(code)
	body.Error.Message = err.Error()
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(value); err != nil {
		log.Printf("encode response: %v", err)
	}
}
