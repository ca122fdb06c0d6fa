package http

import (
	"github.com/ychleo102615/hanahuda-sub001/internal/services/game/domain/card"
	"github.com/ychleo102615/hanahuda-sub001/internal/services/game/domain/game"
	"github.com/ychleo102615/hanahuda-sub001/internal/services/game/domain/round"
	"github.com/ychleo102615/hanahuda-sub001/internal/services/game/domain/yaku"
)

// GameView is the client-facing read model of a game. Unlike the
// snapshot it hides the stock ordering: clients learn how many cards
// remain, not which.
type GameView struct {
	GameID         string                `json:"game_id"`
	Players        []game.PlayerSnapshot `json:"players"`
	Scores         map[string]int        `json:"scores"`
	RoundsPlayed   int                   `json:"rounds_played"`
	TotalRounds    int                   `json:"total_rounds"`
	Status         string                `json:"status"`
	ForcedWinnerID string                `json:"forced_winner_id,omitempty"`
	Version        uint64                `json:"version"`
	Round          *RoundView            `json:"round,omitempty"`
}

// RoundView is the client-facing read model of a live round.
type RoundView struct {
	DealerID       string                      `json:"dealer_id"`
	ActivePlayerID string                      `json:"active_player_id"`
	Flow           string                      `json:"flow"`
	StockCount     int                         `json:"stock_count"`
	Field          []card.ID                   `json:"field"`
	Players        [2]game.RoundPlayerSnapshot `json:"players"`
	Koi            [2]game.KoiSnapshot         `json:"koi"`
	Selection      *game.SelectionSnapshot     `json:"selection,omitempty"`
	Decision       *game.DecisionSnapshot      `json:"decision,omitempty"`
	Version        uint64                      `json:"version"`
}

func gameView(s *game.Snapshot) GameView {
	view := GameView{
		GameID:         s.GameID,
		Players:        s.Players,
		Scores:         s.Scores,
		RoundsPlayed:   s.RoundsPlayed,
		TotalRounds:    s.Rules.TotalRounds,
		Status:         s.Status,
		ForcedWinnerID: s.ForcedWinnerID,
		Version:        s.Version,
	}
	if s.Round != nil {
		view.Round = &RoundView{
			DealerID:       s.Round.DealerID,
			ActivePlayerID: s.Round.ActivePlayerID,
			Flow:           s.Round.Flow,
			StockCount:     len(s.Round.Stock),
			Field:          s.Round.Field,
			Players:        s.Round.Players,
			Koi:            s.Round.Koi,
			Selection:      s.Round.Selection,
			Decision:       s.Round.Decision,
			Version:        s.Round.Version,
		}
	}
	return view
}

// CaptureView reports how one card resolved against the field.
type CaptureView struct {
	Played        card.ID   `json:"played"`
	Outcome       string    `json:"outcome"`
	Captured      []card.ID `json:"captured,omitempty"`
	PlacedOnField bool      `json:"placed_on_field,omitempty"`
}

func captureView(c round.Capture) CaptureView {
	return CaptureView{
		Played:        c.Played,
		Outcome:       c.Outcome.Kind.String(),
		Captured:      c.Captured,
		PlacedOnField: c.PlacedOnField,
	}
}

// YakuView is one active pattern.
type YakuView struct {
	Type   string    `json:"type"`
	Points int       `json:"points"`
	Cards  []card.ID `json:"cards,omitempty"`
}

func yakuViews(active []yaku.Active) []YakuView {
	if len(active) == 0 {
		return nil
	}
	views := make([]YakuView, len(active))
	for i, a := range active {
		views[i] = YakuView{Type: string(a.Type), Points: a.Points, Cards: a.Cards}
	}
	return views
}

// EndView reports a settled round.
type EndView struct {
	WinnerID      string     `json:"winner_id,omitempty"`
	ActiveYaku    []YakuView `json:"active_yaku,omitempty"`
	BasePoints    int        `json:"base_points"`
	FinalPoints   int        `json:"final_points"`
	KoiMultiplier int        `json:"koi_multiplier"`
	KoiApplied    bool       `json:"koi_applied"`
	Doubled       bool       `json:"doubled"`
	IsDraw        bool       `json:"is_draw"`
	SpecialRule   string     `json:"special_rule,omitempty"`
}

func endView(end *round.EndResult) *EndView {
	if end == nil {
		return nil
	}
	view := &EndView{
		WinnerID:      end.WinnerID,
		ActiveYaku:    yakuViews(end.ActiveYaku),
		BasePoints:    end.BasePoints,
		FinalPoints:   end.FinalPoints,
		KoiMultiplier: end.KoiMultiplier,
		KoiApplied:    end.KoiApplied,
		Doubled:       end.Doubled,
		IsDraw:        end.IsDraw,
	}
	if end.SpecialRule.String() != "none" {
		view.SpecialRule = end.SpecialRule.String()
	}
	return view
}

// PlayResponse is the result of a hand-play command.
type PlayResponse struct {
	HandPlay CaptureView  `json:"hand_play"`
	Drawn    *card.ID     `json:"drawn,omitempty"`
	DrawPlay *CaptureView `json:"draw_play,omitempty"`
	NewYaku  []YakuView   `json:"new_yaku,omitempty"`
	Flow     string       `json:"flow"`
	End      *EndView     `json:"end,omitempty"`
	Game     GameView     `json:"game"`
}

// SelectResponse is the result of a target-selection command.
type SelectResponse struct {
	DrawPlay CaptureView `json:"draw_play"`
	NewYaku  []YakuView  `json:"new_yaku,omitempty"`
	Flow     string      `json:"flow"`
	End      *EndView    `json:"end,omitempty"`
	Game     GameView    `json:"game"`
}

// DecisionResponse is the result of a koi-koi decision command.
type DecisionResponse struct {
	Decision string   `json:"decision"`
	Flow     string   `json:"flow"`
	End      *EndView `json:"end,omitempty"`
	Game     GameView `json:"game"`
}
