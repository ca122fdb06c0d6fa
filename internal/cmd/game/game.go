// Package game parses game service flags and launches the service.
package game

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	entrypoint "github.com/ychleo102615/hanahuda-sub001/internal/platform/cmd"
	gamehttp "github.com/ychleo102615/hanahuda-sub001/internal/services/game/api/http"
	"github.com/ychleo102615/hanahuda-sub001/internal/services/game/app"
	gamesqlite "github.com/ychleo102615/hanahuda-sub001/internal/services/game/storage/sqlite"
)

const shutdownTimeout = 5 * time.Second

// Config holds game command configuration.
type Config struct {
	Addr   string `env:"HANAFUDA_GAME_ADDR" envDefault:":8080"`
	DBPath string `env:"HANAFUDA_GAME_DB_PATH"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "The game HTTP server address")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "The game SQLite database path")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		cfg.DBPath = filepath.Join("data", "games.db")
	}
	return cfg, nil
}

// Run starts the game HTTP API service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceGame, func(context.Context) error {
		return serve(ctx, cfg)
	})
}

func serve(ctx context.Context, cfg Config) error {
	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Addr, err)
	}

	store, err := gamesqlite.Open(cfg.DBPath)
	if err != nil {
		_ = listener.Close()
		return fmt.Errorf("open game store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("close game store: %v", err)
		}
	}()

	server := &http.Server{Handler: gamehttp.NewHandler(app.NewService(store))}

	log.Printf("game server listening at %v", listener.Addr())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
