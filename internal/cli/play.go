package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/mcoot/piranhas-client/internal/api"
	"github.com/mcoot/piranhas-client/internal/factory"
	"github.com/mcoot/piranhas-client/internal/observer"
	"github.com/mcoot/piranhas-client/internal/protocol"
	redisstorage "github.com/mcoot/piranhas-client/internal/storage/redis"
	"github.com/mcoot/piranhas-client/internal/transport"
	"github.com/mcoot/piranhas-client/internal/web"
)

// play runs one game with a validated config and prints its summary
func play(ctx context.Context, cfg *Config, stdout, stderr io.Writer) error {
	logger, err := NewLogger(cfg.LogFormat, cfg.LogLevel, stderr)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	factoryCfg := factory.Config{
		Logger:       logger,
		StorageType:  cfg.Cache,
		MoveTimeout:  cfg.MoveTimeout,
		EnableEvents: cfg.StatusAddr != "",
	}
	if cfg.Cache == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	}
	if cfg.Seeded {
		seed := cfg.Seed
		factoryCfg.Seed = &seed
	}

	app, err := factory.New(factoryCfg)
	if err != nil {
		return fmt.Errorf("create application: %w", err)
	}
	defer func() { _ = app.Close() }()

	if cfg.StatusAddr != "" {
		server, err := startStatusServer(cfg, app, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := server.Shutdown(context.Background()); err != nil {
				logger.Warn("status server shutdown failed", slog.String("error", err.Error()))
			}
		}()
	}

	conn, err := transport.Dial(ctx, cfg.Host, cfg.Port)
	if err != nil {
		return err
	}
	logger.Info("connected", slog.String("server", conn.RemoteAddr()))

	session, err := app.NewSession(conn, protocol.Config{
		GameType:    protocol.GameType,
		Reservation: cfg.Reservation,
	}, cfg.Strategy)
	if err != nil {
		_ = conn.Close()
		return err
	}

	// A blocked Receive only returns once the connection is closed
	stopClose := context.AfterFunc(ctx, func() { _ = conn.Close() })
	runErr := session.Run(ctx)
	stopClose()
	_ = conn.Close()

	if runErr != nil && ctx.Err() != nil && !errors.Is(runErr, ctx.Err()) {
		runErr = errors.Join(ctx.Err(), runErr)
	}

	NewOutput(cfg.Output, stdout).Print(summarize(session, app.Tracker, runErr))
	return runErr
}

// startStatusServer binds the status server and serves it in the background
func startStatusServer(cfg *Config, app *factory.App, logger *slog.Logger) (*api.Server, error) {
	serverCfg, err := cfg.statusServerConfig()
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/api/", api.NewRouter(api.RouterConfig{
		Logger:  logger,
		Tracker: app.Tracker,
		Hub:     app.Hub,
		Version: Version,
	}))
	mux.Handle("/", web.NewRouter(web.RouterConfig{
		Logger:  logger,
		Tracker: app.Tracker,
		Live:    app.Hub != nil,
	}))

	server := api.NewServer(mux, serverCfg, logger)
	if err := server.Listen(); err != nil {
		return nil, err
	}
	go func() {
		if err := server.Start(); err != nil {
			logger.Error("status server failed", slog.String("error", err.Error()))
		}
	}()
	return server, nil
}

func summarize(session *protocol.Session, tracker *observer.Tracker, runErr error) Summary {
	s := Summary{
		SessionID: session.ID(),
		RoomID:    session.RoomID(),
		Color:     session.Color().String(),
		Phase:     session.Phase().String(),
	}
	if b := session.Board(); b != nil {
		s.Turn = b.Turn()
	}
	if view := tracker.View(); view.Result != nil {
		s.Result = &Result{
			Winner:      view.Result.Winner,
			WinnerColor: view.Result.WinnerColor.String(),
			Draw:        view.Result.Draw,
		}
		for _, sc := range view.Result.Scores {
			s.Result.Scores = append(s.Result.Scores, Score{
				Cause:  string(sc.Cause),
				Reason: sc.Reason,
				Values: sc.Values,
			})
		}
	}
	if runErr != nil {
		s.Error = runErr.Error()
	}
	return s
}
