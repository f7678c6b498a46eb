package bot

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mcoot/piranhas-client/internal/dependencies/clock"
	"github.com/mcoot/piranhas-client/internal/model"
	"github.com/mcoot/piranhas-client/internal/protocol"
)

// DefaultMoveTimeout keeps the bot well below the server's soft timeout
const DefaultMoveTimeout = 1500 * time.Millisecond

// Service creates bot players backed by named strategies
type Service struct {
	strategies  map[string]Strategy
	moveTimeout time.Duration
	clock       clock.Clock
	logger      *slog.Logger
}

// NewService creates a new bot Service
func NewService(
	strategies map[string]Strategy,
	moveTimeout time.Duration,
	clk clock.Clock,
	logger *slog.Logger,
) *Service {
	if moveTimeout <= 0 {
		moveTimeout = DefaultMoveTimeout
	}
	return &Service{
		strategies:  strategies,
		moveTimeout: moveTimeout,
		clock:       clk,
		logger:      logger.With(slog.String("component", "bot")),
	}
}

// Strategy returns the strategy registered under name
func (s *Service) Strategy(name string) (Strategy, error) {
	st, ok := s.strategies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrUnknownStrategy, name)
	}
	return st, nil
}

// NewPlayer creates a player for color using the named strategy
func (s *Service) NewPlayer(strategyName string, color model.PlayerColor) (*Player, error) {
	st, err := s.Strategy(strategyName)
	if err != nil {
		return nil, err
	}

	s.logger.Info("bot player created",
		slog.String("strategy", strategyName),
		slog.String("color", color.String()),
	)

	return &Player{
		color:        color,
		strategyName: strategyName,
		strategy:     st,
		moveTimeout:  s.moveTimeout,
		clock:        s.clock,
		logger: s.logger.With(
			slog.String("strategy", strategyName),
			slog.String("color", color.String()),
		),
	}, nil
}

// LogicFactory checks the strategy name up front and returns a factory
// creating one player per game
func (s *Service) LogicFactory(strategyName string) (protocol.LogicFactory, error) {
	if _, err := s.Strategy(strategyName); err != nil {
		return nil, err
	}
	return func(color model.PlayerColor) protocol.Logic {
		player, err := s.NewPlayer(strategyName, color)
		if err != nil {
			return nil
		}
		return player
	}, nil
}
