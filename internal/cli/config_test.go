package cli

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/piranhas-client/internal/factory"
	"github.com/mcoot/piranhas-client/internal/model"
	"github.com/mcoot/piranhas-client/internal/services/bot"
)

type ConfigSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigSuite))
}

func (s *ConfigSuite) SetupTest() {
	for _, key := range []string{
		"PIRANHAS_HOST", "PIRANHAS_PORT", "PIRANHAS_RESERVATION", "PIRANHAS_STRATEGY",
		"PIRANHAS_MOVE_TIMEOUT", "PIRANHAS_SEED", "PIRANHAS_STATUS_ADDR", "PIRANHAS_CACHE",
		"PIRANHAS_REDIS_URL", "PIRANHAS_LOG_LEVEL", "PIRANHAS_LOG_FORMAT",
	} {
		s.T().Setenv(key, "")
	}
}

func (s *ConfigSuite) TestDefaults() {
	c := DefaultConfig()
	s.Equal("127.0.0.1", c.Host)
	s.Equal(13050, c.Port)
	s.Equal(model.BotStrategyRandom, c.Strategy)
	s.Equal(factory.StorageTypeMemory, c.Cache)
	s.Equal("info", c.LogLevel)
	s.Equal("json", c.LogFormat)
	s.False(c.Seeded)
	s.NoError(c.Validate())
}

func (s *ConfigSuite) TestEnvironmentOverrides() {
	s.T().Setenv("PIRANHAS_HOST", "game.example")
	s.T().Setenv("PIRANHAS_PORT", "14000")
	s.T().Setenv("PIRANHAS_RESERVATION", "abc")
	s.T().Setenv("PIRANHAS_STRATEGY", "swarm")
	s.T().Setenv("PIRANHAS_MOVE_TIMEOUT", "250ms")
	s.T().Setenv("PIRANHAS_SEED", "42")

	c := DefaultConfig()
	s.Equal("game.example", c.Host)
	s.Equal(14000, c.Port)
	s.Equal("abc", c.Reservation)
	s.Equal(model.BotStrategySwarm, c.Strategy)
	s.Equal(250*time.Millisecond, c.MoveTimeout)
	s.True(c.Seeded)
	s.Equal(uint64(42), c.Seed)
	s.NoError(c.Validate())
}

func (s *ConfigSuite) TestMalformedPortFailsValidation() {
	s.T().Setenv("PIRANHAS_PORT", "http")

	s.Error(DefaultConfig().Validate())
}

func (s *ConfigSuite) TestMalformedNumericEnvFailsValidation() {
	s.T().Setenv("PIRANHAS_MOVE_TIMEOUT", "soon")
	s.T().Setenv("PIRANHAS_SEED", "-3")

	cfg := DefaultConfig()
	s.Equal(bot.DefaultMoveTimeout, cfg.MoveTimeout)
	s.False(cfg.Seeded)

	err := cfg.Validate()
	s.Require().Error(err)
	s.Contains(err.Error(), "PIRANHAS_MOVE_TIMEOUT")
	s.Contains(err.Error(), "PIRANHAS_SEED")
}

func (s *ConfigSuite) TestFlagReplacesMalformedEnv() {
	s.T().Setenv("PIRANHAS_SEED", "lucky")

	cfg := DefaultConfig()
	cfg.Seed = 7
	cfg.flagSet("seed")

	s.NoError(cfg.Validate())
}

func (s *ConfigSuite) TestLocalhostIsNormalised() {
	for _, host := range []string{"", "localhost", "LocalHost"} {
		c := DefaultConfig()
		c.Host = host
		s.Require().NoError(c.Validate())
		s.Equal("127.0.0.1", c.Host, host)
	}
}

func (s *ConfigSuite) TestValidateCollectsErrors() {
	c := DefaultConfig()
	c.Port = 70000
	c.Strategy = "minimax"
	c.Cache = "sqlite"
	c.LogLevel = "loud"

	err := c.Validate()
	s.Require().Error(err)
	s.ErrorIs(err, model.ErrUnknownStrategy)
	s.Contains(err.Error(), "port")
	s.Contains(err.Error(), "cache")
	s.Contains(err.Error(), "log level")
}

func (s *ConfigSuite) TestRedisCacheNeedsURL() {
	c := DefaultConfig()
	c.Cache = factory.StorageTypeRedis
	s.Error(c.Validate())

	c.RedisURL = "redis://localhost:6379"
	s.NoError(c.Validate())
}

func (s *ConfigSuite) TestStatusAddr() {
	c := DefaultConfig()
	c.StatusAddr = "localhost:8081"
	s.Require().NoError(c.Validate())

	serverCfg, err := c.statusServerConfig()
	s.Require().NoError(err)
	s.Equal("localhost", serverCfg.Host)
	s.Equal(8081, serverCfg.Port)

	c.StatusAddr = "8081"
	s.Error(c.Validate())
}

func (s *ConfigSuite) TestNewLogger() {
	var buf bytes.Buffer
	logger, err := NewLogger("text", "warn", &buf)
	s.Require().NoError(err)

	logger.Info("hidden")
	logger.Warn("shown", slog.String("k", "v"))
	s.NotContains(buf.String(), "hidden")
	s.Contains(buf.String(), "k=v")

	buf.Reset()
	logger, err = NewLogger("json", "debug", &buf)
	s.Require().NoError(err)
	logger.Debug("detail")
	s.Contains(buf.String(), `"msg":"detail"`)

	_, err = NewLogger("json", "verbose", &buf)
	s.Error(err)
}
