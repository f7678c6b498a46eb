package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/piranhas-client/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.EvaluationTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) TestSaveAndGetEvaluation() {
	err := s.storage.SaveEvaluation(s.ctx, "RB-X", 1003)
	s.Require().NoError(err)

	score, err := s.storage.GetEvaluation(s.ctx, "RB-X")
	s.Require().NoError(err)
	s.Equal(1003, score)
}

func (s *StorageSuite) TestEvaluationKeyLayout() {
	s.Require().NoError(s.storage.SaveEvaluation(s.ctx, "abc", -4))

	raw, err := s.mini.Get("piranhas:eval:abc")
	s.Require().NoError(err)
	s.Equal("-4", raw)
	s.Equal(time.Hour, s.mini.TTL("piranhas:eval:abc"))
}

func (s *StorageSuite) TestGetEvaluationNotFound() {
	_, err := s.storage.GetEvaluation(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrEvaluationNotFound)
}

func (s *StorageSuite) TestEvaluationExpires() {
	s.Require().NoError(s.storage.SaveEvaluation(s.ctx, "old", 5))

	s.mini.FastForward(2 * time.Hour)

	_, err := s.storage.GetEvaluation(s.ctx, "old")
	s.ErrorIs(err, model.ErrEvaluationNotFound)
}

func (s *StorageSuite) TestZeroTTLKeepsEvaluation() {
	client := redis.NewClient(&redis.Options{Addr: s.mini.Addr()})
	cfg := DefaultConfig()
	cfg.EvaluationTTL = 0
	store := NewWithClient(client, cfg)
	defer store.Close()

	s.Require().NoError(store.SaveEvaluation(s.ctx, "forever", 9))
	s.Equal(time.Duration(0), s.mini.TTL("piranhas:eval:forever"))
}

func (s *StorageSuite) TestCorruptValueIsError() {
	s.Require().NoError(s.mini.Set("piranhas:eval:bad", "not-a-number"))

	_, err := s.storage.GetEvaluation(s.ctx, "bad")
	s.Require().Error(err)
	s.NotErrorIs(err, model.ErrEvaluationNotFound)
}

func (s *StorageSuite) TestNewWithUnreachableServer() {
	cfg := DefaultConfig()
	cfg.URL = "redis://127.0.0.1:1"

	_, err := New(cfg)
	s.Error(err)
}

func (s *StorageSuite) TestNewWithMiniredis() {
	cfg := DefaultConfig()
	cfg.URL = "redis://" + s.mini.Addr()

	store, err := New(cfg)
	s.Require().NoError(err)
	defer store.Close()

	s.Require().NoError(store.SaveEvaluation(s.ctx, "k", 1))
	score, err := s.storage.GetEvaluation(s.ctx, "k")
	s.Require().NoError(err)
	s.Equal(1, score)
}
