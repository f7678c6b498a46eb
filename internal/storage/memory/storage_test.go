package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/mcoot/piranhas-client/internal/model"
	"github.com/stretchr/testify/suite"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) TestSaveAndGetEvaluation() {
	err := s.storage.SaveEvaluation(s.ctx, "board-a", 42)
	s.Require().NoError(err)

	score, err := s.storage.GetEvaluation(s.ctx, "board-a")
	s.Require().NoError(err)
	s.Equal(42, score)
	s.Equal(1, s.storage.Len())
}

func (s *StorageSuite) TestGetEvaluationNotFound() {
	_, err := s.storage.GetEvaluation(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrEvaluationNotFound)
}

func (s *StorageSuite) TestSaveOverwrites() {
	s.Require().NoError(s.storage.SaveEvaluation(s.ctx, "board-a", 1))
	s.Require().NoError(s.storage.SaveEvaluation(s.ctx, "board-a", -7))

	score, err := s.storage.GetEvaluation(s.ctx, "board-a")
	s.Require().NoError(err)
	s.Equal(-7, score)
}

func (s *StorageSuite) TestConcurrentAccess() {
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = s.storage.SaveEvaluation(s.ctx, "shared", n)
			_, _ = s.storage.GetEvaluation(s.ctx, "shared")
		}(i)
	}
	wg.Wait()

	_, err := s.storage.GetEvaluation(s.ctx, "shared")
	s.NoError(err)
	s.NoError(s.storage.Close())
}
