package random

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type RandomSuite struct {
	suite.Suite
}

func TestRandomSuite(t *testing.T) {
	suite.Run(t, new(RandomSuite))
}

func (s *RandomSuite) TestSameSeedSameSequence() {
	a, b := NewSeeded(7), NewSeeded(7)
	for i := 0; i < 50; i++ {
		s.Equal(a.Intn(100), b.Intn(100))
	}
}

func (s *RandomSuite) TestIntnRange() {
	r := New()
	for i := 0; i < 200; i++ {
		v := r.Intn(8)
		s.GreaterOrEqual(v, 0)
		s.Less(v, 8)
	}
	s.Equal(0, r.Intn(0))
	s.Equal(0, r.Intn(-3))
}

func (s *RandomSuite) TestShuffleIsPermutation() {
	values := []int{0, 1, 2, 3, 4, 5, 6, 7}
	NewSeeded(1).Shuffle(len(values), func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})
	s.ElementsMatch([]int{0, 1, 2, 3, 4, 5, 6, 7}, values)
}
