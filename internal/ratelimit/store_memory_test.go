package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const (
	testLimit  = 5
	testWindow = time.Minute
)

type InMemoryBucketStoreSuite struct {
	suite.Suite
	store *InMemoryBucketStore
	ctx   context.Context
}

func TestInMemoryBucketStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryBucketStoreSuite))
}

func (s *InMemoryBucketStoreSuite) SetupTest() {
	s.store = NewInMemoryBucketStore()
	s.ctx = context.Background()
}

func (s *InMemoryBucketStoreSuite) TestPeek() {
	s.Run("fresh key is allowed with full quota", func() {
		result, err := s.store.Peek(s.ctx, "key:fresh", testLimit, testWindow)
		s.Require().NoError(err)
		s.True(result.Allowed)
		s.Equal(testLimit, result.Limit)
		s.Equal(testLimit, result.Remaining)
	})

	s.Run("peek does not consume quota", func() {
		for range testLimit * 2 {
			_, err := s.store.Peek(s.ctx, "key:peek", testLimit, testWindow)
			s.Require().NoError(err)
		}
		result, err := s.store.Peek(s.ctx, "key:peek", testLimit, testWindow)
		s.Require().NoError(err)
		s.True(result.Allowed)
		s.Equal(testLimit, result.Remaining)
	})

	s.Run("key at limit is denied with retry metadata", func() {
		for range testLimit {
			s.Require().NoError(s.store.Record(s.ctx, "key:full", testWindow))
		}
		result, err := s.store.Peek(s.ctx, "key:full", testLimit, testWindow)
		s.Require().NoError(err)
		s.False(result.Allowed)
		s.Equal(0, result.Remaining)
		s.Positive(result.RetryAfter)
		s.WithinDuration(time.Now().Add(testWindow), result.ResetAt, 2*time.Second)
	})
}

func (s *InMemoryBucketStoreSuite) TestRecord() {
	s.Run("each record consumes one unit", func() {
		for i := 1; i <= 3; i++ {
			s.Require().NoError(s.store.Record(s.ctx, "key:record", testWindow))
			result, err := s.store.Peek(s.ctx, "key:record", testLimit, testWindow)
			s.Require().NoError(err)
			s.Equal(testLimit-i, result.Remaining)
		}
	})

	s.Run("expired attempts fall out of the window", func() {
		store := NewInMemoryBucketStore()
		s.Require().NoError(store.Record(s.ctx, "key:expire", 10*time.Millisecond))
		time.Sleep(20 * time.Millisecond)
		result, err := store.Peek(s.ctx, "key:expire", testLimit, 10*time.Millisecond)
		s.Require().NoError(err)
		s.Equal(testLimit, result.Remaining)
	})
}

func (s *InMemoryBucketStoreSuite) TestReset() {
	for range testLimit {
		s.Require().NoError(s.store.Record(s.ctx, "key:reset", testWindow))
	}
	s.Require().NoError(s.store.Reset(s.ctx, "key:reset"))

	result, err := s.store.Peek(s.ctx, "key:reset", testLimit, testWindow)
	s.Require().NoError(err)
	s.True(result.Allowed)
	s.Equal(testLimit, result.Remaining)
}
