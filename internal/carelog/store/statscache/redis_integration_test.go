//go:build integration

package statscache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"plantcare/internal/carelog/models"
	"plantcare/pkg/testutil/containers"
)

type RedisCacheSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	cache *RedisCache
}

func TestRedisCacheSuite(t *testing.T) {
	suite.Run(t, new(RedisCacheSuite))
}

func (s *RedisCacheSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.cache = NewRedis(s.redis.Client, WithTTL(time.Minute))
}

func (s *RedisCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisCacheSuite) TestRoundTripAndInvalidate() {
	ctx := context.Background()

	_, ok, err := s.cache.Get(ctx)
	s.Require().NoError(err)
	s.False(ok)

	st := &models.Stats{Total: 3, Successful: 2, Failed: 1, SuccessRate: 66.7, ByType: map[string]int{"watering": 3}}
	s.Require().NoError(s.cache.Set(ctx, st))

	got, ok, err := s.cache.Get(ctx)
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Equal(*st, *got)

	ttl, err := s.redis.Client.TTL(ctx, statsKey).Result()
	s.Require().NoError(err)
	s.Positive(ttl)

	s.Require().NoError(s.cache.Invalidate(ctx))
	_, ok, err = s.cache.Get(ctx)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *RedisCacheSuite) TestCorruptSnapshotIsAMiss() {
	ctx := context.Background()
	s.Require().NoError(s.redis.Client.Set(ctx, statsKey, "not json", time.Minute).Err())

	_, ok, err := s.cache.Get(ctx)
	s.Require().NoError(err)
	s.False(ok)
}
