//go:build integration

package ratelimit

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

type RedisLimiterTestSuite struct {
	suite.Suite
	client *redis.Client
}

func (suite *RedisLimiterTestSuite) SetupSuite() {
	ctx := context.Background()

	cont, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		suite.T().Fatalf("Failed to start redis container: %v", err)
	}
	suite.T().Cleanup(func() {
		if err := cont.Terminate(ctx); err != nil {
			suite.T().Fatalf("Failed to terminate redis container: %v", err)
		}
	})

	endpoint, err := cont.Endpoint(ctx, "")
	if err != nil {
		suite.T().Fatalf("Failed to get redis endpoint: %v", err)
	}

	suite.client = redis.NewClient(&redis.Options{Addr: endpoint})
	suite.T().Cleanup(func() {
		suite.client.Close()
	})
}

func (suite *RedisLimiterTestSuite) SetupSubTest() {
	if err := suite.client.FlushDB(context.Background()).Err(); err != nil {
		suite.T().Fatalf("Failed to flush redis: %v", err)
	}
}

func (suite *RedisLimiterTestSuite) TestAllow() {
	ctx := context.Background()

	suite.Run("eleventh request is throttled", func() {
		l := NewRedisLimiter(suite.client, 10, time.Minute)

		for i := 1; i <= 10; i++ {
			res, err := l.Allow(ctx, "10.0.0.1")

			suite.NoError(err)
			suite.True(res.Allowed, "request %d", i)
			suite.Equal(10-i, res.Remaining)
		}

		res, err := l.Allow(ctx, "10.0.0.1")

		suite.NoError(err)
		suite.False(res.Allowed)
		suite.Positive(res.ResetAfter)
		suite.LessOrEqual(res.ResetAfter, time.Minute)
	})

	suite.Run("keys are independent", func() {
		l := NewRedisLimiter(suite.client, 1, time.Minute)

		res, err := l.Allow(ctx, "10.0.0.1")
		suite.NoError(err)
		suite.True(res.Allowed)

		res, err = l.Allow(ctx, "10.0.0.1")
		suite.NoError(err)
		suite.False(res.Allowed)

		res, err = l.Allow(ctx, "10.0.0.2")
		suite.NoError(err)
		suite.True(res.Allowed)
	})

	suite.Run("window expires", func() {
		l := NewRedisLimiter(suite.client, 1, 200*time.Millisecond)

		res, _ := l.Allow(ctx, "10.0.0.1")
		suite.True(res.Allowed)

		res, _ = l.Allow(ctx, "10.0.0.1")
		suite.False(res.Allowed)

		suite.Eventually(func() bool {
			res, err := l.Allow(ctx, "10.0.0.1")
			return err == nil && res.Allowed
		}, 2*time.Second, 100*time.Millisecond)
	})

	suite.Run("concurrent requests never exceed limit", func() {
		l := NewRedisLimiter(suite.client, 10, time.Minute)

		var (
			wg      sync.WaitGroup
			allowed atomic.Int64
		)

		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()

				res, err := l.Allow(ctx, "10.0.0.1")
				if err == nil && res.Allowed {
					allowed.Add(1)
				}
			}()
		}

		wg.Wait()

		suite.Equal(int64(10), allowed.Load())
	})
}

func TestRedisLimiter(t *testing.T) {
	suite.Run(t, new(RedisLimiterTestSuite))
}
