//go:build integration

package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"curbo/pkg/testutil/containers"
)

func TestRedisBucketStore_Integration(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	defer rc.Cleanup(t)

	store := NewRedisBucketStore(rc.Client)
	ctx := context.Background()

	t.Run("peek then record round trip", func(t *testing.T) {
		result, err := store.Peek(ctx, "it:caller", 3, time.Minute)
		require.NoError(t, err)
		require.True(t, result.Allowed)
		require.Equal(t, 3, result.Remaining)

		require.NoError(t, store.Record(ctx, "it:caller", time.Minute))
		require.NoError(t, store.Record(ctx, "it:caller", time.Minute))

		result, err = store.Peek(ctx, "it:caller", 3, time.Minute)
		require.NoError(t, err)
		require.True(t, result.Allowed)
		require.Equal(t, 1, result.Remaining)
	})

	t.Run("denied at limit with reset metadata", func(t *testing.T) {
		for range 3 {
			require.NoError(t, store.Record(ctx, "it:full", time.Minute))
		}
		result, err := store.Peek(ctx, "it:full", 3, time.Minute)
		require.NoError(t, err)
		require.False(t, result.Allowed)
		require.Positive(t, result.RetryAfter)
	})

	t.Run("reset clears the bucket", func(t *testing.T) {
		require.NoError(t, store.Record(ctx, "it:reset", time.Minute))
		require.NoError(t, store.Reset(ctx, "it:reset"))

		result, err := store.Peek(ctx, "it:reset", 3, time.Minute)
		require.NoError(t, err)
		require.Equal(t, 3, result.Remaining)
	})
}
