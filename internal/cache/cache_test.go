package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestFakeCache(t *testing.T) {
	c := &FakeCache{}
	ctx := context.Background()
	require.Panics(t, func() { c.Get(ctx, "k") })
	require.Panics(t, func() { c.Set(ctx, "k", 1, 0) })
	require.Panics(t, func() { c.Del(ctx, "k") })
	require.Panics(t, func() { c.Exists(ctx, "k") })
	require.Panics(t, func() { c.Publish(ctx, "ch", "m") })
	require.Panics(t, func() { c.PSubscribe(ctx, "ch:*") })
	require.Equal(t, "PONG", c.Ping(ctx).Val())
	require.NoError(t, c.Close())

	var deleted []string
	c.GetFn = func(ctx context.Context, key string) *redis.StringCmd {
		return redis.NewStringResult("v", nil)
	}
	c.SetFn = func(ctx context.Context, key string, val any, exp time.Duration) *redis.StatusCmd {
		return redis.NewStatusResult("OK", nil)
	}
	c.DelFn = func(ctx context.Context, keys ...string) *redis.IntCmd {
		deleted = append(deleted, keys...)
		return redis.NewIntResult(int64(len(keys)), nil)
	}
	c.ExistsFn = func(ctx context.Context, keys ...string) *redis.IntCmd {
		return redis.NewIntResult(1, nil)
	}
	c.PublishFn = func(ctx context.Context, ch string, msg any) *redis.IntCmd {
		return redis.NewIntResult(2, nil)
	}
	c.CloseFn = func() error { return errors.New("close") }

	require.Equal(t, "v", c.Get(ctx, "k").Val())
	require.Equal(t, "OK", c.Set(ctx, "k", 1, 0).Val())
	require.Equal(t, int64(2), c.Del(ctx, "a", "b").Val())
	require.Equal(t, []string{"a", "b"}, deleted)
	require.Equal(t, int64(1), c.Exists(ctx, "a").Val())
	require.Equal(t, int64(2), c.Publish(ctx, "ch", "m").Val())
	require.EqualError(t, c.Close(), "close")
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	stored := map[string][]byte{}
	c := &FakeCache{
		SetFn: func(_ context.Context, key string, val any, _ time.Duration) *redis.StatusCmd {
			stored[key] = val.([]byte)
			return redis.NewStatusResult("OK", nil)
		},
		GetFn: func(_ context.Context, key string) *redis.StringCmd {
			v, ok := stored[key]
			if !ok {
				return redis.NewStringResult("", redis.Nil)
			}
			return redis.NewStringResult(string(v), nil)
		},
	}

	type entry struct {
		Name string `json:"name"`
	}
	require.NoError(t, SetJSON(ctx, c, "k", []entry{{Name: "Ann"}}, time.Minute))

	var got []entry
	ok, err := GetJSON(ctx, c, "k", &got)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Ann", got[0].Name)

	ok, err = GetJSON(ctx, c, "missing", &got)
	require.NoError(t, err)
	require.False(t, ok)

	c.GetFn = func(context.Context, string) *redis.StringCmd {
		return redis.NewStringResult("", errors.New("down"))
	}
	_, err = GetJSON(ctx, c, "k", &got)
	require.Error(t, err)

	require.Error(t, SetJSON(ctx, c, "k", make(chan int), time.Minute))
}
