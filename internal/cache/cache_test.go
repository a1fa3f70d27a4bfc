package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func setupRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	InitRedis(mr.Addr())
	t.Cleanup(func() { client = nil })
	return mr
}

func TestGetSetJSON(t *testing.T) {
	setupRedis(t)
	ctx := context.Background()

	var missing cachedUser
	found, err := GetJSON(ctx, UserKey("u1"), &missing)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, UserKey("u1"), cachedUser{ID: "u1", Username: "alice"}, UserTTL))

	var got cachedUser
	found, err = GetJSON(ctx, UserKey("u1"), &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "alice", got.Username)
}

func TestSetJSON_TTL(t *testing.T) {
	mr := setupRedis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, UserKey("u1"), cachedUser{ID: "u1"}, UserTTL))

	mr.FastForward(UserTTL + time.Second)

	var got cachedUser
	found, err := GetJSON(ctx, UserKey("u1"), &got)
	require.NoError(t, err)
	assert.False(t, found, "entry should expire after its TTL")
}

func TestAside(t *testing.T) {
	setupRedis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *cachedUser) func() error {
		return func() error {
			fetches++
			*dest = cachedUser{ID: "u1", Username: "alice"}
			return nil
		}
	}

	var first cachedUser
	require.NoError(t, Aside(ctx, UserKey("u1"), &first, UserTTL, fetch(&first)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "alice", first.Username)

	// Second read is served from the cache.
	var second cachedUser
	require.NoError(t, Aside(ctx, UserKey("u1"), &second, UserTTL, fetch(&second)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "alice", second.Username)
}

func TestAside_FetchErrorNotCached(t *testing.T) {
	setupRedis(t)
	ctx := context.Background()

	var dest cachedUser
	err := Aside(ctx, UserKey("u1"), &dest, UserTTL, func() error {
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	found, err := GetJSON(ctx, UserKey("u1"), &dest)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidateUser(t *testing.T) {
	setupRedis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, UserKey("u1"), cachedUser{ID: "u1"}, UserTTL))
	InvalidateUser(ctx, "u1")

	var got cachedUser
	found, err := GetJSON(ctx, UserKey("u1"), &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNilClientDegradesGracefully(t *testing.T) {
	client = nil
	ctx := context.Background()

	var dest cachedUser
	found, err := GetJSON(ctx, "k", &dest)
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, SetJSON(ctx, "k", cachedUser{}, time.Minute))
	Invalidate(ctx, "k")

	err = Aside(ctx, "k", &dest, time.Minute, func() error {
		dest = cachedUser{ID: "direct"}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "direct", dest.ID)
}
