package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedUser struct {
	Email string `json:"email"`
}

func TestNilClient_IsEmptyCache(t *testing.T) {
	var c *Client
	ctx := context.Background()

	data, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, data)
	assert.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	assert.NoError(t, c.Delete(ctx, "k"))
	assert.NoError(t, c.Ping(ctx))
	assert.NoError(t, c.Close())
}

func TestGetOrLoadJSON_FallsBackToLoader(t *testing.T) {
	// Nothing listens on this port: every redis call fails and must behave as a miss.
	c := New("127.0.0.1:1", "", 0)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	calls := 0
	u, err := GetOrLoadJSON(ctx, c, "user:email:a@b.c", time.Minute, func(context.Context) (*cachedUser, error) {
		calls++
		return &cachedUser{Email: "a@b.c"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", u.Email)
	assert.Equal(t, 1, calls)
}

func TestGetOrLoad_PropagatesLoaderError(t *testing.T) {
	var c *Client
	boom := errors.New("boom")

	_, err := c.GetOrLoad(context.Background(), "k", time.Minute, func(context.Context) ([]byte, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
}
