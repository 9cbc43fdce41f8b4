package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStoreSetGetDel(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Get(ctx, "missing")
	assert.Equal(t, ErrNotFound, err)

	assert.NoError(t, s.Set(ctx, "k", "v", 0))
	val, err := s.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Equal(t, "v", val)

	assert.NoError(t, s.Del(ctx, "k"))
	_, err = s.Get(ctx, "k")
	assert.Equal(t, ErrNotFound, err)
}

func TestMemoryStoreTTL(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	assert.NoError(t, s.Set(ctx, "k", "v", 10*time.Millisecond))
	val, err := s.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Equal(t, "v", val)

	time.Sleep(20 * time.Millisecond)
	_, err = s.Get(ctx, "k")
	assert.Equal(t, ErrNotFound, err)
}

func TestMemoryStoreIncr(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	n, err := s.Incr(ctx, "views")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = s.Incr(ctx, "views")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
