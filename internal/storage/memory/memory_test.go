package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NaumanGems/Nauman-gems/internal/storage"
)

func TestKV_SetGet(t *testing.T) {
	kv := New()
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "k", []byte("v")))

	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}

func TestKV_GetMissing(t *testing.T) {
	kv := New()

	_, err := kv.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestKV_GetReturnsCopy(t *testing.T) {
	kv := New()
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "k", []byte("abc")))

	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	got[0] = 'x'

	again, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}

func TestKV_Delete(t *testing.T) {
	kv := New()
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "k", []byte("v")))
	require.NoError(t, kv.Delete(ctx, "k"))

	_, err := kv.Get(ctx, "k")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
