package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_PutOpen(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	key, err := s.Put(ctx, "attendance/2025-08-04/emp-1.jpg", strings.NewReader("photo-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "attendance/2025-08-04/emp-1.jpg", key)

	rc, err := s.Open(ctx, key)
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "photo-bytes", string(body))
}

func TestLocalStorage_PutNormalizesKey(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	key, err := s.Put(context.Background(), "/attendance//a.jpg", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "attendance/a.jpg", key)
}

func TestLocalStorage_PutLeavesNoTempFiles(t *testing.T) {
	root := t.TempDir()
	s, err := NewLocalStorage(root)
	require.NoError(t, err)

	_, err = s.Put(context.Background(), "a/b.jpg", strings.NewReader("x"))
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(root, "a"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "b.jpg", entries[0].Name())
}

func TestLocalStorage_PutHonorsCancelledContext(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Put(ctx, "a/b.jpg", strings.NewReader("x"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLocalStorage_OpenMissing(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = s.Open(context.Background(), "attendance/none.jpg")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"../../etc/passwd", "a/../../b", ""} {
		_, err = s.Put(context.Background(), key, strings.NewReader(""))
		assert.Error(t, err, key)
	}
}

func TestLocalStorage_RemoveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	key, err := s.Put(ctx, "a/b.jpg", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, s.Remove(ctx, key))
	require.NoError(t, s.Remove(ctx, key))

	_, err = s.Open(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)
}
