package storage_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/straye-as/estimate-api/internal/config"
	"github.com/straye-as/estimate-api/internal/storage"
)

func TestLocalStorage_PutGetListDelete(t *testing.T) {
	ctx := context.Background()
	s, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	n, err := s.Put(ctx, "exports/est-1/100.csv", "text/csv", strings.NewReader("a,b\n"))
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	_, err = s.Put(ctx, "exports/est-1/200.pdf", "application/pdf", strings.NewReader("%PDF"))
	require.NoError(t, err)
	_, err = s.Put(ctx, "exports/est-2/100.csv", "text/csv", strings.NewReader("x"))
	require.NoError(t, err)

	rc, err := s.Get(ctx, "exports/est-1/100.csv")
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "a,b\n", string(body))

	keys, err := s.List(ctx, "exports/est-1/")
	require.NoError(t, err)
	assert.Equal(t, []string{"exports/est-1/100.csv", "exports/est-1/200.pdf"}, keys)

	all, err := s.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	require.NoError(t, s.Delete(ctx, "exports/est-1/100.csv"))
	require.NoError(t, s.Delete(ctx, "exports/est-1/100.csv"))

	_, err = s.Get(ctx, "exports/est-1/100.csv")
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestLocalStorage_PutReplaces(t *testing.T) {
	ctx := context.Background()
	s, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = s.Put(ctx, "k", "text/plain", strings.NewReader("one"))
	require.NoError(t, err)
	_, err = s.Put(ctx, "k", "text/plain", strings.NewReader("two"))
	require.NoError(t, err)

	rc, err := s.Get(ctx, "k")
	require.NoError(t, err)
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	assert.Equal(t, "two", string(body))
}

func TestLocalStorage_RejectsEscapingKeys(t *testing.T) {
	ctx := context.Background()
	s, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "/etc/passwd", "../outside", "a/../../b", "a//b"} {
		_, err := s.Put(ctx, key, "text/plain", strings.NewReader("x"))
		assert.ErrorIs(t, err, storage.ErrInvalidKey, key)
	}
}

func TestNewStorage_Modes(t *testing.T) {
	ctx := context.Background()

	s, err := storage.NewStorage(ctx, &config.StorageConfig{Mode: "local", LocalBasePath: t.TempDir()}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &storage.LocalStorage{}, s)

	_, err = storage.NewStorage(ctx, &config.StorageConfig{Mode: "azure"}, zap.NewNop())
	assert.Error(t, err)

	_, err = storage.NewStorage(ctx, &config.StorageConfig{Mode: "tape"}, zap.NewNop())
	assert.Error(t, err)
}
