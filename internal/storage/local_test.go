package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_SaveURLDelete(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir, "/uploads/")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "pins/a.png", strings.NewReader("png-bytes"), "image/png"))

	data, err := os.ReadFile(filepath.Join(dir, "pins", "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
	assert.Equal(t, "/uploads/pins/a.png", s.URL("pins/a.png"))

	require.NoError(t, s.Delete(ctx, "pins/a.png"))
	_, err = os.Stat(filepath.Join(dir, "pins", "a.png"))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, s.Delete(ctx, "pins/a.png"), "deleting twice is fine")
}

func TestLocalStorage_KeysStayInsideRoot(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(filepath.Join(dir, "root"), "/uploads")
	require.NoError(t, err)

	require.NoError(t, s.Save(context.Background(), "../../escape.png", strings.NewReader("x"), ""))

	_, err = os.Stat(filepath.Join(dir, "root", "escape.png"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "escape.png"))
	assert.True(t, os.IsNotExist(err))

	assert.Error(t, s.Save(context.Background(), "", strings.NewReader("x"), ""))
}

func TestLocalStorage_CancelledSaveLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir, "/uploads")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = s.Save(ctx, "pins/a.png", strings.NewReader("png-bytes"), "image/png")
	assert.ErrorIs(t, err, context.Canceled)

	_, err = os.Stat(filepath.Join(dir, "pins", "a.png"))
	assert.True(t, os.IsNotExist(err))
}
