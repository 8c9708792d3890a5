package textfile

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tienda/internal/domain"
)

func TestReadMissingFile(t *testing.T) {
	err := Read(filepath.Join(t.TempDir(), "missing.txt"), func(io.Reader) error { return nil })
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestWriteReplacesContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "productos.txt")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o644))

	err := Write(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "new\n")
		return err
	})
	require.NoError(t, err)

	var got []byte
	require.NoError(t, Read(path, func(r io.Reader) error {
		var err error
		got, err = io.ReadAll(r)
		return err
	}))
	assert.Equal(t, "new\n", string(got))
}

func TestWriteFailureKeepsPreviousFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "productos.txt")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o644))

	boom := errors.New("boom")
	err := Write(path, func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old\n", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file must be cleaned up")
}
