package archive

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalProvider_SaveAndLayout(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p, err := NewLocalProvider(dir)
	require.NoError(t, err)

	require.NoError(t, p.Save(context.Background(), "pages/negroni.html", []byte("<html>")))

	data, err := os.ReadFile(filepath.Join(dir, "pages", "negroni.html"))
	require.NoError(t, err)
	require.Equal(t, "<html>", string(data))
}

func TestLocalProvider_RejectsEscapingNames(t *testing.T) {
	t.Parallel()

	p, err := NewLocalProvider(t.TempDir())
	require.NoError(t, err)

	err = p.Save(context.Background(), "../outside.html", []byte("x"))
	require.Error(t, err)
}

func TestLocalProvider_RequiresBaseDir(t *testing.T) {
	t.Parallel()

	_, err := NewLocalProvider("  ")
	require.Error(t, err)
}
