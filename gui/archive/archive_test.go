package archive

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeZip(t *testing.T, files map[string]string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "theme.zip")
	f, err := os.Create(p)
	require.NoError(t, err)
	w := zip.NewWriter(f)
	for name, body := range files {
		fw, err := w.Create(name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
	return p
}

func TestZipExtractEntry(t *testing.T) {
	p := writeZip(t, map[string]string{
		"ui.xml":          "<recovery/>",
		"images/logo.png": "png-bytes",
	})
	z, err := OpenZip(p)
	require.NoError(t, err)
	defer z.Close()

	assert.True(t, z.Has("images/logo.png"))
	assert.True(t, z.Has("/images/logo.png"))
	assert.False(t, z.Has("images/none.png"))

	dst := filepath.Join(t.TempDir(), "out.bin")
	require.NoError(t, z.ExtractEntry("images/logo.png", dst, 0o666))
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	err = z.ExtractEntry("images/none.png", dst, 0o666)
	assert.True(t, IsNotExist(err))

	body, err := z.ReadFile("ui.xml")
	require.NoError(t, err)
	assert.Equal(t, "<recovery/>", string(body))
}

func TestOpenDir(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "fonts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "fonts", "a.ttf"), []byte("ttf"), 0o644))

	a, closeFn, err := Open(root)
	require.NoError(t, err)
	defer closeFn()
	assert.True(t, a.Has("fonts/a.ttf"))
	assert.False(t, a.Has("fonts"))

	dst := filepath.Join(t.TempDir(), "a.ttf")
	require.NoError(t, a.ExtractEntry("fonts/a.ttf", dst, 0o644))
	_, err = os.Stat(dst)
	assert.NoError(t, err)
}
