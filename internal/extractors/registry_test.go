package extractors

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/booklore/librarian/internal/core/domain"
)

func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0600))
	return path
}

func TestResolve_ByExtension(t *testing.T) {
	registry := NewDefaultRegistry(nil)

	cases := map[string]domain.Format{
		"notes.txt":       domain.FormatPlainText,
		"readme.md":       domain.FormatMarkdown,
		"README.MARKDOWN": domain.FormatMarkdown,
		"paper.pdf":       domain.FormatPDF,
		"Novel.EPUB":      domain.FormatEPUB,
	}
	for name, want := range cases {
		path := writeFile(t, name, []byte("content"))
		extractor, err := registry.Resolve(path)
		require.NoError(t, err, name)
		assert.Equal(t, want, extractor.Format(), name)
	}
}

func TestResolve_UnsupportedExtension(t *testing.T) {
	registry := NewDefaultRegistry(nil)

	_, err := registry.Resolve("image.png")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)

	_, err = registry.Resolve("no-extension")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestResolve_PDFMagicOverridesExtension(t *testing.T) {
	registry := NewDefaultRegistry(nil)

	path := writeFile(t, "disguised.txt", []byte("%PDF-1.7\nbinary junk"))
	extractor, err := registry.Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, domain.FormatPDF, extractor.Format())
}

func TestResolve_TextFileStaysText(t *testing.T) {
	registry := NewDefaultRegistry(nil)

	path := writeFile(t, "plain.txt", []byte("just words"))
	extractor, err := registry.Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, domain.FormatPlainText, extractor.Format())
}

func TestSupported(t *testing.T) {
	registry := NewDefaultRegistry(nil)

	assert.True(t, registry.Supported("a.txt"))
	assert.True(t, registry.Supported("b.md"))
	assert.True(t, registry.Supported("c.pdf"))
	assert.True(t, registry.Supported("d.epub"))
	assert.False(t, registry.Supported("e.png"))
	assert.False(t, registry.Supported("f"))
}
