package epub

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/booklore/librarian/internal/core/domain"
)

// mockConverter is a test double for the document converter.
type mockConverter struct {
	available bool
	text      string
	err       error
	lastPath  string
}

func (m *mockConverter) Available() bool {
	return m.available
}

func (m *mockConverter) ConvertToText(_ context.Context, path string) (string, error) {
	m.lastPath = path
	return m.text, m.err
}

func writeEPUB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "novel.epub")
	require.NoError(t, os.WriteFile(path, []byte("PK\x03\x04 zip bytes"), 0600))
	return path
}

func TestExtract(t *testing.T) {
	converter := &mockConverter{available: true, text: "Chapter One\n\nIt begins."}
	path := writeEPUB(t)

	result, err := New(converter).Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Chapter One\n\nIt begins.", result.Text())
	assert.Equal(t, path, converter.lastPath)
}

func TestExtract_ConverterMissing(t *testing.T) {
	path := writeEPUB(t)

	_, err := New(nil).Extract(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrUnsupportedConversion)

	_, err = New(&mockConverter{available: false}).Extract(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrUnsupportedConversion)
}

func TestExtract_ConverterFailure(t *testing.T) {
	converter := &mockConverter{available: true, err: errors.New("pandoc exploded")}

	_, err := New(converter).Extract(context.Background(), writeEPUB(t))
	assert.ErrorIs(t, err, domain.ErrUnsupportedConversion)
}

func TestExtract_MissingFile(t *testing.T) {
	converter := &mockConverter{available: true}

	_, err := New(converter).Extract(context.Background(), filepath.Join(t.TempDir(), "ghost.epub"))
	assert.ErrorIs(t, err, domain.ErrUnreadableFile)
}

func TestExtract_InvalidUTF8Replaced(t *testing.T) {
	converter := &mockConverter{available: true, text: "caf\xe9"}

	result, err := New(converter).Extract(context.Background(), writeEPUB(t))
	require.NoError(t, err)
	assert.Equal(t, "caf�", result.Text())
}
