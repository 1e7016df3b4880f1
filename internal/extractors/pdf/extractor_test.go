package pdf

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/booklore/librarian/internal/core/domain"
)

func TestExtract_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.7 this is not a real pdf"), 0600))

	_, err := New().Extract(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrCorruptDocument)
}

func TestExtract_NotAPDFAtAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.pdf")
	require.NoError(t, os.WriteFile(path, []byte("plain text masquerading"), 0600))

	_, err := New().Extract(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrCorruptDocument)
}

func TestExtract_MissingFile(t *testing.T) {
	_, err := New().Extract(context.Background(), filepath.Join(t.TempDir(), "ghost.pdf"))
	assert.Error(t, err)
}

func TestFormatAndExtensions(t *testing.T) {
	e := New()
	assert.Equal(t, domain.FormatPDF, e.Format())
	assert.Equal(t, []string{".pdf"}, e.Extensions())
}
