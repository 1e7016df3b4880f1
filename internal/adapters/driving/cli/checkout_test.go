package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/booklore/librarian/internal/core/domain"
)

func TestCheckoutCmd_Use(t *testing.T) {
	assert.Equal(t, "checkout [collection]", checkoutCmd.Use)
}

func TestCheckoutCmd_SwitchesCollection(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	collections := &mockCollections{current: "library"}
	collectionService = collections

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"checkout", "papers"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, "papers", collections.checkedOut)
	assert.Contains(t, buf.String(), `Switched to collection "papers"`)
}

func TestCheckoutCmd_InvalidName(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	collectionService = &mockCollections{err: domain.ErrInvalidInput}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"checkout", "  "})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
