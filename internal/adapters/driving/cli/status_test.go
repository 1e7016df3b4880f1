package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/booklore/librarian/internal/core/ports/driving"
)

func TestStatusCmd_Use(t *testing.T) {
	assert.Equal(t, "status", statusCmd.Use)
}

func TestStatusCmd_ShowsCollections(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"status"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Current collection: library")
	assert.Contains(t, buf.String(), "Completed imports:  3")
	assert.Contains(t, buf.String(), "* library")
	assert.Contains(t, buf.String(), "9")
}

func TestStatusCmd_NoCollections(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	collectionService = &mockCollections{
		current: "library",
		status: &driving.CollectionStatus{
			Current:     "library",
			Collections: map[string]int64{},
		},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"status"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "No collections in the vector store yet.")
}

func TestStatusCmd_ServiceError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	collectionService = &mockCollections{err: errors.New("vector store down")}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"status"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "vector store down")
}
