package services

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/booklore/librarian/internal/core/domain"
)

// HashBytes returns the hex SHA-256 digest of the given bytes.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashFile computes the content hash of a file by streaming its raw bytes.
// The digest depends only on content, never on name or modification time.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrUnreadableFile, path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrUnreadableFile, path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
