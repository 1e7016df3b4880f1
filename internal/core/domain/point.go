package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// pointNamespace is the fixed UUIDv5 namespace for chunk point ids.
// Changing it would orphan every stored point, so it never changes.
var pointNamespace = uuid.MustParse("8f0cb2a3-41bd-4b44-9a1c-3e9d2d60b0e7")

// PointID derives the deterministic vector-store id for a chunk.
// It is a pure function of (content hash, chunk index): re-computation is
// idempotent and ids cannot collide across documents.
func PointID(contentHash string, index int) string {
	return uuid.NewSHA1(pointNamespace, []byte(fmt.Sprintf("%s:%d", contentHash, index))).String()
}
