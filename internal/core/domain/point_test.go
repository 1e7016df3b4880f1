package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointID_Deterministic(t *testing.T) {
	a := PointID("abc123", 0)
	b := PointID("abc123", 0)
	assert.Equal(t, a, b)
}

func TestPointID_VariesWithIndex(t *testing.T) {
	a := PointID("abc123", 0)
	b := PointID("abc123", 1)
	assert.NotEqual(t, a, b)
}

func TestPointID_VariesWithHash(t *testing.T) {
	a := PointID("abc123", 0)
	b := PointID("def456", 0)
	assert.NotEqual(t, a, b)
}

func TestPointID_IsValidUUID(t *testing.T) {
	id := PointID("abc123", 7)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
}

// A hash/index pair that concatenates ambiguously must still produce
// distinct ids ("ab"+"c:1" vs "abc"+":1" differ because of the separator
// position in the digest input).
func TestPointID_NoCrossDocumentCollision(t *testing.T) {
	a := PointID("abc1", 23)
	b := PointID("abc12", 3)
	assert.NotEqual(t, a, b)
}
