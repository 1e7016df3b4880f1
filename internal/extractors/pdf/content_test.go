package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeContent_SimpleTj(t *testing.T) {
	content := []byte(`BT /F1 12 Tf 72 720 Td (Hello world) Tj ET`)
	assert.Equal(t, "Hello world", DecodeContent(content))
}

func TestDecodeContent_TJArrayWithKerning(t *testing.T) {
	content := []byte(`BT [(Hel) -20 (lo) 15 ( wor) -3 (ld)] TJ ET`)
	assert.Equal(t, "Hello world", DecodeContent(content))
}

func TestDecodeContent_NewlineOperators(t *testing.T) {
	content := []byte(`BT (first line) Tj 0 -14 Td (second line) Tj T* (third line) Tj ET`)
	got := DecodeContent(content)
	assert.Contains(t, got, "first line")
	assert.Contains(t, got, "second line")
	assert.Contains(t, got, "third line")
	assert.NotContains(t, got, "first linesecond")
}

func TestDecodeContent_QuoteOperators(t *testing.T) {
	content := []byte(`BT (one) ' (two) " ET`)
	got := DecodeContent(content)
	assert.Contains(t, got, "one")
	assert.Contains(t, got, "two")
}

func TestDecodeContent_Escapes(t *testing.T) {
	content := []byte(`BT (paren \( and \) back\\slash) Tj ET`)
	assert.Equal(t, `paren ( and ) back\slash`, DecodeContent(content))
}

func TestDecodeContent_OctalEscape(t *testing.T) {
	content := []byte(`BT (\101\102\103) Tj ET`)
	assert.Equal(t, "ABC", DecodeContent(content))
}

func TestDecodeContent_NestedParens(t *testing.T) {
	content := []byte(`BT (outer (inner) outer) Tj ET`)
	assert.Equal(t, "outer (inner) outer", DecodeContent(content))
}

func TestDecodeContent_HexString(t *testing.T) {
	content := []byte(`BT <48656C6C6F> Tj ET`)
	assert.Equal(t, "Hello", DecodeContent(content))
}

func TestDecodeContent_HexStringOddDigits(t *testing.T) {
	// Odd digit count pads with zero per the PDF spec.
	content := []byte(`BT <48656C6C6F2> Tj ET`)
	assert.Equal(t, "Hello", DecodeContent(content))
}

func TestDecodeContent_CommentsSkipped(t *testing.T) {
	content := []byte("BT % a comment (not text) Tj\n(real) Tj ET")
	assert.Equal(t, "real", DecodeContent(content))
}

func TestDecodeContent_NonTextOperatorsClearOperands(t *testing.T) {
	// The string operand consumed by a graphics operator never prints.
	content := []byte(`BT (orphan) Tf (shown) Tj ET`)
	assert.Equal(t, "shown", DecodeContent(content))
}

func TestDecodeContent_Empty(t *testing.T) {
	assert.Equal(t, "", DecodeContent(nil))
	assert.Equal(t, "", DecodeContent([]byte(`BT ET`)))
}

func TestDecodeContent_BlankLinesCollapsed(t *testing.T) {
	content := []byte(`BT (a) Tj T* T* T* T* (b) Tj ET`)
	got := DecodeContent(content)
	assert.NotContains(t, got, "\n\n\n")
}
