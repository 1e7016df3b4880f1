package pdf

import "strings"

// DecodeContent recovers the visible text from a decompressed PDF content
// stream by interpreting the text-showing operators (Tj, ', ", TJ) and
// approximating layout from the positioning operators (Td, TD, T*).
//
// Strings using CID font encodings decode as garbage; that noise is
// tolerated the same way scanned pages without OCR yield nothing.
func DecodeContent(content []byte) string {
	var (
		out      strings.Builder
		operands []string
	)

	flush := func(sep string) {
		for _, s := range operands {
			out.WriteString(s)
		}
		if len(operands) > 0 {
			out.WriteString(sep)
		}
		operands = operands[:0]
	}

	i := 0
	for i < len(content) {
		c := content[i]
		switch {
		case c == '(':
			s, next := parseString(content, i)
			operands = append(operands, s)
			i = next

		case c == '<' && i+1 < len(content) && content[i+1] != '<':
			s, next := parseHexString(content, i)
			operands = append(operands, s)
			i = next

		case c == '[':
			// Array operand for TJ; elements parse individually, numeric
			// kerning adjustments are dropped.
			i++

		case c == ']':
			i++

		case c == '%':
			for i < len(content) && content[i] != '\n' {
				i++
			}

		case isRegular(c):
			start := i
			for i < len(content) && isRegular(content[i]) {
				i++
			}
			switch string(content[start:i]) {
			case "Tj", "TJ":
				flush(" ")
			case "'", "\"":
				out.WriteString("\n")
				flush(" ")
			case "Td", "TD", "T*", "ET":
				if len(operands) > 0 {
					flush(" ")
				}
				out.WriteString("\n")
			default:
				// Numbers are operands (e.g. kerning inside a TJ array);
				// any other operator consumes whatever was collected.
				if !isNumeric(content[start:i]) {
					operands = operands[:0]
				}
			}

		default:
			i++
		}
	}
	flush(" ")

	return collapseBlank(out.String())
}

// parseString parses a parenthesised PDF string starting at the opening
// paren, handling nesting and escapes. Returns the decoded string and the
// index past the closing paren.
func parseString(content []byte, start int) (string, int) {
	var b strings.Builder
	depth := 0
	i := start
	for i < len(content) {
		c := content[i]
		switch {
		case c == '\\' && i+1 < len(content):
			i++
			switch esc := content[i]; esc {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			case 'b', 'f':
				// Backspace and form feed carry no text.
			case '(', ')', '\\':
				b.WriteByte(esc)
			case '\n':
				// Line continuation.
			default:
				if esc >= '0' && esc <= '7' {
					val := 0
					for n := 0; n < 3 && i < len(content) && content[i] >= '0' && content[i] <= '7'; n++ {
						val = val*8 + int(content[i]-'0')
						i++
					}
					i--
					b.WriteByte(byte(val))
				} else {
					b.WriteByte(esc)
				}
			}
			i++
		case c == '(':
			if depth > 0 {
				b.WriteByte(c)
			}
			depth++
			i++
		case c == ')':
			depth--
			if depth == 0 {
				return b.String(), i + 1
			}
			b.WriteByte(c)
			i++
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String(), i
}

// parseHexString parses a <...> hex string starting at '<'. Returns the
// decoded bytes and the index past the closing '>'.
func parseHexString(content []byte, start int) (string, int) {
	var digits []byte
	i := start + 1
	for i < len(content) && content[i] != '>' {
		c := content[i]
		if isHexDigit(c) {
			digits = append(digits, c)
		}
		i++
	}
	if i < len(content) {
		i++ // consume '>'
	}
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}

	var b strings.Builder
	for j := 0; j+1 < len(digits); j += 2 {
		b.WriteByte(hexValue(digits[j])<<4 | hexValue(digits[j+1]))
	}
	return b.String(), i
}

// isNumeric reports whether a token is a PDF numeric object.
func isNumeric(token []byte) bool {
	if len(token) == 0 {
		return false
	}
	for k, c := range token {
		switch {
		case c >= '0' && c <= '9', c == '.':
		case (c == '+' || c == '-') && k == 0:
		default:
			return false
		}
	}
	return true
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexValue(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

// isRegular reports whether a byte can start an operator token.
func isRegular(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\f', '\x00', '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return false
	}
	return true
}

// collapseBlank trims trailing spaces and squeezes runs of blank lines.
func collapseBlank(s string) string {
	lines := strings.Split(s, "\n")
	var out []string
	blank := 0
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			blank++
			if blank > 1 {
				continue
			}
		} else {
			blank = 0
		}
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
