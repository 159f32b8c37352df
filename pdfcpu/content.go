package pdfcpu

import (
	"strconv"
	"strings"
	"unicode"
)

// operand is a pending value on the content stream operand stack.
type operand struct {
	raw   []byte
	num   float64
	name  string
	isStr bool
}

// kernSpace is the TJ adjustment (in thousandths of an em) beyond which a
// gap is rendered as a space.
const kernSpace = -200

// contentText interprets the text operators of a page content stream and
// returns the shown text, one line per baseline. Strings shown with a font
// present in fonts are decoded through its ToUnicode CMap.
func contentText(data []byte, fonts map[string]*toUnicode) string {
	var (
		out      strings.Builder
		operands []operand
		font     *toUnicode
	)

	decode := func(b []byte) string {
		if font != nil {
			return font.decode(b)
		}
		return decodeBytes(b)
	}

	newline := func() {
		s := out.String()
		if s != "" && !strings.HasSuffix(s, "\n") {
			out.WriteByte('\n')
		}
	}

	show := func(ops []operand) {
		for _, op := range ops {
			if op.isStr {
				out.WriteString(decode(op.raw))
			} else if op.num <= kernSpace {
				out.WriteByte(' ')
			}
		}
	}

	for i := 0; i < len(data); {
		c := data[i]
		switch {
		case c == '%':
			for i < len(data) && data[i] != '\n' && data[i] != '\r' {
				i++
			}
		case c == '(':
			b, next := literalBytes(data, i)
			operands = append(operands, operand{raw: b, isStr: true})
			i = next
		case c == '<' && i+1 < len(data) && data[i+1] == '<':
			i += 2
		case c == '<':
			b, next := hexBytes(data, i)
			operands = append(operands, operand{raw: b, isStr: true})
			i = next
		case isDelimiter(c) || isWhite(c):
			i++
		default:
			start := i
			for i < len(data) && !isDelimiter(data[i]) && !isWhite(data[i]) {
				i++
			}
			tok := string(data[start:i])
			if f, err := strconv.ParseFloat(tok, 64); err == nil {
				operands = append(operands, operand{num: f})
				continue
			}
			if tok[0] == '/' {
				operands = append(operands, operand{name: tok[1:]})
				continue
			}

			switch tok {
			case "Tf":
				font = nil
				for _, op := range operands {
					if op.name != "" {
						font = fonts[op.name]
					}
				}
			case "Tj", "TJ":
				show(operands)
			case "'", `"`:
				newline()
				show(operands)
			case "Td", "TD":
				if len(operands) >= 2 && !operands[len(operands)-1].isStr && operands[len(operands)-1].num != 0 {
					newline()
				} else if out.Len() > 0 {
					out.WriteByte(' ')
				}
			case "T*", "ET":
				newline()
			}
			operands = operands[:0]
		}
	}

	return cleanText(out.String())
}

// literalBytes reads a literal string starting at data[start] == '('.
// It returns the unescaped bytes and the index just past the closing paren.
func literalBytes(data []byte, start int) ([]byte, int) {
	var buf []byte
	depth := 0
	i := start
	for i < len(data) {
		c := data[i]
		switch c {
		case '(':
			if depth > 0 {
				buf = append(buf, c)
			}
			depth++
			i++
		case ')':
			depth--
			i++
			if depth == 0 {
				return buf, i
			}
			buf = append(buf, c)
		case '\\':
			i++
			if i >= len(data) {
				return buf, i
			}
			e := data[i]
			i++
			switch e {
			case 'n':
				buf = append(buf, '\n')
			case 'r':
				buf = append(buf, '\r')
			case 't':
				buf = append(buf, '\t')
			case 'b':
				buf = append(buf, '\b')
			case 'f':
				buf = append(buf, '\f')
			case '\r':
				if i < len(data) && data[i] == '\n' {
					i++
				}
			case '\n':
			default:
				if e >= '0' && e <= '7' {
					val := int(e - '0')
					for n := 0; n < 2 && i < len(data) && data[i] >= '0' && data[i] <= '7'; n++ {
						val = val*8 + int(data[i]-'0')
						i++
					}
					buf = append(buf, byte(val))
				} else {
					buf = append(buf, e)
				}
			}
		default:
			buf = append(buf, c)
			i++
		}
	}
	return buf, i
}

// hexBytes reads a hex string starting at data[start] == '<'.
func hexBytes(data []byte, start int) ([]byte, int) {
	var (
		buf    []byte
		digits []byte
	)
	i := start + 1
	for i < len(data) && data[i] != '>' {
		if v, ok := hexValue(data[i]); ok {
			digits = append(digits, v)
		}
		i++
	}
	if len(digits)%2 == 1 {
		digits = append(digits, 0)
	}
	for j := 0; j < len(digits); j += 2 {
		buf = append(buf, digits[j]<<4|digits[j+1])
	}
	return buf, i + 1
}

func hexValue(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// decodeBytes turns string bytes into text: UTF-16BE when the string
// carries a byte order mark, Latin-1 otherwise.
func decodeBytes(b []byte) string {
	if len(b) >= 2 && b[0] == 0xFE && b[1] == 0xFF {
		return utf16Text(b[2:])
	}
	r := make([]rune, len(b))
	for j, c := range b {
		r[j] = rune(c)
	}
	return string(r)
}

func isWhite(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', 0:
		return true
	}
	return false
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '%':
		return true
	}
	return false
}

// cleanText collapses whitespace within lines, drops blank lines and
// non-printable characters.
func cleanText(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		var b strings.Builder
		prevSpace := false
		for _, r := range line {
			if unicode.IsSpace(r) {
				if !prevSpace && b.Len() > 0 {
					b.WriteByte(' ')
					prevSpace = true
				}
			} else if unicode.IsPrint(r) {
				b.WriteRune(r)
				prevSpace = false
			}
		}
		if l := strings.TrimSpace(b.String()); l != "" {
			lines = append(lines, l)
		}
	}
	return strings.Join(lines, "\n")
}
