package pdfcpu

import (
	"math/big"
	"slices"
	"unicode/utf16"
)

// maxRangeCodes bounds how many codes a single bfrange may expand to.
const maxRangeCodes = 1 << 16

// toUnicode maps character codes shown with a font to text, as described
// by the font's ToUnicode CMap.
type toUnicode struct {
	widths []int // code lengths in bytes, longest first
	codes  map[string]string
}

// parseToUnicode reads the codespace ranges and bfchar/bfrange mappings of
// a ToUnicode CMap. Returns nil if the CMap maps no codes.
func parseToUnicode(data []byte) *toUnicode {
	cm := &toUnicode{codes: make(map[string]string)}

	var (
		section string
		args    [][]byte
		array   [][]byte
		inArray bool
	)

	addWidth := func(n int) {
		if n > 0 && !slices.Contains(cm.widths, n) {
			cm.widths = append(cm.widths, n)
		}
	}

	for i := 0; i < len(data); {
		c := data[i]
		switch {
		case c == '%':
			for i < len(data) && data[i] != '\n' && data[i] != '\r' {
				i++
			}
		case c == '<' && i+1 < len(data) && data[i+1] == '<':
			i += 2
		case c == '>' && i+1 < len(data) && data[i+1] == '>':
			i += 2
		case c == '<':
			b, next := hexBytes(data, i)
			if inArray {
				array = append(array, b)
			} else if section != "" {
				args = append(args, b)
			}
			i = next
		case c == '(':
			_, next := literalBytes(data, i)
			i = next
		case c == '[':
			inArray, array = true, nil
			i++
		case c == ']':
			inArray = false
			i++
			if section == "bfrange" && len(args) == 2 {
				cm.addRangeArray(args[0], args[1], array)
				addWidth(len(args[0]))
				args = args[:0]
			}
		case isDelimiter(c) || isWhite(c):
			i++
		default:
			start := i
			for i < len(data) && !isDelimiter(data[i]) && !isWhite(data[i]) {
				i++
			}
			switch tok := string(data[start:i]); tok {
			case "begincodespacerange":
				section, args = "codespacerange", args[:0]
			case "beginbfchar":
				section, args = "bfchar", args[:0]
			case "beginbfrange":
				section, args = "bfrange", args[:0]
			case "endcodespacerange", "endbfchar", "endbfrange":
				section, args = "", args[:0]
			}
		}

		switch section {
		case "codespacerange":
			if len(args) == 2 {
				addWidth(len(args[0]))
				args = args[:0]
			}
		case "bfchar":
			if len(args) == 2 {
				cm.codes[string(args[0])] = utf16Text(args[1])
				addWidth(len(args[0]))
				args = args[:0]
			}
		case "bfrange":
			if len(args) == 3 {
				cm.addRange(args[0], args[1], args[2])
				addWidth(len(args[0]))
				args = args[:0]
			}
		}
	}

	if len(cm.codes) == 0 {
		return nil
	}
	slices.SortFunc(cm.widths, func(a, b int) int { return b - a })
	return cm
}

// addRange maps lo..hi to consecutive destinations starting at dst, where
// the last UTF-16 unit of dst is incremented for each code.
func (cm *toUnicode) addRange(lo, hi, dst []byte) {
	units := utf16Units(dst)
	if len(units) == 0 {
		return
	}
	last := units[len(units)-1]
	rangeCodes(lo, hi, func(n int, code string) {
		units[len(units)-1] = last + uint16(n)
		cm.codes[code] = string(utf16.Decode(units))
	})
}

// addRangeArray maps lo..hi to the successive destinations in dsts.
func (cm *toUnicode) addRangeArray(lo, hi []byte, dsts [][]byte) {
	rangeCodes(lo, hi, func(n int, code string) {
		if n < len(dsts) {
			cm.codes[code] = utf16Text(dsts[n])
		}
	})
}

// rangeCodes calls fn for each code between lo and hi inclusive, encoded
// with the width of lo.
func rangeCodes(lo, hi []byte, fn func(n int, code string)) {
	if len(lo) == 0 || len(lo) != len(hi) {
		return
	}
	cur := new(big.Int).SetBytes(lo)
	end := new(big.Int).SetBytes(hi)
	one := big.NewInt(1)
	for n := 0; cur.Cmp(end) <= 0 && n < maxRangeCodes; n++ {
		code := make([]byte, len(lo))
		cur.FillBytes(code)
		fn(n, string(code))
		cur.Add(cur, one)
	}
}

// decode maps shown string bytes to text, matching the longest known code
// at each position. Unmapped bytes are skipped.
func (cm *toUnicode) decode(b []byte) string {
	var out []rune
	for i := 0; i < len(b); {
		matched := false
		for _, w := range cm.widths {
			if i+w > len(b) {
				continue
			}
			if s, ok := cm.codes[string(b[i:i+w])]; ok {
				out = append(out, []rune(s)...)
				i += w
				matched = true
				break
			}
		}
		if !matched {
			i += cm.step()
		}
	}
	return string(out)
}

// step is the shortest code length, used to skip unmapped codes.
func (cm *toUnicode) step() int {
	if len(cm.widths) == 0 {
		return 1
	}
	return cm.widths[len(cm.widths)-1]
}

func utf16Units(b []byte) []uint16 {
	units := make([]uint16, 0, len(b)/2)
	for j := 0; j+1 < len(b); j += 2 {
		units = append(units, uint16(b[j])<<8|uint16(b[j+1]))
	}
	return units
}

func utf16Text(b []byte) string {
	return string(utf16.Decode(utf16Units(b)))
}
