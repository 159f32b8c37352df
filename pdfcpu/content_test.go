package pdfcpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		stream string
		want   string
	}{
		{
			name:   "single Tj",
			stream: "BT /F1 12 Tf 72 720 Td (Hello World) Tj ET",
			want:   "Hello World",
		},
		{
			name:   "vertical move starts a new line",
			stream: "BT 72 720 Td (first) Tj 0 -14 Td (second) Tj ET",
			want:   "first\nsecond",
		},
		{
			name:   "horizontal move inserts a space",
			stream: "BT 72 720 Td (left) Tj 100 0 Td (right) Tj ET",
			want:   "left right",
		},
		{
			name:   "TJ with kerning gap",
			stream: "BT [(Chap) -20 (ter) -500 (30)] TJ ET",
			want:   "Chapter 30",
		},
		{
			name:   "T star and quote operator",
			stream: "BT (one) Tj T* (two) Tj (three) ' ET",
			want:   "one\ntwo\nthree",
		},
		{
			name:   "escapes and nested parens",
			stream: `BT (a \(b\) (c) \\ d\101) Tj ET`,
			want:   `a (b) (c) \ dA`,
		},
		{
			name:   "hex string",
			stream: "BT <48656C6C6F> Tj ET",
			want:   "Hello",
		},
		{
			name:   "utf16 hex string",
			stream: "BT <FEFF00E9007400E9> Tj ET",
			want:   "été",
		},
		{
			name:   "separate text objects",
			stream: "BT (alpha) Tj ET BT (beta) Tj ET",
			want:   "alpha\nbeta",
		},
		{
			name:   "comments and dictionaries ignored",
			stream: "% header\n/P <</MCID 0>> BDC BT (marked) Tj ET EMC",
			want:   "marked",
		},
		{
			name:   "no text operators",
			stream: "0 0 m 100 100 l S",
			want:   "",
		},
		{
			name:   "unterminated string",
			stream: "BT (dangling",
			want:   "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, contentText([]byte(tc.stream), nil))
		})
	}
}

func TestContentText_Fonts(t *testing.T) {
	t.Parallel()

	identity := parseToUnicode([]byte("1 begincodespacerange <0000> <FFFF> endcodespacerange\n" +
		"3 beginbfchar <0024> <0041> <0025> <0042> <0003> <0020> endbfchar"))

	fonts := map[string]*toUnicode{"F2": identity}

	t.Run("maps codes through the selected font", func(t *testing.T) {
		t.Parallel()

		got := contentText([]byte("BT /F2 12 Tf <002400030025> Tj ET"), fonts)

		assert.Equal(t, "A B", got)
	})

	t.Run("font without a CMap reads raw bytes", func(t *testing.T) {
		t.Parallel()

		got := contentText([]byte("BT /F1 12 Tf <0024> Tj /F2 12 Tf <0024> Tj ET"), fonts)

		assert.Equal(t, "$A", got)
	})

	t.Run("font switch applies to TJ arrays", func(t *testing.T) {
		t.Parallel()

		got := contentText([]byte("BT /F2 9 Tf [<0024> -600 <0025>] TJ ET"), fonts)

		assert.Equal(t, "A B", got)
	})
}

func TestCleanText(t *testing.T) {
	t.Parallel()

	got := cleanText("  a   b \n\n\t\n c\x01d  ")
	assert.Equal(t, "a b\ncd", got)
}
