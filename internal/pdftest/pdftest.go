// Package pdftest builds minimal, valid PDF documents for tests.
package pdftest

import (
	"fmt"
	"strings"
)

// Build returns a PDF with one page per entry in pages. Each page shows its
// text in Helvetica with an uncompressed content stream. Passing no pages
// yields a document whose page tree is empty.
func Build(pages ...string) []byte {
	font := []string{"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>"}
	return assemble(font, pages, func(line string) string {
		return "(" + escape(line) + ")"
	})
}

// BuildIdentity returns a PDF like Build, except the text is shown with a
// Type0 font using the Identity-H encoding. Each distinct rune is assigned
// an arbitrary two-byte glyph code, so the text can only be recovered
// through the font's ToUnicode CMap.
func BuildIdentity(pages ...string) []byte {
	codes := make(map[rune]int)
	var order []rune
	for _, text := range pages {
		for _, r := range text {
			if _, ok := codes[r]; !ok && r != '\n' {
				codes[r] = 3 + len(order)
				order = append(order, r)
			}
		}
	}

	// 3: Type0 font, 4: descendant CIDFont, 5: font descriptor, 6: ToUnicode CMap.
	font := []string{
		"<< /Type /Font /Subtype /Type0 /BaseFont /TestSans /Encoding /Identity-H /DescendantFonts [4 0 R] /ToUnicode 6 0 R >>",
		"<< /Type /Font /Subtype /CIDFontType2 /BaseFont /TestSans /CIDSystemInfo << /Registry (Adobe) /Ordering (Identity) /Supplement 0 >> /FontDescriptor 5 0 R >>",
		"<< /Type /FontDescriptor /FontName /TestSans /Flags 32 /FontBBox [0 0 1000 1000] /ItalicAngle 0 /Ascent 900 /Descent -200 /CapHeight 700 /StemV 80 >>",
		stream(toUnicodeCMap(order, codes)),
	}

	return assemble(font, pages, func(line string) string {
		var b strings.Builder
		b.WriteByte('<')
		for _, r := range line {
			fmt.Fprintf(&b, "%04X", codes[r])
		}
		b.WriteByte('>')
		return b.String()
	})
}

// assemble lays out the catalog, page tree and font objects followed by a
// page and content stream per page. The first font object is registered
// as /F1; show renders one line as a string operand.
func assemble(font []string, pages []string, show func(line string) string) []byte {
	first := 3 + len(font)
	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", first+2*i)
	}

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)),
	}
	objects = append(objects, font...)

	for i, text := range pages {
		contentNr := first + 2*i + 1
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents %d 0 R /Resources << /Font << /F1 3 0 R >> >> >>", contentNr),
			stream(contentStream(text, show)),
		)
	}

	var b strings.Builder
	b.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n", len(objects)+1)
	b.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return []byte(b.String())
}

// contentStream renders each line of text on its own baseline. Empty text
// yields a text object that shows nothing.
func contentStream(text string, show func(line string) string) string {
	if text == "" {
		return "BT\nET"
	}
	var b strings.Builder
	b.WriteString("BT\n/F1 12 Tf\n72 720 Td\n")
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			b.WriteString("0 -14 Td\n")
		}
		fmt.Fprintf(&b, "%s Tj\n", show(line))
	}
	b.WriteString("ET")
	return b.String()
}

// toUnicodeCMap maps each assigned code back to its rune. bfchar blocks
// hold at most 100 entries.
func toUnicodeCMap(order []rune, codes map[rune]int) string {
	var b strings.Builder
	b.WriteString("/CIDInit /ProcSet findresource begin\n12 dict begin\nbegincmap\n")
	b.WriteString("/CIDSystemInfo << /Registry (Adobe) /Ordering (UCS) /Supplement 0 >> def\n")
	b.WriteString("/CMapName /Adobe-Identity-UCS def\n/CMapType 2 def\n")
	b.WriteString("1 begincodespacerange\n<0000> <FFFF>\nendcodespacerange\n")
	for start := 0; start < len(order); start += 100 {
		chunk := order[start:min(start+100, len(order))]
		fmt.Fprintf(&b, "%d beginbfchar\n", len(chunk))
		for _, r := range chunk {
			fmt.Fprintf(&b, "<%04X> <%s>\n", codes[r], utf16Hex(r))
		}
		b.WriteString("endbfchar\n")
	}
	b.WriteString("endcmap\nCMapName currentdict /CMap defineresource pop\nend\nend")
	return b.String()
}

func utf16Hex(r rune) string {
	if r < 0x10000 {
		return fmt.Sprintf("%04X", r)
	}
	r -= 0x10000
	return fmt.Sprintf("%04X%04X", 0xD800+(r>>10), 0xDC00+(r&0x3FF))
}

func stream(data string) string {
	return fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(data), data)
}

func escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "(", `\(`)
	return strings.ReplaceAll(s, ")", `\)`)
}
