// Package pdfcpu implements rulescrape.TextExtractor with pdfcpu.
//
// pdfcpu parses and validates the document structure; text is then read
// from each page's decoded content stream by interpreting the text-showing
// operators. Strings shown with a font that carries a ToUnicode CMap are
// mapped through it; other strings are read as PDFDocEncoding-like bytes.
package pdfcpu

import (
	"bytes"
	"io"

	"github.com/fwojciec/rulescrape"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Ensure Extractor implements rulescrape.TextExtractor at compile time.
var _ rulescrape.TextExtractor = (*Extractor)(nil)

// Extractor extracts page text from PDF documents.
type Extractor struct {
	conf *model.Configuration
}

// NewExtractor creates a new Extractor using relaxed validation. pdfcpu's
// user config directory is disabled so extraction never writes to disk.
func NewExtractor() *Extractor {
	api.DisableConfigDir()
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Extractor{conf: conf}
}

// ExtractText reads data as a PDF and returns text for at most maxPages
// leading pages. Returns EINVALID if the document cannot be read.
func (e *Extractor) ExtractText(data []byte, maxPages int) (*rulescrape.PDFText, error) {
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), e.conf)
	if err != nil {
		return nil, rulescrape.Errorf(rulescrape.EINVALID, "pdfcpu read: %v", err)
	}

	n := ctx.PageCount
	if maxPages != rulescrape.AllPages && maxPages < n {
		n = maxPages
	}

	pages := make([]string, 0, n)
	for pageNr := 1; pageNr <= n; pageNr++ {
		pages = append(pages, pageText(ctx, pageNr))
	}

	return &rulescrape.PDFText{
		PageCount: ctx.PageCount,
		Pages:     pages,
	}, nil
}

// pageText returns the text of a single page, or "" if its content stream
// cannot be read.
func pageText(ctx *model.Context, pageNr int) string {
	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil || r == nil {
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return ""
	}
	return contentText(data, pageFonts(ctx, pageNr))
}

// pageFonts returns the ToUnicode CMaps of the fonts in the page's resource
// dict, keyed by resource name. Fonts without a readable CMap are omitted.
func pageFonts(ctx *model.Context, pageNr int) map[string]*toUnicode {
	_, _, attrs, err := ctx.PageDict(pageNr, false)
	if err != nil || attrs == nil || attrs.Resources == nil {
		return nil
	}
	obj, ok := attrs.Resources.Find("Font")
	if !ok {
		return nil
	}
	fontDict, err := ctx.DereferenceDict(obj)
	if err != nil || fontDict == nil {
		return nil
	}

	fonts := make(map[string]*toUnicode)
	for name, ref := range fontDict {
		font, err := ctx.DereferenceDict(ref)
		if err != nil || font == nil {
			continue
		}
		obj, ok := font.Find("ToUnicode")
		if !ok {
			continue
		}
		sd, _, err := ctx.DereferenceStreamDict(obj)
		if err != nil || sd == nil {
			continue
		}
		if err := sd.Decode(); err != nil {
			continue
		}
		if cm := parseToUnicode(sd.Content); cm != nil {
			fonts[name] = cm
		}
	}
	return fonts
}
