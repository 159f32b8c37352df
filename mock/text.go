package mock

import "github.com/fwojciec/rulescrape"

var _ rulescrape.TextExtractor = (*TextExtractor)(nil)

// TextExtractor is a mock implementation of rulescrape.TextExtractor.
type TextExtractor struct {
	ExtractTextFn func(data []byte, maxPages int) (*rulescrape.PDFText, error)
}

func (e *TextExtractor) ExtractText(data []byte, maxPages int) (*rulescrape.PDFText, error) {
	return e.ExtractTextFn(data, maxPages)
}
