package rulescrape

// AllPages asks a TextExtractor for every page of a document.
const AllPages = 0

// PDFText holds the text pulled from a paged document.
type PDFText struct {
	// PageCount is the total number of pages in the document.
	PageCount int

	// Pages holds text for the leading pages that were read, in order.
	// An entry is empty when the page yielded no text.
	Pages []string
}

// TextExtractor extracts text from the leading pages of a PDF.
type TextExtractor interface {
	// ExtractText parses data as a PDF and returns text for at most
	// maxPages leading pages. AllPages reads the whole document.
	ExtractText(data []byte, maxPages int) (*PDFText, error)
}
