package extract

import (
	"github.com/quotelift/quote-extractor/internal/pdf"
)

// Result is the engine's output for one document: resolved header fields,
// reconstructed line items and any non-fatal warnings.
type Result struct {
	Fields   map[string]string
	Items    []LineItem
	Warnings []string
}

// Extractor composes the header and line-item extractors into the
// per-document entry point. It holds only immutable configuration, so one
// Extractor is safe to use across documents and goroutines.
type Extractor struct {
	header     *HeaderExtractor
	items      *ItemExtractor
	yTolerance float64
}

// NewExtractor creates an extractor for the quote layout family.
func NewExtractor() *Extractor {
	return NewExtractorWithConfig(DefaultHeaderConfig())
}

// NewExtractorWithConfig creates an extractor with a custom family
// configuration.
func NewExtractorWithConfig(cfg HeaderConfig) *Extractor {
	return &Extractor{
		header:     NewHeaderExtractor(cfg),
		items:      NewItemExtractor(),
		yTolerance: pdf.DefaultYTolerance,
	}
}

// ExtractDocument runs header, line-item and tax extraction over a loaded
// document. Field-level failures surface as blank fields, never as errors.
func (e *Extractor) ExtractDocument(doc *pdf.Document) *Result {
	fullText := doc.FullText()
	lines := doc.LineTexts(e.yTolerance)

	items := e.items.Extract(doc)
	items = AppendTaxItem(items, fullText)

	return &Result{
		Fields:   e.header.Extract(fullText, lines),
		Items:    items,
		Warnings: append([]string(nil), doc.Warnings...),
	}
}

// ExtractMappedDocument resolves an externally supplied field map over the
// document text, for families driven by per-field patterns instead of the
// built-in quote heuristics.
func (e *Extractor) ExtractMappedDocument(doc *pdf.Document, fields []MappedField) *Result {
	return &Result{
		Fields:   ExtractMapped(doc.FullText(), fields),
		Warnings: append([]string(nil), doc.Warnings...),
	}
}
