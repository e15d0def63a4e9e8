package pdf

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	// Tolerances for merging positioned glyphs into words. Glyphs on the
	// same row whose horizontal gap is within the threshold belong to one
	// word; the threshold scales with font size for wide typefaces.
	glyphRowTolerance   = 2.0
	wordGapTolerance    = 2.0
	wordGapFontFraction = 0.3

	// Default page height (US Letter, points) when no MediaBox is found.
	defaultPageHeight = 792.0
	defaultPageWidth  = 612.0
)

// Loader turns raw PDF bytes into a Document. It enforces a maximum input
// size but is otherwise stateless; one Loader may be reused across documents.
type Loader struct {
	maxFileSize int64
}

// NewLoader creates a Loader with the given file size limit.
func NewLoader(maxFileSize int64) *Loader {
	return &Loader{maxFileSize: maxFileSize}
}

// LoadDocument parses PDF bytes into per-page linear text and a positioned
// word list. A page whose content stream cannot be parsed contributes empty
// text and no words; only a document that cannot be opened at all returns an
// error.
func (l *Loader) LoadDocument(data []byte, name string) (*Document, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty document: %s", name)
	}
	if l.maxFileSize > 0 && int64(len(data)) > l.maxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max: %d bytes)", len(data), l.maxFileSize)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF %s: %w", name, err)
	}

	doc := &Document{Name: name}
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page, warn := l.loadPage(reader, pageNum)
		if warn != "" {
			doc.Warnings = append(doc.Warnings, warn)
		}
		doc.Pages = append(doc.Pages, page)
	}

	return doc, nil
}

// loadPage extracts one page with panic recovery; malformed content streams
// in the wild routinely panic inside the parser.
func (l *Loader) loadPage(reader *pdf.Reader, pageNum int) (result Page, warning string) {
	result = Page{Number: pageNum, Width: defaultPageWidth, Height: defaultPageHeight}

	defer func() {
		if r := recover(); r != nil {
			warning = fmt.Sprintf("page %d: content extraction panicked: %v", pageNum, r)
		}
	}()

	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return result, fmt.Sprintf("page %d: null page object", pageNum)
	}

	if w, h, ok := pageDimensions(page); ok {
		result.Width, result.Height = w, h
	}

	content := page.Content()
	result.Words = buildWords(content.Text, pageNum, result.Height)

	if text, err := page.GetPlainText(nil); err == nil {
		result.Text = text
	} else if len(result.Words) == 0 {
		return result, fmt.Sprintf("page %d: text extraction failed: %v", pageNum, err)
	}

	return result, warning
}

// pageDimensions reads the page MediaBox, walking up the page tree for an
// inherited box when the page itself carries none.
func pageDimensions(page pdf.Page) (width, height float64, ok bool) {
	current := page.V
	for i := 0; i < 10; i++ {
		mediaBox := current.Key("MediaBox")
		if !mediaBox.IsNull() && mediaBox.Kind() == pdf.Array && mediaBox.Len() == 4 {
			llx := numericValue(mediaBox.Index(0))
			lly := numericValue(mediaBox.Index(1))
			urx := numericValue(mediaBox.Index(2))
			ury := numericValue(mediaBox.Index(3))
			if urx > llx && ury > lly {
				return urx - llx, ury - lly, true
			}
		}
		parent := current.Key("Parent")
		if parent.IsNull() {
			break
		}
		current = parent
	}
	return 0, 0, false
}

func numericValue(v pdf.Value) float64 {
	switch v.Kind() {
	case pdf.Integer:
		return float64(v.Int64())
	case pdf.Real:
		return v.Float64()
	default:
		return 0
	}
}

// buildWords merges positioned glyph runs into words. The PDF text operators
// emit fragments in arbitrary order, so fragments are first bucketed into
// rows by Y, sorted by X, then joined while the horizontal gap stays within
// tolerance.
func buildWords(texts []pdf.Text, pageNum int, pageHeight float64) []Word {
	filtered := make([]pdf.Text, 0, len(texts))
	for _, t := range texts {
		if strings.TrimSpace(t.S) != "" {
			filtered = append(filtered, t)
		}
	}
	if len(filtered) == 0 {
		return nil
	}

	rows := groupGlyphRows(filtered)

	var words []Word
	for _, row := range rows {
		sort.SliceStable(row, func(i, j int) bool { return row[i].X < row[j].X })

		var current *Word
		for _, t := range row {
			gap := wordGapTolerance
			if byFont := t.FontSize * wordGapFontFraction; byFont > gap {
				gap = byFont
			}
			top := pageHeight - t.Y
			if current != nil && t.X-current.X1 <= gap {
				current.Text += strings.TrimSpace(t.S)
				if t.X+t.W > current.X1 {
					current.X1 = t.X + t.W
				}
				continue
			}
			if current != nil {
				words = append(words, *current)
			}
			current = &Word{
				Text:   strings.TrimSpace(t.S),
				Page:   pageNum,
				X0:     t.X,
				X1:     t.X + t.W,
				Top:    top,
				Bottom: top + t.FontSize,
			}
		}
		if current != nil {
			words = append(words, *current)
		}
	}

	return words
}

// groupGlyphRows buckets glyph fragments whose Y coordinates fall within the
// row tolerance of one another, top of page first.
func groupGlyphRows(texts []pdf.Text) [][]pdf.Text {
	type bucket struct {
		yMin, yMax float64
		texts      []pdf.Text
	}

	var buckets []bucket
	for _, t := range texts {
		placed := false
		for i := range buckets {
			if t.Y >= buckets[i].yMin-glyphRowTolerance && t.Y <= buckets[i].yMax+glyphRowTolerance {
				buckets[i].texts = append(buckets[i].texts, t)
				if t.Y < buckets[i].yMin {
					buckets[i].yMin = t.Y
				}
				if t.Y > buckets[i].yMax {
					buckets[i].yMax = t.Y
				}
				placed = true
				break
			}
		}
		if !placed {
			buckets = append(buckets, bucket{yMin: t.Y, yMax: t.Y, texts: []pdf.Text{t}})
		}
	}

	// PDF Y grows upward, so the visually first row has the largest Y.
	sort.SliceStable(buckets, func(i, j int) bool { return buckets[i].yMax > buckets[j].yMax })

	rows := make([][]pdf.Text, len(buckets))
	for i, b := range buckets {
		rows[i] = b.texts
	}
	return rows
}

// AllWords returns the document's words across pages in page order.
func (d *Document) AllWords() []Word {
	var words []Word
	for _, p := range d.Pages {
		words = append(words, p.Words...)
	}
	return words
}

// FullText returns the document's layout-reconstructed text: visual lines in
// reading order joined by newlines, one block per page. Pages without word
// geometry fall back to their linear text.
func (d *Document) FullText() string {
	var b strings.Builder
	for _, p := range d.Pages {
		if len(p.Words) == 0 {
			b.WriteString(p.Text)
			b.WriteString("\n")
			continue
		}
		for _, line := range GroupIntoLines(p.Words, DefaultYTolerance) {
			b.WriteString(line.Text)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// LineTexts returns the text of every visual line of the document in reading
// order. Pages without geometry contribute their linear text split on
// newlines so extraction still sees something per page.
func (d *Document) LineTexts(yTol float64) []string {
	var lines []string
	for _, p := range d.Pages {
		if len(p.Words) == 0 {
			for _, l := range strings.Split(p.Text, "\n") {
				if strings.TrimSpace(l) != "" {
					lines = append(lines, strings.TrimSpace(l))
				}
			}
			continue
		}
		for _, line := range GroupIntoLines(p.Words, yTol) {
			lines = append(lines, line.Text)
		}
	}
	return lines
}
