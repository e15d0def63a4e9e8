package pdf

// Word is an atomic positioned token produced by the text layer. Coordinates
// follow the visual convention: X grows rightward, Top grows downward from the
// top edge of the page.
type Word struct {
	Text   string
	Page   int
	X0     float64
	X1     float64
	Top    float64
	Bottom float64
}

// VisualLine is a reconstructed row of words sharing an approximate vertical
// position on one page.
type VisualLine struct {
	Page  int
	Y     float64
	Words []Word
	Text  string
}

// Page holds the extracted substrates for a single PDF page: linear text and
// the positioned word list. A page that failed to parse has empty Text and a
// nil word list.
type Page struct {
	Number int
	Width  float64
	Height float64
	Text   string
	Words  []Word
}

// Document is one input PDF after text-layer extraction. It is immutable for
// the lifetime of an extraction call.
type Document struct {
	Name     string
	Pages    []Page
	Warnings []string
}

// ValidateRequest asks for structural validation of raw PDF bytes.
type ValidateRequest struct {
	Name string
	Data []byte
}

// ValidateResult reports whether the bytes parse as a PDF and how many pages
// the document carries.
type ValidateResult struct {
	Name    string
	Valid   bool
	Pages   int
	Message string
}

// FileInfo describes a PDF file discovered by directory search.
type FileInfo struct {
	Name         string
	Path         string
	Size         int64
	ModifiedTime string
}
