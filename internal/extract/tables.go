package extract

import (
	"sort"
	"strings"

	"github.com/quotelift/quote-extractor/internal/pdf"
)

// TableSettings is one geometry variant for table detection. Quote layouts
// vary enough that a single tolerance misses some families, so detection runs
// under several variants and the first that produces items wins.
type TableSettings struct {
	// RowTolerance groups words into table rows by vertical position.
	RowTolerance float64
	// MinColumnGap is the horizontal gap that separates two cells.
	MinColumnGap float64
}

// DefaultTableSettings returns the detection variants in priority order:
// wide-gap first (ruled layouts leave generous cell padding), then a tighter
// text-alignment pass.
func DefaultTableSettings() []TableSettings {
	return []TableSettings{
		{RowTolerance: 3.0, MinColumnGap: 18.0},
		{RowTolerance: 2.5, MinColumnGap: 10.0},
	}
}

// DetectTableRows reconstructs cell rows from word geometry on one page:
// words are grouped into rows by Y, sorted by X, and split into cells at
// horizontal gaps exceeding the column-gap setting.
func DetectTableRows(words []pdf.Word, settings TableSettings) [][]string {
	lines := pdf.GroupIntoLines(words, settings.RowTolerance)
	if len(lines) == 0 {
		return nil
	}

	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		var cells []string
		var cell []string
		var prevX1 float64

		sorted := make([]pdf.Word, len(line.Words))
		copy(sorted, line.Words)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X0 < sorted[j].X0 })

		for i, w := range sorted {
			if i > 0 && w.X0-prevX1 > settings.MinColumnGap {
				cells = append(cells, strings.Join(cell, " "))
				cell = cell[:0]
			}
			cell = append(cell, w.Text)
			prevX1 = w.X1
		}
		if len(cell) > 0 {
			cells = append(cells, strings.Join(cell, " "))
		}
		rows = append(rows, cells)
	}
	return rows
}
