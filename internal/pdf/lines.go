package pdf

import (
	"math"
	"sort"
	"strings"
)

// DefaultYTolerance is the vertical bucket size used when reconstructing
// visual lines from word geometry. Layout families with unusually tight or
// loose leading need a different value; two words sitting exactly on a bucket
// boundary can land in adjacent lines, which is a tuning concern rather than
// something the grouping can fix generically.
const DefaultYTolerance = 2.5

// GroupIntoLines buckets words by quantized vertical position into ordered
// visual lines. Words in a bucket are sorted by X and joined with single
// spaces, recovering the "label ... value" adjacency that linear text
// extraction loses.
func GroupIntoLines(words []Word, yTol float64) []VisualLine {
	if len(words) == 0 {
		return nil
	}
	if yTol <= 0 {
		yTol = DefaultYTolerance
	}

	type key struct {
		page int
		y    float64
	}
	buckets := make(map[key][]Word)
	for _, w := range words {
		k := key{page: w.Page, y: math.Round(w.Top/yTol) * yTol}
		buckets[k] = append(buckets[k], w)
	}

	keys := make([]key, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].page != keys[j].page {
			return keys[i].page < keys[j].page
		}
		return keys[i].y < keys[j].y
	})

	lines := make([]VisualLine, 0, len(keys))
	for _, k := range keys {
		ws := buckets[k]
		sort.SliceStable(ws, func(i, j int) bool { return ws[i].X0 < ws[j].X0 })

		parts := make([]string, 0, len(ws))
		for _, w := range ws {
			parts = append(parts, w.Text)
		}
		text := strings.TrimSpace(strings.Join(parts, " "))
		if text == "" {
			continue
		}
		lines = append(lines, VisualLine{Page: k.page, Y: k.y, Words: ws, Text: text})
	}

	return lines
}
