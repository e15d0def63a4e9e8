package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/quotelift/quote-extractor/internal/pdf"
)

// LineItem is one reconstructed quote row. The tax row is synthetic: derived
// from the document totals rather than printed as an item.
type LineItem struct {
	LineNo      string
	ItemID      string
	Qty         string
	UnitPrice   string
	Total       string
	Description string
}

var (
	itemStartRe   = regexp.MustCompile(`^(\d{1,4})\s+([A-Za-z0-9][A-Z0-9.\-/_]+)\b`)
	summaryStopRe = regexp.MustCompile(`(?i)^(Subtotal|Total\b|Grand\s+Total|Freight|Tax\b|Product\b)`)
	taxAmountRe   = regexp.MustCompile(`\bTax\s+\$?\s*([\d,]+\.\d{2})\b`)
)

const (
	// descriptionLineCap bounds how many wrapped description lines one item
	// absorbs in the word-flow strategy.
	descriptionLineCap = 3
	// moneyLookaheadLines bounds the forward scan for a unit price or total
	// printed below its item row.
	moneyLookaheadLines = 4
	// taxEpsilon treats sub-half-cent tax amounts as zero.
	taxEpsilon = 0.005
)

// ItemExtractor reconstructs line items from detected tables, falling back to
// word-flow parsing of visual lines when no table yields items.
type ItemExtractor struct {
	tableSettings []TableSettings
	yTolerance    float64
}

// NewItemExtractor creates an item extractor with the default geometry
// variants.
func NewItemExtractor() *ItemExtractor {
	return &ItemExtractor{
		tableSettings: DefaultTableSettings(),
		yTolerance:    pdf.DefaultYTolerance,
	}
}

// Extract returns the document's deduplicated line items. The synthetic tax
// row is appended separately by AppendTaxItem.
func (e *ItemExtractor) Extract(doc *pdf.Document) []LineItem {
	items := e.extractFromTables(doc)
	if len(items) == 0 {
		items = e.extractFromWordFlow(doc.LineTexts(e.yTolerance))
	}
	return dedupeItems(items)
}

// extractFromTables runs the table strategy per page under each geometry
// variant, keeping the first variant that produces items for that page.
func (e *ItemExtractor) extractFromTables(doc *pdf.Document) []LineItem {
	var items []LineItem
	for _, page := range doc.Pages {
		if len(page.Words) == 0 {
			continue
		}
		for _, settings := range e.tableSettings {
			pageItems := itemsFromRows(DetectTableRows(page.Words, settings))
			if len(pageItems) > 0 {
				items = append(items, pageItems...)
				break
			}
		}
	}
	return items
}

// itemsFromRows scans cell rows for the item signature (integer line number,
// item-code second cell) and parses each hit, merging a following description
// continuation row when the item's own description is empty.
func itemsFromRows(rows [][]string) []LineItem {
	var items []LineItem
	for r := 0; r < len(rows); r++ {
		cells := rows[r]
		if len(cells) > 0 && summaryStopRe.MatchString(strings.TrimSpace(cells[0])) {
			continue
		}
		if !rowHasItemSignature(cells) {
			continue
		}

		item := parseItemFromCells(cells)
		if item.Description == "" && r+1 < len(rows) {
			next := strings.TrimSpace(strings.Join(rows[r+1], " "))
			if isDescriptionContinuation(next) {
				item.Description = next
				r++
			}
		}
		items = append(items, item)
	}
	return items
}

func rowHasItemSignature(cells []string) bool {
	if len(cells) < 2 {
		return false
	}
	return isDigits(strings.TrimSpace(cells[0])) && IsItemCode(strings.TrimSpace(cells[1]))
}

// parseItemFromCells classifies the tokens after the line number and item id:
// the first quantity-shaped token is the quantity, the last two money-shaped
// tokens are unit price and total, and cells carrying at least one
// descriptive token join into the description.
func parseItemFromCells(cells []string) LineItem {
	item := LineItem{
		LineNo: strings.TrimSpace(cells[0]),
		ItemID: strings.TrimSpace(cells[1]),
	}

	var tokens []string
	for _, c := range cells[2:] {
		tokens = append(tokens, strings.Fields(c)...)
	}

	for _, t := range tokens {
		if IsQuantity(t) {
			item.Qty = t
			break
		}
	}

	var money []string
	for _, t := range tokens {
		if IsMoney(t) {
			money = append(money, t)
		}
	}
	switch {
	case len(money) >= 2:
		item.UnitPrice = NormalizeMoney(money[len(money)-2])
		item.Total = NormalizeMoney(money[len(money)-1])
	case len(money) == 1:
		item.Total = NormalizeMoney(money[0])
	}

	var descParts []string
	for _, c := range cells[2:] {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		for _, t := range strings.Fields(c) {
			if IsDescriptive(t) {
				descParts = append(descParts, c)
				break
			}
		}
	}
	item.Description = strings.TrimSpace(strings.Join(descParts, " "))

	return item
}

// isDescriptionContinuation reports whether a line extends the previous
// item's description: it carries free text and neither opens a new item nor
// starts the summary section.
func isDescriptionContinuation(line string) bool {
	if line == "" || itemStartRe.MatchString(line) || summaryStopRe.MatchString(line) {
		return false
	}
	for _, t := range strings.Fields(line) {
		if IsDescriptive(t) {
			return true
		}
	}
	return false
}

// extractFromWordFlow parses items from visual lines directly: a line opening
// with "<line number> <item code>" starts an item, following lines are
// absorbed as wrapped description or scanned for a missing unit price/total,
// and a summary line ends collection.
func (e *ItemExtractor) extractFromWordFlow(lines []string) []LineItem {
	var items []LineItem
	var current *LineItem
	var descParts []string

	flush := func() {
		if current != nil {
			current.Description = strings.TrimSpace(strings.Join(descParts, " "))
			if current.ItemID != "" {
				items = append(items, *current)
			}
		}
		current = nil
		descParts = nil
	}

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		if summaryStopRe.MatchString(line) {
			flush()
			break
		}

		if itemStartRe.MatchString(line) {
			flush()
			item := parseItemFromTokens(strings.Fields(line))
			current = &item

			if current.UnitPrice == "" || current.Total == "" {
				e.backfillMoney(current, lines, i+1)
			}
			continue
		}

		if current != nil && len(descParts) < descriptionLineCap && isDescriptionContinuation(line) {
			descParts = append(descParts, line)
		}
	}
	flush()

	return items
}

// parseItemFromTokens parses an item-start line: first token is the line
// number, second the item id, and money/quantity tokens after that are
// classified in place.
func parseItemFromTokens(tokens []string) LineItem {
	item := LineItem{LineNo: tokens[0], ItemID: tokens[1]}
	after := tokens[2:]

	for _, t := range after {
		if IsQuantity(t) {
			item.Qty = t
			break
		}
	}

	var money []string
	for _, t := range after {
		if IsMoney(t) {
			money = append(money, t)
		}
	}
	switch {
	case len(money) >= 2:
		item.UnitPrice = NormalizeMoney(money[len(money)-2])
		item.Total = NormalizeMoney(money[len(money)-1])
	case len(money) == 1:
		item.Total = NormalizeMoney(money[0])
	}

	return item
}

// backfillMoney scans a bounded window of following lines for money tokens
// when the item row itself carried none, stopping at the next item or the
// summary section.
func (e *ItemExtractor) backfillMoney(item *LineItem, lines []string, start int) {
	for i := start; i < len(lines) && i < start+moneyLookaheadLines; i++ {
		line := strings.TrimSpace(lines[i])
		if itemStartRe.MatchString(line) || summaryStopRe.MatchString(line) {
			return
		}
		var money []string
		for _, t := range strings.Fields(line) {
			if IsMoney(t) {
				money = append(money, t)
			}
		}
		if len(money) == 0 {
			continue
		}
		if item.Total == "" {
			item.Total = NormalizeMoney(money[len(money)-1])
		}
		if item.UnitPrice == "" && len(money) >= 2 {
			item.UnitPrice = NormalizeMoney(money[len(money)-2])
		}
		if item.Total != "" && item.UnitPrice != "" {
			return
		}
	}
}

// dedupeItems removes repeats of the composite key (line number, item id,
// total); the first occurrence in document order wins.
func dedupeItems(items []LineItem) []LineItem {
	type key struct{ lineNo, itemID, total string }
	seen := make(map[key]struct{}, len(items))
	out := make([]LineItem, 0, len(items))
	for _, it := range items {
		k := key{it.LineNo, it.ItemID, it.Total}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, it)
	}
	return out
}

// ExtractTaxAmount locates the document-level tax amount, preferring the
// block between the "Product" header and the "Total" label so a "Tax ID"
// elsewhere on the page is not misread. Returns ok=false when no amount is
// found or the amount is effectively zero.
func ExtractTaxAmount(fullText string) (float64, bool) {
	block := fullText
	if start := strings.Index(fullText, "Product"); start >= 0 {
		if end := strings.Index(fullText[start:], "Total"); end >= 0 {
			block = fullText[start : start+end]
		}
	}

	m := taxAmountRe.FindStringSubmatch(block)
	if m == nil {
		m = taxAmountRe.FindStringSubmatch(fullText)
	}
	if m == nil {
		return 0, false
	}
	v, err := ParseMoney(m[1])
	if err != nil || math.Abs(v) < taxEpsilon {
		return 0, false
	}
	return v, true
}

// AppendTaxItem appends the synthetic tax row when the document carries a
// non-zero tax amount: id "Tax", empty description, quantity 1, unit price
// and total both equal to the amount.
func AppendTaxItem(items []LineItem, fullText string) []LineItem {
	amount, ok := ExtractTaxAmount(fullText)
	if !ok {
		return items
	}
	formatted := strconv.FormatFloat(amount, 'f', 2, 64)
	return append(items, LineItem{
		LineNo:    "TAX",
		ItemID:    "Tax",
		Qty:       "1",
		UnitPrice: formatted,
		Total:     formatted,
	})
}
