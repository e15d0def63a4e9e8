// Package assemble composes extracted fields and line items into normalized
// output records that exactly match a target schema.
package assemble

import (
	"strconv"
	"strings"

	"github.com/quotelift/quote-extractor/internal/extract"
	"github.com/quotelift/quote-extractor/internal/schema"
)

// OutputRecord maps column names to cell values (string or float64). Every
// declared schema column is present; unresolved cells hold "".
type OutputRecord map[string]any

// Assemble turns one document's extraction result into output records.
// Quote-family schemas get one record per line item with header fields
// broadcast onto each row (a single header-only record when the document
// yielded no items, so every document produces at least one row). Mapped
// schemas get exactly one record. Extractor outputs without a schema column
// are dropped silently.
func Assemble(res *extract.Result, fileName string, s *schema.Schema) []OutputRecord {
	header := headerValues(res, fileName, s)

	if s.Family != schema.FamilyQuote || len(res.Items) == 0 {
		return []OutputRecord{buildRecord(header, nil, s)}
	}

	records := make([]OutputRecord, 0, len(res.Items))
	for i := range res.Items {
		records = append(records, buildRecord(header, &res.Items[i], s))
	}
	return records
}

func headerValues(res *extract.Result, fileName string, s *schema.Schema) map[string]string {
	header := make(map[string]string, len(res.Fields)+len(s.Constants)+1)
	for k, v := range res.Fields {
		header[k] = v
	}
	for k, v := range s.Constants {
		header[k] = v
	}
	if s.FileColumn != "" {
		header[s.FileColumn] = fileName
	}
	return header
}

func buildRecord(header map[string]string, item *extract.LineItem, s *schema.Schema) OutputRecord {
	rec := make(OutputRecord, len(s.Columns))
	for _, col := range s.Columns {
		raw := ""
		if attr, ok := s.ItemColumns[col]; ok && item != nil {
			raw = itemAttr(item, attr)
		} else if v, ok := header[col]; ok {
			raw = v
		}

		if s.IsNumeric(col) {
			rec[col] = coerceNumber(raw)
			continue
		}
		if strings.Contains(strings.ToLower(col), "date") && raw != "" {
			raw = extract.NormalizeDate(raw)
		}
		rec[col] = raw
	}
	return rec
}

func itemAttr(item *extract.LineItem, attr string) string {
	switch attr {
	case "line_no":
		return item.LineNo
	case "item_id":
		return item.ItemID
	case "qty":
		return item.Qty
	case "unit_price":
		return item.UnitPrice
	case "total":
		return item.Total
	case "description":
		return item.Description
	default:
		return ""
	}
}

// coerceNumber parses a money- or quantity-shaped string into a float64;
// anything unparseable comes back blank rather than erroring out of the
// assembler.
func coerceNumber(raw string) any {
	cleaned := strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(raw, "$", ""), ",", ""))
	if cleaned == "" {
		return ""
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return ""
	}
	return f
}
