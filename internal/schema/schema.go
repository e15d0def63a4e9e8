// Package schema defines the output column layout and per-field extraction
// rules for a document family. Schemas are immutable configuration: built in
// for the quote family, loadable from a YAML side file for variant families.
package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Family selects how records are produced from a document.
type Family string

const (
	// FamilyQuote broadcasts header fields onto one record per line item.
	FamilyQuote Family = "quote"
	// FamilyMapped produces exactly one record per document from a
	// field-to-pattern map.
	FamilyMapped Family = "mapped"
)

// FieldRule is one externally supplied extraction rule for the mapped family.
// The pattern's first capture group is the value. An invalid pattern skips
// the field, never the batch.
type FieldRule struct {
	Field   string `yaml:"field"`
	Pattern string `yaml:"pattern"`
	Type    string `yaml:"type"`
	Default string `yaml:"default"`
}

// Schema is the target output layout: an ordered column list plus the
// constants and coercions the assembler applies.
type Schema struct {
	Name    string   `yaml:"name"`
	Family  Family   `yaml:"family"`
	Columns []string `yaml:"columns"`

	// Constants are fixed values broadcast onto every record (e.g. Brand).
	Constants map[string]string `yaml:"constants"`

	// NumericColumns are coerced to numbers; coercion failure yields blank.
	NumericColumns []string `yaml:"numeric_columns"`

	// FileColumn receives the source file name, when present in Columns.
	FileColumn string `yaml:"file_column"`

	// ItemColumns maps output columns to line-item attributes
	// (line_no, item_id, qty, unit_price, total, description).
	ItemColumns map[string]string `yaml:"item_columns"`

	// Rules drive the mapped family.
	Rules []FieldRule `yaml:"rules"`
}

// QuoteSchema returns the built-in schema for the quote layout family.
func QuoteSchema() *Schema {
	return &Schema{
		Name:   "quote",
		Family: FamilyQuote,
		Columns: []string{
			"ReferralManager",
			"ReferralEmail",
			"Brand",
			"QuoteNumber",
			"QuoteDate",
			"Company",
			"FirstName",
			"LastName",
			"ContactEmail",
			"ContactPhone",
			"Address",
			"County",
			"City",
			"State",
			"ZipCode",
			"Country",
			"item_id",
			"item_desc",
			"UnitPrice",
			"TotalSales",
			"QuoteValidDate",
			"CustomerNumber",
			"manufacturer_Name",
			"PDF",
			"DemoQuote",
		},
		Constants:      map[string]string{"Brand": "Cadre Wire Group"},
		NumericColumns: []string{"UnitPrice", "TotalSales"},
		FileColumn:     "PDF",
		ItemColumns: map[string]string{
			"item_id":    "item_id",
			"item_desc":  "description",
			"UnitPrice":  "unit_price",
			"TotalSales": "total",
		},
	}
}

// Load reads and validates a schema side file. Validation failures here are
// the one error class that aborts before any document is processed.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse schema file %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid schema %s: %w", path, err)
	}
	return &s, nil
}

// Resolve turns a schema setting into a loaded schema: the built-in quote
// family by name, otherwise a YAML side file path.
func Resolve(setting string) (*Schema, error) {
	if setting == "" || setting == "quote" {
		return QuoteSchema(), nil
	}
	return Load(setting)
}

// Validate checks the schema's structural integrity.
func (s *Schema) Validate() error {
	switch s.Family {
	case FamilyQuote, FamilyMapped:
	case "":
		return fmt.Errorf("family is required (one of %q, %q)", FamilyQuote, FamilyMapped)
	default:
		return fmt.Errorf("unknown family: %q", s.Family)
	}

	if len(s.Columns) == 0 {
		return fmt.Errorf("columns cannot be empty")
	}
	seen := make(map[string]struct{}, len(s.Columns))
	for _, c := range s.Columns {
		if c == "" {
			return fmt.Errorf("empty column name")
		}
		if _, dup := seen[c]; dup {
			return fmt.Errorf("duplicate column: %s", c)
		}
		seen[c] = struct{}{}
	}

	if s.FileColumn != "" {
		if _, ok := seen[s.FileColumn]; !ok {
			return fmt.Errorf("file_column %q is not a declared column", s.FileColumn)
		}
	}
	for col := range s.ItemColumns {
		if _, ok := seen[col]; !ok {
			return fmt.Errorf("item_columns key %q is not a declared column", col)
		}
	}
	for _, r := range s.Rules {
		if r.Field == "" {
			return fmt.Errorf("rule with empty field name")
		}
	}
	return nil
}

// IsNumeric reports whether the column is coerced to a number.
func (s *Schema) IsNumeric(column string) bool {
	for _, c := range s.NumericColumns {
		if c == column {
			return true
		}
	}
	return false
}

// PlaceholderWarning returns a non-fatal warning when a mapped schema looks
// like it still carries placeholder headers instead of the family's real
// column list.
func (s *Schema) PlaceholderWarning() string {
	if s.Family == FamilyMapped && len(s.Columns) <= 3 {
		return "schema looks like placeholder headers; replace columns with the family's real header list"
	}
	return ""
}
