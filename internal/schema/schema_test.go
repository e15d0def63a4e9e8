package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteSchemaIsValid(t *testing.T) {
	s := QuoteSchema()
	require.NoError(t, s.Validate())

	assert.Equal(t, FamilyQuote, s.Family)
	assert.Len(t, s.Columns, 25)
	assert.Equal(t, "PDF", s.FileColumn)
	assert.Equal(t, "Cadre Wire Group", s.Constants["Brand"])
	assert.True(t, s.IsNumeric("UnitPrice"))
	assert.True(t, s.IsNumeric("TotalSales"))
	assert.False(t, s.IsNumeric("QuoteNumber"))
	assert.Empty(t, s.PlaceholderWarning())
}

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoice.yaml")
	content := `
name: invoice
family: mapped
columns:
  - InvoiceNumber
  - IssueDate
  - Carrier
  - File
file_column: File
rules:
  - field: InvoiceNumber
    pattern: 'Invoice No:\s*(\S+)'
  - field: IssueDate
    pattern: 'Issue Date:\s*([\d/-]+)'
    type: date
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "invoice", s.Name)
	assert.Equal(t, FamilyMapped, s.Family)
	assert.Equal(t, []string{"InvoiceNumber", "IssueDate", "Carrier", "File"}, s.Columns)
	require.Len(t, s.Rules, 2)
	assert.Equal(t, "InvoiceNumber", s.Rules[0].Field)
}

func TestLoadFailsFast(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("columns: [a\n"), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *Schema {
		return &Schema{Family: FamilyMapped, Columns: []string{"A", "B"}}
	}

	tests := []struct {
		name   string
		mutate func(*Schema)
		errMsg string
	}{
		{"valid", func(s *Schema) {}, ""},
		{"missing family", func(s *Schema) { s.Family = "" }, "family is required"},
		{"unknown family", func(s *Schema) { s.Family = "exotic" }, "unknown family"},
		{"no columns", func(s *Schema) { s.Columns = nil }, "columns cannot be empty"},
		{"empty column", func(s *Schema) { s.Columns = []string{"A", ""} }, "empty column name"},
		{"duplicate column", func(s *Schema) { s.Columns = []string{"A", "A"} }, "duplicate column"},
		{"undeclared file column", func(s *Schema) { s.FileColumn = "Nope" }, "not a declared column"},
		{"undeclared item column", func(s *Schema) { s.ItemColumns = map[string]string{"Nope": "total"} }, "not a declared column"},
		{"rule without field", func(s *Schema) { s.Rules = []FieldRule{{Pattern: "x"}} }, "empty field name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base()
			tt.mutate(s)
			err := s.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestResolve(t *testing.T) {
	s, err := Resolve("")
	require.NoError(t, err)
	assert.Equal(t, FamilyQuote, s.Family)

	s, err = Resolve("quote")
	require.NoError(t, err)
	assert.Equal(t, "quote", s.Name)

	_, err = Resolve("/no/such/schema.yaml")
	assert.Error(t, err)
}

func TestPlaceholderWarning(t *testing.T) {
	s := &Schema{Family: FamilyMapped, Columns: []string{"A", "B", "C"}}
	assert.NotEmpty(t, s.PlaceholderWarning())

	s.Columns = []string{"A", "B", "C", "D"}
	assert.Empty(t, s.PlaceholderWarning())

	quote := &Schema{Family: FamilyQuote, Columns: []string{"A"}}
	assert.Empty(t, quote.PlaceholderWarning())
}
