package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractMapped(t *testing.T) {
	fullText := "Invoice No: INV-2041\nIssue Date: 9/5/24\nCarrier:  Fast   Freight Co\n"
	fields := []MappedField{
		{Name: "InvoiceNumber", Pattern: `Invoice No:\s*(\S+)`},
		{Name: "IssueDate", Pattern: `Issue Date:\s*([\d/-]+)`},
		{Name: "Carrier", Pattern: `Carrier:\s*(.+)`},
		{Name: "Missing", Pattern: `Warehouse:\s*(\S+)`},
	}

	out := ExtractMapped(fullText, fields)

	assert.Equal(t, "INV-2041", out["InvoiceNumber"])
	// Date-named fields come back normalized.
	assert.Equal(t, "09/05/2024", out["IssueDate"])
	// Interior whitespace collapses to single spaces.
	assert.Equal(t, "Fast Freight Co", out["Carrier"])
	_, ok := out["Missing"]
	assert.False(t, ok)
}

func TestExtractMappedWholeMatchWithoutGroup(t *testing.T) {
	out := ExtractMapped("ref ABC-99 end", []MappedField{
		{Name: "Ref", Pattern: `ABC-\d+`},
	})
	assert.Equal(t, "ABC-99", out["Ref"])
}

func TestExtractMappedSkipsBadPatterns(t *testing.T) {
	out := ExtractMapped("some text", []MappedField{
		{Name: "Broken", Pattern: `([unclosed`},
		{Name: "Empty", Pattern: ""},
		{Name: "Fine", Pattern: `(some)`},
	})

	assert.Equal(t, map[string]string{"Fine": "some"}, out)
}

func TestExtractMappedTypesAndDefaults(t *testing.T) {
	fullText := "Due: 9/5/24\nAmount: $1,212.50\n"
	out := ExtractMapped(fullText, []MappedField{
		{Name: "Due", Pattern: `Due:\s*([\d/-]+)`, Type: "date"},
		{Name: "Amount", Pattern: `Amount:\s*(\S+)`, Type: "money"},
		{Name: "Warehouse", Pattern: `Warehouse:\s*(\S+)`, Default: "MAIN"},
	})

	assert.Equal(t, "09/05/2024", out["Due"])
	assert.Equal(t, "1212.50", out["Amount"])
	// Unresolved fields fall back to the rule's default.
	assert.Equal(t, "MAIN", out["Warehouse"])
}

func TestExtractMappedCaseInsensitive(t *testing.T) {
	out := ExtractMapped("QUOTE NUMBER 77", []MappedField{
		{Name: "Number", Pattern: `quote number\s*(\d+)`},
	})
	assert.Equal(t, "77", out["Number"])
}
