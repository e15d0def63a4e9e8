package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractAddressBasicBlock(t *testing.T) {
	lines := []string{
		"Quote 000123",
		"Ship To",
		"ACME CORP",
		"123 MAIN ST",
		"SPRINGFIELD IL 62701",
		"USA",
		"Product",
	}

	addr := ExtractAddress(lines, DefaultAddressConfig())
	assert.Equal(t, "ACME CORP", addr.Company)
	assert.Equal(t, "123 MAIN ST", addr.Street)
	assert.Equal(t, "SPRINGFIELD", addr.City)
	assert.Equal(t, "IL", addr.State)
	assert.Equal(t, "62701", addr.Zip)
	assert.Equal(t, "USA", addr.Country)
}

func TestExtractAddressCommaPivot(t *testing.T) {
	lines := []string{
		"Ship To",
		"ACME CORP",
		"123 Main St",
		"Springfield, IL 62704-1234",
	}

	addr := ExtractAddress(lines, DefaultAddressConfig())
	assert.Equal(t, "Springfield", addr.City)
	assert.Equal(t, "IL", addr.State)
	assert.Equal(t, "62704-1234", addr.Zip)
	// No country line in the block, default applies.
	assert.Equal(t, "USA", addr.Country)
}

// A stop marker matches whole words only, so a company name that merely
// begins with one ("Totally" vs "Total") stays part of the block.
func TestExtractAddressMarkerPrefixCompany(t *testing.T) {
	lines := []string{
		"Ship To",
		"Totally Fine Co",
		"88 Harbor Rd",
		"Portland OR 97201",
	}

	addr := ExtractAddress(lines, DefaultAddressConfig())
	assert.Equal(t, "Totally Fine Co", addr.Company)
	assert.Equal(t, "88 Harbor Rd", addr.Street)
	assert.Equal(t, "Portland", addr.City)
	assert.Equal(t, "OR", addr.State)
	assert.Equal(t, "97201", addr.Zip)
}

// Stop markers end collection regardless of where the other sections sit, so
// a bill-to block printed after the ship-to block never bleeds in.
func TestExtractAddressStopsAtBillTo(t *testing.T) {
	lines := []string{
		"Ship To",
		"ACME CORP",
		"123 Main St",
		"Springfield IL 62704",
		"Bill To",
		"OTHER LLC",
		"9 Wrong Way",
		"Elsewhere TX 75001",
	}

	addr := ExtractAddress(lines, DefaultAddressConfig())
	assert.Equal(t, "ACME CORP", addr.Company)
	assert.Equal(t, "123 Main St", addr.Street)
	assert.Equal(t, "62704", addr.Zip)
}

// The ship-to block wins no matter which section is printed first.
func TestExtractAddressBillToPrintedFirst(t *testing.T) {
	lines := []string{
		"Bill To",
		"OTHER LLC",
		"PO Box 9120",
		"Elsewhere TX 75001",
		"Ship To",
		"ACME CORP",
		"123 Main St",
		"Springfield IL 62704",
	}

	addr := ExtractAddress(lines, DefaultAddressConfig())
	assert.Equal(t, "ACME CORP", addr.Company)
	assert.Equal(t, "123 Main St", addr.Street)
	assert.Equal(t, "Springfield", addr.City)
	assert.Equal(t, "IL", addr.State)
	assert.Equal(t, "62704", addr.Zip)
}

func TestExtractAddressAnchorInline(t *testing.T) {
	// Company printed on the anchor row itself.
	lines := []string{
		"Ship To: ACME CORP",
		"123 Main St",
		"Springfield IL 62704",
	}

	addr := ExtractAddress(lines, DefaultAddressConfig())
	assert.Equal(t, "ACME CORP", addr.Company)
	assert.Equal(t, "123 Main St", addr.Street)
	assert.Equal(t, "Springfield", addr.City)
}

func TestExtractAddressDoubledStreetLine(t *testing.T) {
	lines := []string{
		"Ship To",
		"ACME CORP",
		"123 Main St 123 Main St",
		"Springfield IL 62704",
	}

	addr := ExtractAddress(lines, DefaultAddressConfig())
	assert.Equal(t, "123 Main St", addr.Street)
}

func TestExtractAddressLongCountryForm(t *testing.T) {
	lines := []string{
		"Ship To",
		"ACME CORP",
		"123 Main St",
		"Springfield IL 62704",
		"United States of America",
	}

	addr := ExtractAddress(lines, DefaultAddressConfig())
	assert.Equal(t, "USA", addr.Country)
}

func TestExtractAddressMissingAnchor(t *testing.T) {
	lines := []string{
		"ACME CORP",
		"123 Main St",
		"Springfield IL 62704",
	}
	addr := ExtractAddress(lines, DefaultAddressConfig())
	assert.Equal(t, Address{}, addr)
}

func TestExtractAddressMissingPivot(t *testing.T) {
	lines := []string{
		"Ship To",
		"ACME CORP",
		"123 Main St",
	}
	addr := ExtractAddress(lines, DefaultAddressConfig())
	assert.Equal(t, Address{}, addr)
}

func TestExtractAddressNoStreet(t *testing.T) {
	// Pivot directly under the company, no street line at all.
	lines := []string{
		"Ship To",
		"ACME CORP",
		"Springfield IL 62704",
	}

	addr := ExtractAddress(lines, DefaultAddressConfig())
	assert.Equal(t, "ACME CORP", addr.Company)
	assert.Equal(t, "", addr.Street)
	assert.Equal(t, "Springfield", addr.City)
}

func TestSplitPivotLine(t *testing.T) {
	tests := []struct {
		line  string
		city  string
		state string
		zip   string
	}{
		{"SPRINGFIELD IL 62701", "SPRINGFIELD", "IL", "62701"},
		{"Springfield, IL 62704", "Springfield", "IL", "62704"},
		{"Salt Lake City UT 84101", "Salt Lake City", "UT", "84101"},
		{"just words", "", "", ""},
		{"62701 alone first", "", "", "62701"},
	}
	for _, tt := range tests {
		city, state, zip := splitPivotLine(tt.line)
		assert.Equal(t, tt.city, city, "city of %q", tt.line)
		assert.Equal(t, tt.state, state, "state of %q", tt.line)
		assert.Equal(t, tt.zip, zip, "zip of %q", tt.line)
	}
}

func TestCollapseDoubledLine(t *testing.T) {
	assert.Equal(t, "123 Main St", collapseDoubledLine("123 Main St 123 Main St"))
	assert.Equal(t, "123 Main St", collapseDoubledLine("123 Main St"))
	assert.Equal(t, "123 Main Main St", collapseDoubledLine("123 Main Main St"))
}
