package extract

import (
	"strings"
)

// Output column names the header extractor resolves. These match the quote
// family's target schema.
const (
	FieldQuoteNumber     = "QuoteNumber"
	FieldQuoteDate       = "QuoteDate"
	FieldQuoteValidDate  = "QuoteValidDate"
	FieldCustomerNumber  = "CustomerNumber"
	FieldFirstName       = "FirstName"
	FieldLastName        = "LastName"
	FieldReferralManager = "ReferralManager"
	FieldCompany         = "Company"
	FieldAddress         = "Address"
	FieldCity            = "City"
	FieldState           = "State"
	FieldZipCode         = "ZipCode"
	FieldCountry         = "Country"

	// fieldContact is internal: its value is split into first/last name.
	fieldContact = "Contact"
)

// HeaderConfig carries the label variants and address configuration for one
// layout family.
type HeaderConfig struct {
	Fields  []FieldLabel
	Address AddressConfig
}

// DefaultHeaderConfig returns the configuration for the quote layout family.
func DefaultHeaderConfig() HeaderConfig {
	return HeaderConfig{
		Fields: []FieldLabel{
			{Name: FieldQuoteNumber, Variants: []string{"Quote", "Quote No", "Quote Number"}, Type: TypeInteger},
			{Name: FieldQuoteDate, Variants: []string{"Date"}, Type: TypeDate},
			{Name: FieldQuoteValidDate, Variants: []string{"Quote Good Through", "Valid Through"}, Type: TypeDate},
			{Name: FieldCustomerNumber, Variants: []string{"Customer", "Cust", "Cust#", "Customer No"}, Type: TypeInteger, GeometryFirst: true},
			{Name: fieldContact, Variants: []string{"Contact"}, Type: TypeText},
			{Name: FieldReferralManager, Variants: []string{"Salesperson", "Created By"}, Type: TypeText},
		},
		Address: DefaultAddressConfig(),
	}
}

// HeaderExtractor resolves the document-level fields of a quote: identifiers,
// dates, contact and the ship-to address.
type HeaderExtractor struct {
	cfg     HeaderConfig
	locator *Locator
}

// NewHeaderExtractor creates a header extractor for the given family
// configuration.
func NewHeaderExtractor(cfg HeaderConfig) *HeaderExtractor {
	return &HeaderExtractor{cfg: cfg, locator: NewLocator(cfg.Fields)}
}

// Extract returns the resolved header fields keyed by output column name.
// Unresolved fields are absent from the map; the assembler blanks them.
func (h *HeaderExtractor) Extract(fullText string, lines []string) map[string]string {
	fields := make(map[string]string)

	for _, f := range h.cfg.Fields {
		v := h.locator.Find(fullText, lines, f.Name)
		if v == "" {
			continue
		}
		if f.Name == fieldContact {
			first, last := splitContactName(v)
			if first != "" {
				fields[FieldFirstName] = first
			}
			if last != "" {
				fields[FieldLastName] = last
			}
			continue
		}
		fields[f.Name] = v
	}

	addr := ExtractAddress(lines, h.cfg.Address)
	setIfNonEmpty(fields, FieldCompany, addr.Company)
	setIfNonEmpty(fields, FieldAddress, addr.Street)
	setIfNonEmpty(fields, FieldCity, addr.City)
	setIfNonEmpty(fields, FieldState, addr.State)
	setIfNonEmpty(fields, FieldZipCode, addr.Zip)
	if addr.Zip != "" {
		setIfNonEmpty(fields, FieldCountry, addr.Country)
	}

	return fields
}

// splitContactName splits "John Q. Smith" into first name and the remainder.
func splitContactName(name string) (first, last string) {
	parts := strings.Fields(strings.TrimSpace(name))
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

func setIfNonEmpty(m map[string]string, key, value string) {
	if strings.TrimSpace(value) != "" {
		m[key] = strings.TrimSpace(value)
	}
}
