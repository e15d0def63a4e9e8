package extract

import (
	"strings"
)

// AddressConfig controls address block extraction for one layout family.
type AddressConfig struct {
	// Anchor is the section marker that opens the block.
	Anchor string
	// StopMarkers end block collection when one of them heads a line.
	StopMarkers []string
	// MaxWindow bounds the number of lines collected after the anchor.
	MaxWindow int
	// DefaultCountry is used when no country line appears in the block.
	DefaultCountry string
}

// DefaultAddressConfig returns the configuration for the quote layout family.
func DefaultAddressConfig() AddressConfig {
	return AddressConfig{
		Anchor: "Ship To",
		StopMarkers: []string{
			"Bill To", "Sold To", "Quoted For", "Quote Good Through",
			"Product", "Subtotal", "Total", "Freight",
		},
		MaxWindow:      15,
		DefaultCountry: "USA",
	}
}

// Address is a decomposed ship-to block. Sub-fields that could not be
// resolved are empty; extraction never fails outright.
type Address struct {
	Company string
	Street  string
	City    string
	State   string
	Zip     string
	Country string
}

// Extraction proceeds through explicit states so a partial match still emits
// whatever was resolved before the failure.
type addressState int

const (
	searchingAnchor addressState = iota
	collectingBlock
	locatingPivot
	decomposed
	failed
)

// ExtractAddress anchors on the configured section marker, collects the block
// up to a stop marker or the window bound, pivots on the first city/state/zip
// line and decomposes the block around it.
func ExtractAddress(lines []string, cfg AddressConfig) Address {
	if cfg.MaxWindow <= 0 {
		cfg.MaxWindow = 15
	}

	var addr Address
	var block []string
	anchorIdx, pivotIdx := -1, -1

	state := searchingAnchor
	for state != decomposed && state != failed {
		switch state {
		case searchingAnchor:
			for i, line := range lines {
				if containsMarker(line, cfg.Anchor) {
					anchorIdx = i
					break
				}
			}
			if anchorIdx < 0 {
				state = failed
				break
			}
			state = collectingBlock

		case collectingBlock:
			// Text trailing the anchor on its own row belongs to the block.
			if rest := textAfterMarker(lines[anchorIdx], cfg.Anchor); rest != "" {
				block = append(block, rest)
			}
			for i := anchorIdx + 1; i < len(lines) && len(block) < cfg.MaxWindow; i++ {
				if startsWithAnyMarker(lines[i], cfg.StopMarkers) {
					break
				}
				block = append(block, lines[i])
			}
			state = locatingPivot

		case locatingPivot:
			for i, line := range block {
				if lineHasZip(line) {
					pivotIdx = i
					break
				}
			}
			if pivotIdx < 0 {
				state = failed
				break
			}
			state = decomposed
		}
	}
	if state == failed {
		return addr
	}

	addr.City, addr.State, addr.Zip = splitPivotLine(block[pivotIdx])

	if pivotIdx > 0 {
		street := collapseDoubledLine(block[pivotIdx-1])
		if startsWithDigit(street) {
			addr.Street = street
		}
	}

	// The company is the nearest line above the street that is not itself
	// pivot-shaped. When no street was found, look directly above the pivot.
	companyIdx := pivotIdx - 1
	if addr.Street != "" {
		companyIdx = pivotIdx - 2
	}
	for i := companyIdx; i >= 0; i-- {
		candidate := strings.TrimSpace(block[i])
		if candidate == "" || lineHasZip(candidate) {
			continue
		}
		addr.Company = candidate
		break
	}

	addr.Country = cfg.DefaultCountry
	for i := pivotIdx + 1; i < len(block); i++ {
		if c := countryLine(block[i]); c != "" {
			addr.Country = c
			break
		}
	}

	return addr
}

// splitPivotLine decomposes "CITY ST 12345" (comma after the city tolerated)
// by locating the two-letter state immediately preceding the ZIP.
func splitPivotLine(line string) (city, state, zip string) {
	tokens := strings.Fields(line)
	zipIdx := -1
	for i, t := range tokens {
		if IsZip(t) {
			zipIdx = i
			break
		}
	}
	if zipIdx < 0 {
		return "", "", ""
	}
	zip = tokens[zipIdx]

	if zipIdx >= 1 && IsState(strings.TrimRight(tokens[zipIdx-1], ",")) {
		state = strings.TrimRight(tokens[zipIdx-1], ",")
		cityTokens := tokens[:zipIdx-1]
		for i, t := range cityTokens {
			cityTokens[i] = strings.TrimRight(t, ",")
		}
		city = strings.Join(cityTokens, " ")
	}
	return city, state, zip
}

// collapseDoubledLine halves a line whose token sequence is an exact repeated
// duplicate of itself, an artifact of some extraction paths emitting text
// twice.
func collapseDoubledLine(line string) string {
	tokens := strings.Fields(line)
	n := len(tokens)
	if n < 2 || n%2 != 0 {
		return strings.TrimSpace(line)
	}
	for i := 0; i < n/2; i++ {
		if tokens[i] != tokens[n/2+i] {
			return strings.TrimSpace(line)
		}
	}
	return strings.Join(tokens[:n/2], " ")
}

// countryLine returns the country reading of a block line, or "" when the
// line does not look like a country. The long US form is folded to the short
// code the output schema expects.
func countryLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if strings.EqualFold(trimmed, "United States of America") || strings.EqualFold(trimmed, "United States") {
		return "USA"
	}
	if len(trimmed) < 3 || lineHasZip(trimmed) {
		return ""
	}
	for _, r := range trimmed {
		if !(r == ' ' || (r >= 'A' && r <= 'Z')) {
			return ""
		}
	}
	// An all-caps letters-only line below the pivot reads as the country.
	return trimmed
}

func lineHasZip(line string) bool {
	for _, t := range strings.Fields(line) {
		if IsZip(strings.TrimRight(t, ",")) {
			return true
		}
	}
	return false
}

func startsWithDigit(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

func containsMarker(line, marker string) bool {
	return strings.Contains(normalizeMarker(line), normalizeMarker(marker))
}

// startsWithAnyMarker matches markers against whole leading words, so that
// "Total" stops a block but a company called "Totally Fine Co" does not.
func startsWithAnyMarker(line string, markers []string) bool {
	tokens := strings.Fields(normalizeMarker(line))
	for _, m := range markers {
		want := strings.Fields(normalizeMarker(m))
		if len(want) == 0 || len(want) > len(tokens) {
			continue
		}
		matched := true
		for j, w := range want {
			if strings.Trim(tokens[j], ":#.") != w {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

func textAfterMarker(line, marker string) string {
	idx := strings.Index(strings.ToLower(line), strings.ToLower(marker))
	if idx < 0 {
		return ""
	}
	rest := line[idx+len(marker):]
	return strings.TrimSpace(strings.TrimLeft(rest, ":# "))
}

func normalizeMarker(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
