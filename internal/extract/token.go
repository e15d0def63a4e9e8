// Package extract implements the layout-tolerant field extraction engine for
// vendor sales-quote PDFs: token classification, label-anchored field
// location, address block decomposition and line-item reconstruction.
package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	moneyRe     = regexp.MustCompile(`^\$?[\d,]+\.\d{2,5}$`)
	quantityRe  = regexp.MustCompile(`^\d+(?:\.\d+)?$`)
	itemCodeRe  = regexp.MustCompile(`^[A-Za-z0-9][A-Z0-9.\-/_]+$`)
	zipRe       = regexp.MustCompile(`^\d{5}(?:-\d{4})?$`)
	stateRe     = regexp.MustCompile(`^[A-Z]{2}$`)
	dateTokenRe = regexp.MustCompile(`^\d{1,2}[/-]\d{1,2}[/-]\d{2,4}$`)
	datePartsRe = regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})`)
	amountRe    = regexp.MustCompile(`\d+\.\d{2,}`)
	upperRunRe  = regexp.MustCompile(`^[A-Z/]+$`)
	labelWordRe = regexp.MustCompile(`^[A-Za-z][A-Za-z.]*[:#]?$`)
)

// IsMoney reports whether the token is a currency amount: optional dollar
// sign, optional thousands separators, at least two decimal digits.
func IsMoney(token string) bool { return moneyRe.MatchString(token) }

// IsQuantity reports whether the token is a bare integer or decimal with no
// currency symbol.
func IsQuantity(token string) bool { return quantityRe.MatchString(token) }

// IsItemCode reports whether the token has the shape of a catalog item code.
func IsItemCode(token string) bool { return itemCodeRe.MatchString(token) }

// IsZip reports whether the token is a 5-digit US ZIP, optionally ZIP+4.
func IsZip(token string) bool { return zipRe.MatchString(token) }

// IsState reports whether the token is a two-letter uppercase state code.
func IsState(token string) bool { return stateRe.MatchString(token) }

// IsDate reports whether the token is a loose numeric date such as 9/5/24 or
// 09-05-2024.
func IsDate(token string) bool { return dateTokenRe.MatchString(token) }

// IsAllCapsName reports whether the token sequence looks like an
// uppercase-printed name (company names on quote headers are set this way).
func IsAllCapsName(s string) bool {
	s = strings.TrimSpace(s)
	letters := 0
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			letters++
		case unicode.IsLower(r) || unicode.IsDigit(r):
			return false
		case r == ' ' || r == '.' || r == ',' || r == '\'' || r == '&' || r == '-':
		default:
			return false
		}
	}
	return letters >= 2
}

// IsLabelWord reports whether the token looks like a field label: a leading
// capital, letters only, an optional trailing colon or hash.
func IsLabelWord(token string) bool {
	if !labelWordRe.MatchString(token) {
		return false
	}
	r := rune(token[0])
	return unicode.IsUpper(r)
}

// IsDescriptive reports whether the token is free text rather than a number,
// amount, unit abbreviation or bare digit run. Lines with at least one
// descriptive token qualify as description continuations.
func IsDescriptive(token string) bool {
	return !(IsQuantity(token) || IsMoney(token) || upperRunRe.MatchString(token) || isDigits(token))
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// NormalizeDate parses a loose date token and renders it as MM/DD/YYYY.
// Two-digit years are promoted into the 2000s; quotes predating 2000 do not
// occur in this data. Input without a recognizable date comes back trimmed
// but otherwise untouched.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	m := datePartsRe.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	mm, _ := strconv.Atoi(m[1])
	dd, _ := strconv.Atoi(m[2])
	yy, _ := strconv.Atoi(m[3])
	if yy < 100 {
		yy += 2000
	}
	return fmt.Sprintf("%02d/%02d/%04d", mm, dd, yy)
}

// NormalizeMoney strips currency punctuation and renders the first amount in
// the string with exactly two fraction digits. Returns "" when no amount is
// present.
func NormalizeMoney(s string) string {
	cleaned := strings.ReplaceAll(strings.ReplaceAll(s, "$", ""), ",", "")
	match := amountRe.FindString(cleaned)
	if match == "" {
		return ""
	}
	f, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return ""
	}
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// ParseMoney returns the numeric value of a money-shaped string.
func ParseMoney(s string) (float64, error) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(s, "$", ""), ",", ""))
	if cleaned == "" {
		return 0, fmt.Errorf("empty amount")
	}
	return strconv.ParseFloat(cleaned, 64)
}
