package extract

import (
	"regexp"
	"strings"
)

// ValueType is the expected shape of a field's value, applied as a validation
// gate before any candidate is accepted.
type ValueType string

const (
	TypeText    ValueType = "text"
	TypeDate    ValueType = "date"
	TypeMoney   ValueType = "money"
	TypeInteger ValueType = "integer"
)

// FieldLabel names a field together with the acceptable textual variants of
// its printed label. Static configuration, never derived from input.
type FieldLabel struct {
	Name         string
	Variants     []string
	Type         ValueType
	MaxLookahead int // lines scanned below the label when the value is not inline; 0 means defaultLookahead

	// GeometryFirst tries the geometry strategy before the text regex.
	// Free-text fields get this ordering implicitly; set it on typed fields
	// whose value is printed visually offset from the label.
	GeometryFirst bool
}

const defaultLookahead = 3

// integerValueRe bounds accepted digit runs so a ZIP or phone fragment is not
// mistaken for a document number.
var integerValueRe = regexp.MustCompile(`^\d{1,10}$`)

// Locator finds label-anchored values in a document using two interchangeable
// strategies: a text-regex pass over the linear text and a geometry pass over
// reconstructed visual lines. Fields with a rigid textual signature (numbers,
// dates, amounts) try the regex pass first; free-text fields try geometry
// first because their values are often visually offset from the label.
type Locator struct {
	fields     map[string]FieldLabel
	stopLabels map[string]struct{}
}

// NewLocator builds a locator over the given field set. Every variant of
// every field doubles as a stop marker for the others.
func NewLocator(fields []FieldLabel) *Locator {
	l := &Locator{
		fields:     make(map[string]FieldLabel, len(fields)),
		stopLabels: make(map[string]struct{}),
	}
	for _, f := range fields {
		l.fields[f.Name] = f
		for _, v := range f.Variants {
			l.stopLabels[normalizeLabel(v)] = struct{}{}
		}
	}
	return l
}

// Find returns the validated value for the named field, or "" when the field
// is unresolved. Unknown field names resolve to "".
func (l *Locator) Find(fullText string, lines []string, name string) string {
	field, ok := l.fields[name]
	if !ok {
		return ""
	}

	strategies := []func(string, []string, FieldLabel) string{l.findByRegex, l.findByGeometry}
	if field.Type == TypeText || field.GeometryFirst {
		strategies[0], strategies[1] = strategies[1], strategies[0]
	}

	for _, strategy := range strategies {
		if v := strategy(fullText, lines, field); v != "" {
			return v
		}
	}
	return ""
}

// findByRegex searches the linear text for "label [:#] value" with a
// type-specific value pattern.
func (l *Locator) findByRegex(fullText string, _ []string, field FieldLabel) string {
	alternation := make([]string, 0, len(field.Variants))
	for _, v := range field.Variants {
		alternation = append(alternation, regexp.QuoteMeta(v))
	}

	var valuePattern string
	switch field.Type {
	case TypeDate:
		valuePattern = `(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`
	case TypeMoney:
		valuePattern = `\$?\s*([\d,]+\.\d{2})`
	case TypeInteger:
		// The trailing guard keeps a longer digit run from matching by
		// truncation; the run must end where the capture ends.
		valuePattern = `(\d{1,10})(?:\D|$)`
	default:
		valuePattern = `([^\n]+)`
	}

	pattern := `(?i)(?:` + strings.Join(alternation, "|") + `)\s*[:#]?\s*` + valuePattern
	re, err := regexp.Compile(pattern)
	if err != nil {
		return ""
	}
	m := re.FindStringSubmatch(fullText)
	if m == nil {
		return ""
	}
	return l.validate(field, strings.TrimSpace(m[1]))
}

// findByGeometry scans visual lines for the label token sequence and reads
// the value to its right, or from the next few lines when the label sits
// alone on its row.
func (l *Locator) findByGeometry(_ string, lines []string, field FieldLabel) string {
	lookahead := field.MaxLookahead
	if lookahead <= 0 {
		lookahead = defaultLookahead
	}

	for idx, line := range lines {
		tokens := strings.Fields(line)
		after, found := matchLabelTokens(tokens, field.Variants)
		if !found {
			continue
		}

		if v := l.readInline(field, after); v != "" {
			return v
		}

		// Label alone on its row: the value sits on one of the next lines.
		// A line opening with some other field's label ends the scan; its
		// trailing text belongs to that field, not this one.
		next := ScanForward(lines, idx+1, lookahead, func(candidate string) bool {
			if l.startsWithOtherLabel(candidate, field) {
				return true
			}
			return l.readInline(field, strings.Fields(candidate)) != ""
		})
		if next >= 0 && !l.startsWithOtherLabel(lines[next], field) {
			return l.readInline(field, strings.Fields(lines[next]))
		}
	}
	return ""
}

// readInline extracts a validated value from the tokens following a label on
// the same visual line.
func (l *Locator) readInline(field FieldLabel, tokens []string) string {
	switch field.Type {
	case TypeDate:
		for _, t := range tokens {
			if IsDate(t) {
				return NormalizeDate(t)
			}
		}
	case TypeMoney:
		for _, t := range tokens {
			if IsMoney(t) {
				return NormalizeMoney(t)
			}
		}
	case TypeInteger:
		for _, t := range tokens {
			if integerValueRe.MatchString(t) {
				return t
			}
		}
	default:
		var value []string
		for _, t := range tokens {
			// A numeric run ends a name value; so does another label.
			if startsWithDigit(t) {
				break
			}
			if _, isLabel := l.stopLabels[normalizeLabel(t)]; isLabel && len(value) > 0 {
				break
			}
			value = append(value, t)
		}
		return strings.TrimSpace(strings.Join(value, " "))
	}
	return ""
}

// startsWithOtherLabel reports whether the line opens with a label variant
// belonging to a field other than the one being resolved.
func (l *Locator) startsWithOtherLabel(line string, field FieldLabel) bool {
	tokens := strings.Fields(line)
	if len(tokens) == 0 || !IsLabelWord(tokens[0]) {
		return false
	}
	for name, other := range l.fields {
		if name == field.Name {
			continue
		}
		for _, variant := range other.Variants {
			want := strings.Fields(variant)
			if len(want) == 0 || len(want) > len(tokens) {
				continue
			}
			matched := true
			for j, w := range want {
				if normalizeLabel(tokens[j]) != normalizeLabel(w) {
					matched = false
					break
				}
			}
			if matched {
				return true
			}
		}
	}
	return false
}

func (l *Locator) validate(field FieldLabel, value string) string {
	switch field.Type {
	case TypeDate:
		return NormalizeDate(value)
	case TypeMoney:
		return NormalizeMoney(value)
	case TypeInteger:
		if integerValueRe.MatchString(value) {
			return value
		}
		return ""
	default:
		return value
	}
}

// matchLabelTokens reports whether any label variant occurs as a consecutive
// token run and returns the tokens following it.
func matchLabelTokens(tokens []string, variants []string) ([]string, bool) {
	for _, variant := range variants {
		want := strings.Fields(variant)
		if len(want) == 0 || len(want) > len(tokens) {
			continue
		}
		for i := 0; i+len(want) <= len(tokens); i++ {
			matched := true
			for j, w := range want {
				if normalizeLabel(tokens[i+j]) != normalizeLabel(w) {
					matched = false
					break
				}
			}
			if matched {
				return tokens[i+len(want):], true
			}
		}
	}
	return nil, false
}

// normalizeLabel case-folds a label token and strips the punctuation that
// varies across layout families ("Cust#", "Cust #:", "cust").
func normalizeLabel(s string) string {
	return strings.ToLower(strings.Trim(s, ":#. "))
}

// ScanForward returns the index of the first line in [start, start+maxLines)
// satisfying the predicate, or -1. Every extractor that needs "look ahead N
// lines" shares this helper.
func ScanForward(lines []string, start, maxLines int, predicate func(string) bool) int {
	for i := start; i < len(lines) && i < start+maxLines; i++ {
		if predicate(lines[i]) {
			return i
		}
	}
	return -1
}
