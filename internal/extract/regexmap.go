package extract

import (
	"regexp"
	"strings"
)

// MappedField is one entry of an externally supplied field-to-pattern map:
// the value pattern is data, not code, and may arrive at runtime for variant
// document families. Type selects the normalization applied to the match;
// Default fills the field when the pattern finds nothing.
type MappedField struct {
	Name    string
	Pattern string
	Type    string
	Default string
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// ExtractMapped resolves each mapped field by running its pattern over the
// document text, case-insensitively and across lines. The first capture
// group wins (the whole match when the pattern has no group). A field with an
// empty or invalid pattern is left unresolved rather than failing the
// document.
func ExtractMapped(fullText string, fields []MappedField) map[string]string {
	out := make(map[string]string, len(fields))

	for _, f := range fields {
		value := resolveMappedField(fullText, f)
		if value == "" {
			value = f.Default
		}
		if value != "" {
			out[f.Name] = value
		}
	}

	return out
}

func resolveMappedField(fullText string, f MappedField) string {
	if f.Pattern == "" {
		return ""
	}
	re, err := regexp.Compile(`(?im)` + f.Pattern)
	if err != nil {
		return ""
	}
	m := re.FindStringSubmatch(fullText)
	if m == nil {
		return ""
	}
	value := m[0]
	if len(m) > 1 && m[1] != "" {
		value = m[1]
	}
	value = strings.TrimSpace(whitespaceRe.ReplaceAllString(value, " "))
	return normalizeMappedValue(f, value)
}

// normalizeMappedValue applies the rule's declared type, falling back to a
// date heuristic on the field name for rules that carry no type.
func normalizeMappedValue(f MappedField, value string) string {
	if value == "" {
		return ""
	}
	switch f.Type {
	case "date":
		return NormalizeDate(value)
	case "money":
		return NormalizeMoney(value)
	case "":
		if strings.Contains(strings.ToLower(f.Name), "date") {
			return NormalizeDate(value)
		}
	}
	return value
}
