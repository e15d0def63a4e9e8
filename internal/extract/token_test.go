package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMoney(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{"$1,212.50", true},
		{"1212.50", true},
		{"0.00", true},
		{"$48.505", true},
		{"48.5", false},
		{"$1,212", false},
		{"12", false},
		{"SKU-100", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsMoney(tt.token), "IsMoney(%q)", tt.token)
	}
}

func TestIsQuantity(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{"25", true},
		{"2.5", true},
		{"0", true},
		{"$25", false},
		{"25,000", false},
		{"two", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsQuantity(tt.token), "IsQuantity(%q)", tt.token)
	}
}

func TestIsItemCode(t *testing.T) {
	assert.True(t, IsItemCode("CW-1042"))
	assert.True(t, IsItemCode("A1.B2/C3_D4"))
	assert.True(t, IsItemCode("100200"))
	assert.False(t, IsItemCode("widget"))
	assert.False(t, IsItemCode("X"))
	assert.False(t, IsItemCode(""))
}

func TestZipAndState(t *testing.T) {
	assert.True(t, IsZip("62704"))
	assert.True(t, IsZip("62704-1234"))
	assert.False(t, IsZip("6270"))
	assert.False(t, IsZip("62704-12"))

	assert.True(t, IsState("IL"))
	assert.False(t, IsState("il"))
	assert.False(t, IsState("ILL"))
}

func TestIsAllCapsName(t *testing.T) {
	assert.True(t, IsAllCapsName("ACME CORP"))
	assert.True(t, IsAllCapsName("SMITH & SONS, INC."))
	assert.False(t, IsAllCapsName("Acme Corp"))
	assert.False(t, IsAllCapsName("ACME 42"))
	assert.False(t, IsAllCapsName("A"))
}

func TestIsLabelWord(t *testing.T) {
	assert.True(t, IsLabelWord("Quote"))
	assert.True(t, IsLabelWord("Cust:"))
	assert.True(t, IsLabelWord("No.#"))
	assert.False(t, IsLabelWord("quote"))
	assert.False(t, IsLabelWord("12/31/2025"))
	assert.False(t, IsLabelWord("$48.50"))
	assert.False(t, IsLabelWord(""))
}

func TestIsDescriptive(t *testing.T) {
	assert.True(t, IsDescriptive("Copper"))
	assert.True(t, IsDescriptive("500ft"))
	assert.False(t, IsDescriptive("25"))
	assert.False(t, IsDescriptive("$48.50"))
	assert.False(t, IsDescriptive("AWG"))
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"9/5/24", "09/05/2024"},
		{"09/05/2024", "09/05/2024"},
		{"12-31-2025", "12/31/2025"},
		{"Date: 1/2/03 ref", "01/02/2003"},
		{"not a date", "not a date"},
		{"  spaced  ", "spaced"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeDate(tt.in), "NormalizeDate(%q)", tt.in)
	}
}

// Normalization applied to already-normalized output must be a no-op.
func TestNormalizeDateIdempotent(t *testing.T) {
	inputs := []string{"9/5/24", "12/31/2025", "1-2-03"}
	for _, in := range inputs {
		once := NormalizeDate(in)
		assert.Equal(t, once, NormalizeDate(once), "input %q", in)
	}
}

func TestNormalizeMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"$1,212.50", "1212.50"},
		{"1212.50", "1212.50"},
		{"$48.505", "48.51"},
		{"Total $2,017.28 due", "2017.28"},
		{"no amount here", ""},
		{"12", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeMoney(tt.in), "NormalizeMoney(%q)", tt.in)
	}
}

func TestNormalizeMoneyIdempotent(t *testing.T) {
	inputs := []string{"$1,212.50", "0.00", "$48.505"}
	for _, in := range inputs {
		once := NormalizeMoney(in)
		assert.Equal(t, once, NormalizeMoney(once), "input %q", in)
	}
}

func TestParseMoney(t *testing.T) {
	v, err := ParseMoney("$1,212.50")
	assert.NoError(t, err)
	assert.InDelta(t, 1212.50, v, 1e-9)

	_, err = ParseMoney("  ")
	assert.Error(t, err)
}
