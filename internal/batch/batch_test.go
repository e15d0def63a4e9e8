package batch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quotelift/quote-extractor/internal/schema"
)

func TestRunRequiresSchema(t *testing.T) {
	r := NewRunner(0)
	_, err := r.Run(context.Background(), nil, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema cannot be nil")
}

func TestRunEmptyBatch(t *testing.T) {
	r := NewRunner(0)
	result, err := r.Run(context.Background(), nil, schema.QuoteSchema(), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, result.RunID)
	assert.Empty(t, result.Records)
	assert.Zero(t, result.Processed)
	assert.Zero(t, result.Failed)
}

func TestRunContinuesPastBadDocument(t *testing.T) {
	r := NewRunner(0)
	inputs := []Input{
		{Name: "bad.pdf", Data: []byte("not a pdf")},
		{Name: "worse.pdf", Data: nil},
	}

	var seen []string
	progress := func(index, total int, name string) {
		assert.Equal(t, 2, total)
		seen = append(seen, name)
	}

	result, err := r.Run(context.Background(), inputs, schema.QuoteSchema(), progress)
	require.NoError(t, err)

	assert.Equal(t, []string{"bad.pdf", "worse.pdf"}, seen)
	assert.Equal(t, 0, result.Processed)
	assert.Equal(t, 2, result.Failed)
	require.Len(t, result.Warnings, 2)
	// Warnings carry the originating file name.
	assert.Contains(t, result.Warnings[0], "bad.pdf: ")
	assert.Contains(t, result.Warnings[1], "worse.pdf: ")
}

func TestRunHonorsCancellation(t *testing.T) {
	r := NewRunner(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := r.Run(ctx, []Input{{Name: "a.pdf", Data: []byte("x")}}, schema.QuoteSchema(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch canceled after 0 document(s)")
	assert.NotNil(t, result)
	assert.Zero(t, result.Processed)
}

func TestRunEmitsPlaceholderWarning(t *testing.T) {
	r := NewRunner(0)
	placeholder := &schema.Schema{
		Family:  schema.FamilyMapped,
		Columns: []string{"A", "B"},
	}

	result, err := r.Run(context.Background(), nil, placeholder, nil)
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "placeholder headers")
}

func TestRunIDsAreUnique(t *testing.T) {
	r := NewRunner(0)
	a, err := r.Run(context.Background(), nil, schema.QuoteSchema(), nil)
	require.NoError(t, err)
	b, err := r.Run(context.Background(), nil, schema.QuoteSchema(), nil)
	require.NoError(t, err)
	assert.NotEqual(t, a.RunID, b.RunID)
}
