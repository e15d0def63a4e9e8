// Package batch runs the extraction engine over a set of documents in strict
// sequence, isolating per-document failures so one bad file never aborts the
// batch.
package batch

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/quotelift/quote-extractor/internal/assemble"
	"github.com/quotelift/quote-extractor/internal/extract"
	"github.com/quotelift/quote-extractor/internal/pdf"
	"github.com/quotelift/quote-extractor/internal/schema"
)

// Input is one document handed to the batch: raw bytes plus a display name.
type Input struct {
	Name string
	Data []byte
}

// ProgressFunc is invoked before each document is processed.
type ProgressFunc func(index, total int, name string)

// Result aggregates a batch run: records in document order plus per-document
// warnings prefixed with the file name.
type Result struct {
	RunID     string
	Records   []assemble.OutputRecord
	Warnings  []string
	Processed int
	Failed    int
}

// Runner drives per-document extraction. Extraction is pure with respect to
// document bytes, so a Runner may be shared; the sequential loop is a
// simplicity choice, not a safety requirement.
type Runner struct {
	loader    *pdf.Loader
	extractor *extract.Extractor
}

// NewRunner creates a batch runner with the given input size limit.
func NewRunner(maxFileSize int64) *Runner {
	return &Runner{
		loader:    pdf.NewLoader(maxFileSize),
		extractor: extract.NewExtractor(),
	}
}

// Run processes the inputs in order against the target schema. Cancellation
// is cooperative: the context is checked between documents, never mid-
// document, since per-document work is bounded. Per-document failures are
// reported as warnings and counted, and processing continues.
func (r *Runner) Run(ctx context.Context, inputs []Input, target *schema.Schema, progress ProgressFunc) (*Result, error) {
	if target == nil {
		return nil, fmt.Errorf("schema cannot be nil")
	}

	result := &Result{RunID: uuid.NewString()}
	if w := target.PlaceholderWarning(); w != "" {
		result.Warnings = append(result.Warnings, w)
	}

	for i, in := range inputs {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("batch canceled after %d document(s): %w", result.Processed, err)
		}
		if progress != nil {
			progress(i+1, len(inputs), in.Name)
		}

		records, warnings := r.processDocument(in, target)
		result.Records = append(result.Records, records...)
		for _, w := range warnings {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %s", in.Name, w))
		}
		if records == nil {
			result.Failed++
		} else {
			result.Processed++
		}
	}

	return result, nil
}

// processDocument extracts and assembles one document. Panics and load
// errors become warnings with a nil record slice.
func (r *Runner) processDocument(in Input, target *schema.Schema) (records []assemble.OutputRecord, warnings []string) {
	defer func() {
		if rec := recover(); rec != nil {
			records = nil
			warnings = append(warnings, fmt.Sprintf("extraction panicked: %v", rec))
		}
	}()

	doc, err := r.loader.LoadDocument(in.Data, in.Name)
	if err != nil {
		return nil, []string{fmt.Sprintf("unreadable document: %v", err)}
	}

	var res *extract.Result
	if target.Family == schema.FamilyMapped {
		res = r.extractor.ExtractMappedDocument(doc, mappedFields(target))
	} else {
		res = r.extractor.ExtractDocument(doc)
	}

	return assemble.Assemble(res, in.Name, target), res.Warnings
}

func mappedFields(target *schema.Schema) []extract.MappedField {
	fields := make([]extract.MappedField, 0, len(target.Rules))
	for _, rule := range target.Rules {
		fields = append(fields, extract.MappedField{
			Name:    rule.Field,
			Pattern: rule.Pattern,
			Type:    rule.Type,
			Default: rule.Default,
		})
	}
	return fields
}
