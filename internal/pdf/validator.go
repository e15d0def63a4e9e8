package pdf

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Validator performs structural validation of PDF bytes before they enter the
// extraction pipeline.
type Validator struct {
	maxFileSize int64
}

// NewValidator creates a new validator with the specified size constraint.
func NewValidator(maxFileSize int64) *Validator {
	return &Validator{maxFileSize: maxFileSize}
}

// Validate checks that the bytes parse as a PDF under relaxed validation and
// reports the page count. Validation problems are reported in the result, not
// as an error; an error return indicates a misuse of the API.
func (v *Validator) Validate(req ValidateRequest) (*ValidateResult, error) {
	result := &ValidateResult{Name: req.Name}

	if len(req.Data) == 0 {
		result.Message = "empty input"
		return result, nil
	}
	if v.maxFileSize > 0 && int64(len(req.Data)) > v.maxFileSize {
		result.Message = fmt.Sprintf("file too large: %d bytes (max: %d bytes)", len(req.Data), v.maxFileSize)
		return result, nil
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(req.Data), conf)
	if err != nil {
		result.Message = fmt.Sprintf("failed to read PDF: %v", err)
		return result, nil
	}
	if err := ctx.EnsurePageCount(); err != nil {
		result.Message = fmt.Sprintf("failed to resolve page count: %v", err)
		return result, nil
	}

	result.Valid = true
	result.Pages = ctx.PageCount
	return result, nil
}
