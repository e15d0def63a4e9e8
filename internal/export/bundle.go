package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
)

// BundleInput is one original document carried into the archive alongside the
// extracted data.
type BundleInput struct {
	Name string
	Data []byte
}

// Archive layout mirrors what downstream consumers expect: the CSV under
// extracted/, originals under pdfs/, warnings only when any were raised.
const (
	bundleCSVPath      = "extracted/extracted.csv"
	bundlePDFDir       = "pdfs/"
	bundleWarningsPath = "extracted/warnings.txt"
)

// BuildBundle packs the extraction CSV, the original PDFs and any warnings
// into a single deflate-compressed ZIP, built entirely in memory.
func BuildBundle(csvData []byte, inputs []BundleInput, warnings []string) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	w, err := zw.Create(bundleCSVPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create archive entry: %w", err)
	}
	if _, err := w.Write(csvData); err != nil {
		return nil, fmt.Errorf("failed to write CSV entry: %w", err)
	}

	for _, in := range inputs {
		w, err := zw.Create(bundlePDFDir + in.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to create archive entry for %s: %w", in.Name, err)
		}
		if _, err := w.Write(in.Data); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", in.Name, err)
		}
	}

	if len(warnings) > 0 {
		w, err := zw.Create(bundleWarningsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create warnings entry: %w", err)
		}
		if _, err := w.Write([]byte(strings.Join(warnings, "\n"))); err != nil {
			return nil, fmt.Errorf("failed to write warnings: %w", err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}
