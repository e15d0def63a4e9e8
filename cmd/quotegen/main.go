// Command quotegen renders a sample vendor quote PDF with a real text
// layer, useful for exercising the extraction pipeline end to end.
package main

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"codeberg.org/go-pdf/fpdf"
	"github.com/spf13/pflag"
)

type sampleItem struct {
	lineNo string
	itemID string
	qty    string
	desc   string
	unit   string
	total  string
}

func main() {
	out := pflag.String("out", "sample_quote.pdf", "Output path for the generated PDF")
	quoteNo := pflag.String("quote", "000123", "Quote number to print in the header")
	pflag.Parse()

	data, err := renderQuote(*quoteNo)
	if err != nil {
		log.Fatalf("Failed to render quote: %v", err)
	}

	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}
	fmt.Printf("Wrote %s (%d bytes)\n", *out, len(data))
}

func renderQuote(quoteNo string) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(54, 60, "Cadre Wire Group")
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(54, 76, "1200 Industrial Pkwy, Columbus, OH 43085")

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(420, 60, "Quote "+quoteNo)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(420, 76, "Date 09/01/2025")
	pdf.Text(420, 90, "Quote Good Through 12/31/2025")
	pdf.Text(420, 104, "Customer 45210")
	pdf.Text(420, 118, "Salesperson J. Whitfield")

	// Address blocks, bill-to first so the ship-to anchor has to be found
	// by label rather than by position.
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(54, 140, "Bill To")
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(54, 154, "ACME CORP")
	pdf.Text(54, 168, "PO Box 9120")
	pdf.Text(54, 182, "Springfield, IL 62704")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(250, 140, "Ship To")
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(250, 154, "ACME CORP")
	pdf.Text(250, 168, "Attn: Receiving Dock")
	pdf.Text(250, 182, "123 Main St")
	pdf.Text(250, 196, "Springfield, IL 62704")
	pdf.Text(250, 210, "USA")

	items := []sampleItem{
		{"1", "CW-1042", "25", "14 AWG THHN Copper, Black, 500ft", "48.50", "1,212.50"},
		{"2", "CW-2210", "10", "12 AWG THHN Copper, White, 500ft", "72.00", "720.00"},
		{"3", "CN-0339", "4", "Cable Tray Connector Kit", "19.95", "79.80"},
	}

	// Item table with columns wide enough apart that the gap-based cell
	// splitter sees distinct columns.
	cols := []float64{54, 100, 200, 240, 440, 510}
	top := 250.0
	pdf.SetFont("Helvetica", "B", 9)
	for i, h := range []string{"Line", "Item", "Qty", "Description", "Unit Price", "Total"} {
		pdf.Text(cols[i], top, h)
	}
	pdf.SetFont("Helvetica", "", 9)
	y := top + 18
	for _, it := range items {
		for i, v := range []string{it.lineNo, it.itemID, it.qty, it.desc, it.unit, it.total} {
			pdf.Text(cols[i], y, v)
		}
		y += 16
	}

	y += 24
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(420, y, "Product $2,012.30")
	y += 14
	pdf.Text(420, y, "Freight $0.00")
	y += 14
	pdf.Text(420, y, "Tax $4.98")
	y += 14
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(420, y, "Total $2,017.28")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}
