package main

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/quotelift/quote-extractor/internal/batch"
	"github.com/quotelift/quote-extractor/internal/config"
	"github.com/quotelift/quote-extractor/internal/export"
	"github.com/quotelift/quote-extractor/internal/pdf"
	"github.com/quotelift/quote-extractor/internal/schema"
)

var (
	version   = "dev"     // set by build flags
	buildTime = "unknown" // set by build flags
)

func main() {
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-v" {
			fmt.Printf("quote-extractor %s (built %s)\n", version, buildTime)
			os.Exit(0)
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	cfg.Version = version

	if err := run(cfg); err != nil {
		log.Fatalf("Extraction failed: %v", err)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	target, err := schema.Resolve(cfg.Schema)
	if err != nil {
		return fmt.Errorf("failed to resolve schema: %w", err)
	}

	search := pdf.NewSearch()
	files, err := search.SearchDirectory(cfg.InputDir, "")
	if err != nil {
		return fmt.Errorf("failed to scan input directory: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no PDF files found in %s", cfg.InputDir)
	}

	inputs := make([]batch.Input, 0, len(files))
	for _, f := range files {
		data, err := os.ReadFile(f.Path)
		if err != nil {
			log.Printf("Skipping %s: %v", f.Name, err)
			continue
		}
		inputs = append(inputs, batch.Input{Name: f.Name, Data: data})
	}

	runner := batch.NewRunner(cfg.MaxFileSize)
	result, err := runner.Run(ctx, inputs, target, func(i, n int, name string) {
		log.Printf("Processing %d/%d: %s", i, n, name)
	})
	if err != nil {
		return err
	}

	if err := writeOutput(cfg, target, result, inputs); err != nil {
		return err
	}

	log.Printf("Parsed %d PDF(s), %d failed. Output rows: %d. Run: %s",
		result.Processed, result.Failed, len(result.Records), result.RunID)
	for _, w := range result.Warnings {
		log.Printf("warning: %s", w)
	}
	return nil
}

func writeOutput(cfg *config.Config, target *schema.Schema, result *batch.Result, inputs []batch.Input) error {
	records := make([]export.Record, len(result.Records))
	for i, r := range result.Records {
		records[i] = r
	}

	var data []byte
	switch cfg.Format {
	case config.FormatCSV:
		f, err := os.Create(cfg.OutputPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		return export.WriteCSV(f, target.Columns, records)

	case config.FormatXLSX:
		var err error
		data, err = export.WriteXLSX(target.Columns, records)
		if err != nil {
			return err
		}

	case config.FormatZip:
		var csvBuf bytes.Buffer
		if err := export.WriteCSV(&csvBuf, target.Columns, records); err != nil {
			return err
		}
		bundleInputs := make([]export.BundleInput, len(inputs))
		for i, in := range inputs {
			bundleInputs[i] = export.BundleInput{Name: in.Name, Data: in.Data}
		}
		var err error
		data, err = export.BuildBundle(csvBuf.Bytes(), bundleInputs, result.Warnings)
		if err != nil {
			return err
		}
	}

	if err := os.WriteFile(cfg.OutputPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
