package pdf

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTestFile(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("%PDF-1.4\n"), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func TestSearchDirectory(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "quote_a.pdf")
	writeTestFile(t, dir, "quote_b.PDF")
	writeTestFile(t, dir, "notes.txt")

	sub := filepath.Join(dir, "nested")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writeTestFile(t, sub, "deep.pdf")

	search := NewSearch()
	files, err := search.SearchDirectory(dir, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("expected 3 PDFs, got %d: %+v", len(files), files)
	}

	// Results come back sorted by path.
	for i := 1; i < len(files); i++ {
		if files[i-1].Path > files[i].Path {
			t.Errorf("results not sorted: %s before %s", files[i-1].Path, files[i].Path)
		}
	}
}

func TestSearchDirectoryQuery(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "acme_quote.pdf")
	writeTestFile(t, dir, "other.pdf")

	search := NewSearch()
	files, err := search.SearchDirectory(dir, "ACME")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 match, got %d", len(files))
	}
	if files[0].Name != "acme_quote.pdf" {
		t.Errorf("expected acme_quote.pdf, got %s", files[0].Name)
	}
}

func TestSearchDirectoryErrors(t *testing.T) {
	search := NewSearch()

	if _, err := search.SearchDirectory("", ""); err == nil {
		t.Error("expected error for empty directory")
	}
	if _, err := search.SearchDirectory("/definitely/not/a/real/dir", ""); err == nil {
		t.Error("expected error for missing directory")
	}
}
