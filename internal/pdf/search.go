package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Search discovers PDF files on disk for the batch driver and the MCP
// surface.
type Search struct{}

// NewSearch creates a new PDF search handler.
func NewSearch() *Search {
	return &Search{}
}

// SearchDirectory walks a directory tree and returns the PDF files found,
// optionally filtered by a case-insensitive substring query on the file name.
// Unreadable entries are skipped rather than failing the walk.
func (s *Search) SearchDirectory(directory, query string) ([]FileInfo, error) {
	if directory == "" {
		return nil, fmt.Errorf("directory cannot be empty")
	}
	absDir, err := filepath.Abs(directory)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory path: %w", err)
	}
	if _, err := os.Stat(absDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("directory does not exist: %s", directory)
	}

	query = strings.ToLower(strings.TrimSpace(query))

	var files []FileInfo
	err = filepath.Walk(absDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil //nolint:nilerr // skip unreadable entries, keep walking
		}
		if info.IsDir() || !strings.HasSuffix(strings.ToLower(info.Name()), ".pdf") {
			return nil
		}
		if query != "" && !strings.Contains(strings.ToLower(info.Name()), query) {
			return nil
		}
		files = append(files, FileInfo{
			Name:         info.Name(),
			Path:         path,
			Size:         info.Size(),
			ModifiedTime: info.ModTime().Format(time.RFC3339),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}
