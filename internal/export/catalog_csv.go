package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"course-catalog/internal/domain"
	"course-catalog/internal/normalize"
)

// CatalogHeader matches the canonical sheet columns so an export can be
// pasted back into the source sheet. Keep order EXACT.
var CatalogHeader = []string{
	domain.KeyID,
	domain.KeyTitle,
	domain.KeyShort,
	domain.KeyFullDesc,
	domain.KeyCategory,
	domain.KeyLevel,
	domain.KeyDuration,
	domain.KeyPrice,
	domain.KeyVideoURL,
	domain.KeyResources,
}

// WriteCatalogCSV writes normalized courses in the canonical sheet layout.
func WriteCatalogCSV(w io.Writer, courses []domain.Course) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(CatalogHeader); err != nil {
		return err
	}
	for _, c := range courses {
		if err := cw.Write(toRow(c)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCatalogCSVFile creates path (and its directory) and writes the export.
func WriteCatalogCSVFile(path string, courses []domain.Course) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("export: mkdir %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	if err := WriteCatalogCSV(f, courses); err != nil {
		f.Close()
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return f.Close()
}

func toRow(c domain.Course) []string {
	return []string{
		c.ID,
		clean(c.Title),
		clean(c.ShortDescription),
		clean(c.FullDescription),
		clean(c.Category),
		clean(c.Level),
		clean(c.Duration),
		clean(c.Price),
		c.VideoURL,
		normalize.FormatResources(c.Resources),
	}
}

// clean keeps every course on a single physical line.
func clean(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}
