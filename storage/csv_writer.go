package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Mercury86-sudo/Real-State-Scraper/models"
)

// csvHeader is the fixed column order the reporting front end expects.
var csvHeader = []string{"Titulo", "Precio", "Metros", "Precio_m2", "Ubicacion", "Link", "lat", "lon"}

// CSVWriter flushes one run's retained listings to a CSV file. The file
// is only created (and any prior contents replaced) when Write is called
// with data, so an empty run leaves the previous dataset untouched.
type CSVWriter struct {
	path string
}

// NewCSVWriter prepares a writer for the given path. Nothing is touched
// on disk until Write.
func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{path: path}
}

// Write replaces the output file with the given listings, one row each.
func (c *CSVWriter) Write(listings []*models.Listing) error {
	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("csv: create output dir: %w", err)
		}
	}

	f, err := os.Create(c.path)
	if err != nil {
		return fmt.Errorf("csv: create file %q: %w", c.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	for _, l := range listings {
		row := []string{
			l.Title,
			formatNum(l.Price),
			formatNum(l.Area),
			formatNum(l.PricePerArea),
			l.Zone,
			l.Link,
			formatNum(l.Lat),
			formatNum(l.Lon),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

// Close implements ListingWriter; the file handle never outlives Write.
func (c *CSVWriter) Close() error {
	return nil
}

func formatNum(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
