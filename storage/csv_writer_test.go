package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/Mercury86-sudo/Real-State-Scraper/models"
)

func sampleListings() []*models.Listing {
	return []*models.Listing{
		{
			Title: "Casa en Altabrisa", Price: 2500000, Area: 120, PricePerArea: 20833.33,
			Zone: "Altabrisa", Link: "https://example.com/casa-1", Lat: 21.0182, Lon: -89.5855,
		},
		{
			Title: "Terreno en Cholul", Price: 850000, Area: 0, PricePerArea: 0,
			Zone: "Cholul", Link: "#", Lat: 21.0456, Lon: -89.5516,
		},
	}
}

func TestCSVWriterCreatesNothingUntilWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	NewCSVWriter(path)

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file %s exists before Write", path)
	}
}

func TestCSVWriterWritesRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "data.csv")
	w := NewCSVWriter(path)

	if err := w.Write(sampleListings()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows; want header + 2", len(rows))
	}

	wantHeader := []string{"Titulo", "Precio", "Metros", "Precio_m2", "Ubicacion", "Link", "lat", "lon"}
	for i, col := range wantHeader {
		if rows[0][i] != col {
			t.Errorf("header[%d] = %q; want %q", i, rows[0][i], col)
		}
	}

	if rows[1][0] != "Casa en Altabrisa" {
		t.Errorf("row 1 Titulo = %q", rows[1][0])
	}
	if rows[1][1] != "2500000" {
		t.Errorf("row 1 Precio = %q; want 2500000", rows[1][1])
	}
	if rows[1][3] != "20833.33" {
		t.Errorf("row 1 Precio_m2 = %q; want 20833.33", rows[1][3])
	}
	if rows[2][2] != "0" {
		t.Errorf("row 2 Metros = %q; want 0", rows[2][2])
	}
}

func TestCSVWriterReplacesPriorContents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	w := NewCSVWriter(path)

	if err := w.Write(sampleListings()); err != nil {
		t.Fatalf("first Write failed: %v", err)
	}
	if err := w.Write(sampleListings()[:1]); err != nil {
		t.Fatalf("second Write failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("got %d rows after rewrite; want header + 1", len(rows))
	}
}
