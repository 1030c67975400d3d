package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/Mercury86-sudo/Real-State-Scraper/models"
)

// PostgresWriter mirrors the CSV dataset into PostgreSQL for consumers
// that prefer SQL over the flat file. Opt-in via POSTGRES_ENABLED.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema
// migrations, and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS listings (
			id         SERIAL PRIMARY KEY,
			titulo     TEXT          NOT NULL,
			precio     NUMERIC(14,2) NOT NULL,
			metros     NUMERIC(10,2) NOT NULL DEFAULT 0,
			precio_m2  NUMERIC(12,2) NOT NULL DEFAULT 0,
			ubicacion  TEXT          NOT NULL DEFAULT '',
			link       TEXT          NOT NULL DEFAULT '#',
			lat        DOUBLE PRECISION NOT NULL,
			lon        DOUBLE PRECISION NOT NULL,
			scraped_at TIMESTAMPTZ   NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_listings_precio    ON listings(precio);
		CREATE INDEX IF NOT EXISTS idx_listings_ubicacion ON listings(ubicacion);
	`)
	return err
}

// clear deletes the previous run's rows; the table always reflects the
// latest run, like the CSV file.
func (pw *PostgresWriter) clear() error {
	_, err := pw.db.Exec("DELETE FROM listings")
	if err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}
	return nil
}

// Write batch-inserts all listings, clearing old data first.
func (pw *PostgresWriter) Write(listings []*models.Listing) error {
	if len(listings) == 0 {
		return nil
	}

	if err := pw.clear(); err != nil {
		return err
	}

	const batchSize = 50
	for i := 0; i < len(listings); i += batchSize {
		end := i + batchSize
		if end > len(listings) {
			end = len(listings)
		}
		if err := pw.insertBatch(listings[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PostgresWriter) insertBatch(batch []*models.Listing) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*9)

	for idx, l := range batch {
		base := idx * 9
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9))
		valueArgs = append(valueArgs,
			l.Title, l.Price, l.Area, l.PricePerArea, l.Zone, l.Link, l.Lat, l.Lon, l.ScrapedAt)
	}

	query := fmt.Sprintf(`
		INSERT INTO listings (titulo, precio, metros, precio_m2, ubicacion, link, lat, lon, scraped_at)
		VALUES %s
	`, strings.Join(valueStrings, ","))

	_, err := pw.db.Exec(query, valueArgs...)
	return err
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
