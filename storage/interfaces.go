package storage

import "github.com/Mercury86-sudo/Real-State-Scraper/models"

// ListingWriter is the interface any output sink must satisfy.
type ListingWriter interface {
	Write(listings []*models.Listing) error
	Close() error
}
