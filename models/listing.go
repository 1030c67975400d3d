package models

import "time"

// Candidate is one raw text block believed to correspond to a single
// listing card, prior to field parsing. BlockText keeps the card's
// rendered line structure; PriceText is the currency-bearing fragment
// that triggered extraction.
type Candidate struct {
	PriceText string
	BlockText string
	Link      string
	Page      int
}

// Listing is a validated, geolocated record ready for the sink.
type Listing struct {
	Title        string
	Price        float64
	Area         float64
	PricePerArea float64
	Zone         string
	Link         string
	Lat          float64
	Lon          float64
	ScrapedAt    time.Time
}

// MarketReport holds the aggregates computed over one run's retained
// records. Mirrors what the reporting front end derives from the CSV.
type MarketReport struct {
	TotalListings  int
	AveragePrice   float64
	MinPrice       float64
	MaxPrice       float64
	AverageArea    float64
	AveragePerArea float64
	ListingsByZone map[string]int
	MostExpensive  *Listing
}
