package services

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/Mercury86-sudo/Real-State-Scraper/models"
	"github.com/Mercury86-sudo/Real-State-Scraper/utils"
)

const (
	// PlaceholderTitle is used when every line of a card fails the
	// title filters.
	PlaceholderTitle = "Propiedad"

	// MinPlausiblePrice is the minimum believable sale price; anything
	// at or below it is a rent, a typo, or page furniture.
	MinPlausiblePrice = 100000

	minTitleLen = 5
)

// titleBlacklist holds marketing and UI phrases that never belong in a
// listing title. Matched case-insensitively against each line.
var titleBlacklist = []string{
	"DESTACADO", "RECIÉN", "PRECIO", "NUEVO", "OFERTA", "REMATE",
	"OPORTUNIDAD", "MIEMBRO", "VER TELÉFONO", "CONTACTAR", "WHATSAPP",
}

var (
	// areaRegexp captures a decimal number (optional thousands
	// separators) immediately followed by a square-meter marker.
	areaRegexp = regexp.MustCompile(`(?i)(\d[\d,.]*)\s*(m²|m2)`)
	// leadingIndexRegexp strips a listing index prefixed to the title.
	leadingIndexRegexp = regexp.MustCompile(`^\d+\s*`)
	// nonPriceRegexp removes everything but digits and decimal points.
	nonPriceRegexp = regexp.MustCompile(`[^\d.]`)
)

// SkipReason classifies why a candidate was dropped instead of parsed
// into a listing. Empty means the candidate was retained.
type SkipReason string

const (
	SkipNone             SkipReason = ""
	SkipUnparseablePrice SkipReason = "unparseable-price"
	SkipBelowThreshold   SkipReason = "below-threshold"
)

// Parser turns candidate blocks into listings using ordered heuristic
// rules. It is stateless; one instance serves the whole run.
type Parser struct {
	logger *utils.Logger
}

// NewParser creates a Parser with the given logger.
func NewParser(logger *utils.Logger) *Parser {
	return &Parser{logger: logger}
}

// Parse extracts title, price and area from a candidate. A non-empty
// SkipReason means the candidate must not enter the result set.
func (p *Parser) Parse(c models.Candidate) (*models.Listing, SkipReason) {
	price, err := parsePrice(c.PriceText)
	if err != nil {
		p.logger.Skip(string(SkipUnparseablePrice), "page %d: %q: %v", c.Page, c.PriceText, err)
		return nil, SkipUnparseablePrice
	}
	if price <= MinPlausiblePrice {
		p.logger.Skip(string(SkipBelowThreshold), "page %d: %.0f ≤ %d", c.Page, price, MinPlausiblePrice)
		return nil, SkipBelowThreshold
	}

	area := parseArea(c.BlockText)

	return &models.Listing{
		Title:        parseTitle(c.BlockText),
		Price:        price,
		Area:         area,
		PricePerArea: PricePerArea(price, area),
		Link:         c.Link,
		ScrapedAt:    time.Now(),
	}, SkipNone
}

// PricePerArea derives price per square meter, rounded to 2 decimals.
// Always recomputed from price and area, never stored independently.
func PricePerArea(price, area float64) float64 {
	if area <= 0 {
		return 0
	}
	return math.Round(price/area*100) / 100
}

// parseTitle returns the first line that survives the filters, with any
// leading listing index stripped, or the placeholder.
func parseTitle(blockText string) string {
	for _, line := range strings.Split(blockText, "\n") {
		clean := strings.TrimSpace(line)
		if clean == "" || strings.Contains(clean, "$") || isAllDigits(clean) {
			continue
		}
		if len([]rune(clean)) < minTitleLen {
			continue
		}
		if containsBlacklisted(clean) {
			continue
		}
		return leadingIndexRegexp.ReplaceAllString(clean, "")
	}
	return PlaceholderTitle
}

func containsBlacklisted(line string) bool {
	upper := strings.ToUpper(line)
	for _, b := range titleBlacklist {
		if strings.Contains(upper, b) {
			return true
		}
	}
	return false
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// parseArea finds the first square-meter figure in the card text.
// Returns 0 when none is present.
func parseArea(blockText string) float64 {
	m := areaRegexp.FindStringSubmatch(blockText)
	if m == nil {
		return 0
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return 0
	}
	return v
}

// parsePrice strips currency markers and separators from the triggering
// fragment and parses the remainder.
func parsePrice(priceText string) (float64, error) {
	cleaned := nonPriceRegexp.ReplaceAllString(priceText, "")
	return strconv.ParseFloat(cleaned, 64)
}
