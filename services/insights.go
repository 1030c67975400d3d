package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Mercury86-sudo/Real-State-Scraper/models"
	"github.com/Mercury86-sudo/Real-State-Scraper/utils"
)

// InsightService computes and prints the end-of-run market aggregates.
type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

func (s *InsightService) Generate(listings []*models.Listing) *models.MarketReport {
	report := &models.MarketReport{
		ListingsByZone: make(map[string]int),
	}

	if len(listings) == 0 {
		return report
	}

	report.TotalListings = len(listings)
	report.MinPrice = listings[0].Price
	report.MaxPrice = listings[0].Price
	report.MostExpensive = listings[0]

	var priceTotal float64
	var areaTotal, perAreaTotal float64
	var areaCount, perAreaCount int

	for _, l := range listings {
		priceTotal += l.Price
		if l.Price < report.MinPrice {
			report.MinPrice = l.Price
		}
		if l.Price > report.MaxPrice {
			report.MaxPrice = l.Price
			report.MostExpensive = l
		}
		if l.Area > 0 {
			areaTotal += l.Area
			areaCount++
		}
		if l.PricePerArea > 0 {
			perAreaTotal += l.PricePerArea
			perAreaCount++
		}
		if l.Zone != "" {
			report.ListingsByZone[l.Zone]++
		}
	}

	report.AveragePrice = round2(priceTotal / float64(len(listings)))
	report.MinPrice = round2(report.MinPrice)
	report.MaxPrice = round2(report.MaxPrice)
	if areaCount > 0 {
		report.AverageArea = round2(areaTotal / float64(areaCount))
	}
	if perAreaCount > 0 {
		report.AveragePerArea = round2(perAreaTotal / float64(perAreaCount))
	}

	return report
}

func (s *InsightService) Print(r *models.MarketReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  🏠 MÉRIDA MARKET SCRAPE REPORT\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Listings captured : \033[1m%d\033[0m\n", r.TotalListings)
	fmt.Println()

	fmt.Printf("\033[1;33m  Price Statistics (MXN)\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if r.AveragePrice > 0 {
		fmt.Printf("  Average price : \033[1;32m$%.2f\033[0m\n", r.AveragePrice)
		fmt.Printf("  Minimum price : \033[1;32m$%.2f\033[0m\n", r.MinPrice)
		fmt.Printf("  Maximum price : \033[1;32m$%.2f\033[0m\n", r.MaxPrice)
		fmt.Printf("  Average size  : \033[1;32m%.0f m²\033[0m\n", r.AverageArea)
		fmt.Printf("  Yield per m²  : \033[1;32m$%.2f\033[0m\n", r.AveragePerArea)
	} else {
		fmt.Printf("  No price data available\n")
	}
	fmt.Println()

	if r.MostExpensive != nil {
		fmt.Printf("\033[1;33m  Most Expensive Listing\033[0m\n")
		fmt.Printf("  %s\n", thin)
		fmt.Printf("  %s\n", truncate(r.MostExpensive.Title, 50))
		fmt.Printf("  Zone  : %s\n", r.MostExpensive.Zone)
		fmt.Printf("  Price : \033[1;31m$%.2f\033[0m\n", r.MostExpensive.Price)
		fmt.Println()
	}

	fmt.Printf("\033[1;33m  Listings by Zone\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.ListingsByZone) == 0 {
		fmt.Printf("  No zone data\n")
	} else {
		type zoneCount struct {
			zone  string
			count int
		}
		var zones []zoneCount
		for z, cnt := range r.ListingsByZone {
			zones = append(zones, zoneCount{z, cnt})
		}
		sort.Slice(zones, func(i, j int) bool {
			if zones[i].count != zones[j].count {
				return zones[i].count > zones[j].count
			}
			return zones[i].zone < zones[j].zone
		})
		for _, zc := range zones {
			bar := strings.Repeat("█", zc.count)
			fmt.Printf("  %-30s %s (%d)\n", truncate(zc.zone, 28), bar, zc.count)
		}
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
