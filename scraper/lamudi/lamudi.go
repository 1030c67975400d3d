package lamudi

import (
	"context"
	"fmt"
	"time"

	"github.com/Mercury86-sudo/Real-State-Scraper/config"
	"github.com/Mercury86-sudo/Real-State-Scraper/geo"
	"github.com/Mercury86-sudo/Real-State-Scraper/models"
	"github.com/Mercury86-sudo/Real-State-Scraper/services"
	"github.com/Mercury86-sudo/Real-State-Scraper/utils"
)

// Scraper drives the extraction pipeline across the configured page
// range: fetch, extract candidates, parse, resolve location, accumulate.
// Execution is strictly sequential; one page is fully processed before
// the next fetch starts.
type Scraper struct {
	cfg       *config.Config
	logger    *utils.Logger
	fetcher   Fetcher
	extractor services.CandidateExtractor
	parser    *services.Parser
	resolver  *geo.Resolver
	retry     *utils.RetryConfig

	listings []*models.Listing
}

// New wires the production pipeline: headless Chrome fetcher, lamudi
// extractor, and a Nominatim-backed resolver over the seeded zone cache.
func New(cfg *config.Config, logger *utils.Logger) *Scraper {
	geocodeTimeout := time.Duration(cfg.GeocodeTimeoutMs) * time.Millisecond
	cache := geo.NewCache(geo.SeedEntries())
	geocoder := geo.NewNominatimClient(cfg.NominatimURL, geocodeTimeout)
	resolver := geo.NewResolver(cache, geocoder, cfg.TargetCity, geocodeTimeout, logger)

	return NewPipeline(cfg, logger,
		NewChromeFetcher(cfg, logger),
		services.NewLamudiExtractor(logger),
		services.NewParser(logger),
		resolver,
	)
}

// NewPipeline assembles a Scraper from explicit collaborators.
func NewPipeline(cfg *config.Config, logger *utils.Logger, fetcher Fetcher,
	extractor services.CandidateExtractor, parser *services.Parser, resolver *geo.Resolver) *Scraper {
	return &Scraper{
		cfg:       cfg,
		logger:    logger,
		fetcher:   fetcher,
		extractor: extractor,
		parser:    parser,
		resolver:  resolver,
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
	}
}

// Close releases the browser session.
func (s *Scraper) Close() {
	s.fetcher.Close()
}

// Scrape processes pages 1..PagesToScan. A failed page is skipped, not
// fatal. The returned slice always holds everything accumulated so far,
// even when the error is non-nil, so the caller can flush partial
// progress.
func (s *Scraper) Scrape(ctx context.Context) ([]*models.Listing, error) {
	s.logger.Info("[lamudi] Starting scrape — %d pages", s.cfg.PagesToScan)

	for page := 1; page <= s.cfg.PagesToScan; page++ {
		if err := ctx.Err(); err != nil {
			return s.listings, fmt.Errorf("run aborted at page %d: %w", page, err)
		}

		var pageHTML string
		err := s.retry.Do(fmt.Sprintf("fetch-page-%d", page), func() error {
			h, err := s.fetcher.Fetch(ctx, page)
			if err != nil {
				return err
			}
			pageHTML = h
			return nil
		})
		if err != nil {
			s.logger.Skip("page-fetch", "page %d dropped: %v", page, err)
			continue
		}

		s.processPage(ctx, pageHTML, page)
		s.logger.Info("[lamudi] Page %d done — %d listings retained so far", page, len(s.listings))

		if page < s.cfg.PagesToScan {
			utils.Throttle(
				time.Duration(s.cfg.BaseDelayMs)*time.Millisecond,
				time.Duration(s.cfg.DelayJitterMs)*time.Millisecond,
			)
		}
	}

	s.logger.Info("[lamudi] Scrape complete — total retained: %d", len(s.listings))
	return s.listings, nil
}

func (s *Scraper) processPage(ctx context.Context, pageHTML string, page int) {
	for _, c := range s.extractor.Extract(pageHTML, page) {
		listing, skip := s.parser.Parse(c)
		if skip != services.SkipNone {
			continue
		}

		listing.Zone = s.resolver.Zone(c.BlockText)
		listing.Lat, listing.Lon = s.resolver.Resolve(ctx, listing.Zone)

		s.listings = append(s.listings, listing)
	}
}
