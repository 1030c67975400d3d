package main

import (
	"context"
	"os"
	"time"

	"github.com/Mercury86-sudo/Real-State-Scraper/config"
	"github.com/Mercury86-sudo/Real-State-Scraper/scraper/lamudi"
	"github.com/Mercury86-sudo/Real-State-Scraper/services"
	"github.com/Mercury86-sudo/Real-State-Scraper/storage"
	"github.com/Mercury86-sudo/Real-State-Scraper/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()

	logger.Info("=== Mérida Market Watch scraper starting ===")
	logger.Info("Config — pages: %d | delay: %d+%dms | output: %s",
		cfg.PagesToScan, cfg.BaseDelayMs, cfg.DelayJitterMs, cfg.CSVOutputPath)

	ctx := context.Background()
	if cfg.RunTimeoutMin > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.RunTimeoutMin)*time.Minute)
		defer cancel()
	}

	scraper := lamudi.New(cfg, logger)
	defer scraper.Close()

	listings, err := scraper.Scrape(ctx)
	if err != nil {
		logger.Error("Scrape ended early: %v", err)
	}
	// The browser is done; release it before any exit path below.
	scraper.Close()

	if len(listings) == 0 {
		logger.Warn("No data captured — %s left untouched", cfg.CSVOutputPath)
		return
	}

	csvWriter := storage.NewCSVWriter(cfg.CSVOutputPath)
	if err := csvWriter.Write(listings); err != nil {
		logger.Error("CSV write failed: %v", err)
		os.Exit(1)
	}
	logger.Info("%d listings saved to %s", len(listings), cfg.CSVOutputPath)

	if cfg.PostgresEnabled {
		pgWriter, err := storage.NewPostgresWriter(cfg.DSN())
		if err != nil {
			logger.Error("Failed to connect to PostgreSQL: %v", err)
		} else {
			defer pgWriter.Close()
			if err := pgWriter.Write(listings); err != nil {
				logger.Error("PostgreSQL write failed: %v", err)
			} else {
				logger.Info("Listings mirrored to PostgreSQL (table: listings)")
			}
		}
	}

	insightSvc := services.NewInsightService(logger)
	insightSvc.Print(insightSvc.Generate(listings))
}
