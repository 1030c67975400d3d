package lamudi

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/Mercury86-sudo/Real-State-Scraper/config"
	"github.com/Mercury86-sudo/Real-State-Scraper/utils"
)

// Fetcher loads one listings page and returns its rendered HTML.
type Fetcher interface {
	Fetch(ctx context.Context, page int) (string, error)
	Close()
}

// settleDelay gives the site's scripts time to render the cards after
// navigation.
const settleDelay = 5 * time.Second

// ChromeFetcher drives a single headless Chrome session for the whole
// run. Each page load runs in its own tab with a hard timeout.
type ChromeFetcher struct {
	cfg        *config.Config
	logger     *utils.Logger
	browserCtx context.Context
	cancels    []context.CancelFunc
}

// NewChromeFetcher allocates the browser session. Close must be called
// on every exit path so the Chrome process is released.
func NewChromeFetcher(cfg *config.Config, logger *utils.Logger) *ChromeFetcher {
	chromeBin := findChromeBinary(cfg.ChromeBin)
	logger.Info("[lamudi] Using browser binary: %s", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)

	// Suppress chromedp log noise
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	return &ChromeFetcher{
		cfg:        cfg,
		logger:     logger,
		browserCtx: browserCtx,
		cancels:    []context.CancelFunc{cancelBrowser, cancelAlloc},
	}
}

// Fetch navigates a fresh tab to the given page index and returns the
// rendered document HTML.
func (f *ChromeFetcher) Fetch(ctx context.Context, page int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s?page=%d", f.cfg.BaseURL, page)
	f.logger.Info("[lamudi] Scanning: %s", url)

	tabCtx, cancelTab := chromedp.NewContext(f.browserCtx)
	defer cancelTab()

	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, time.Duration(f.cfg.PageTimeoutSec)*time.Second)
	defer cancelTimeout()

	var pageHTML string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(url),
		chromedp.Sleep(settleDelay),
		chromedp.OuterHTML("html", &pageHTML, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("chromedp page %d: %w", page, err)
	}

	return pageHTML, nil
}

// Close releases the browser session and its allocator.
func (f *ChromeFetcher) Close() {
	for _, cancel := range f.cancels {
		cancel()
	}
}

// findChromeBinary locates a Chrome/Chromium binary, preferring the
// configured path.
func findChromeBinary(configured string) string {
	if configured != "" {
		return configured
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
