package listings

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"propbook/config"
	"propbook/models"
	"propbook/utils"
)

// Importer pulls listing cards from a property site's search results with a
// headless browser and returns them as RawListings.
type Importer struct {
	cfg     *config.Config
	logger  *utils.Logger
	pool    *utils.WorkerPool
	visited *utils.KeySet
	retry   *utils.RetryConfig

	mu       sync.Mutex
	listings []*models.RawListing
}

// New creates a ready-to-use Importer.
func New(cfg *config.Config, logger *utils.Logger) *Importer {
	return &Importer{
		cfg:     cfg,
		logger:  logger,
		pool:    utils.NewWorkerPool(cfg.MaxConcurrency, cfg.RateLimitMs),
		visited: utils.NewKeySet(),
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
	}
}

// Import walks up to cfg.PagesToImport result pages starting at searchURL,
// following the site's "next" link, and enriches each card from its detail
// page.
func (im *Importer) Import(ctx context.Context, searchURL string) ([]*models.RawListing, error) {
	if searchURL == "" {
		return nil, errors.New("import: search URL is required")
	}
	source := sourceOf(searchURL)
	im.logger.Info("[import] Starting import from %s (%d pages, %d listings/page)",
		source, im.cfg.PagesToImport, im.cfg.ListingsPerPage)

	chromeBin := findChromeBinary(im.cfg.ChromeBin)
	im.logger.Debug("[import] Using browser binary: %q", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()

	currentURL := searchURL
	for page := 1; page <= im.cfg.PagesToImport; page++ {
		im.logger.Info("[import] Page %d: %s", page, currentURL)

		pageListings, nextURL, err := im.importPage(browserCtx, currentURL, page, source)
		if err != nil {
			im.logger.Error("[import] Page %d failed: %v", page, err)
			if page == 1 {
				return nil, fmt.Errorf("import: first page: %w", err)
			}
			break
		}
		if len(pageListings) == 0 {
			im.logger.Warn("[import] Page %d returned 0 listings, stopping", page)
			break
		}

		im.enrich(browserCtx, pageListings)

		im.mu.Lock()
		im.listings = append(im.listings, pageListings...)
		total := len(im.listings)
		im.mu.Unlock()

		im.logger.Info("[import] Page %d done, %d listings so far", page, total)

		if nextURL == "" || page >= im.cfg.PagesToImport {
			break
		}
		currentURL = nextURL

		select {
		case <-ctx.Done():
			return im.listings, ctx.Err()
		case <-time.After(time.Duration(im.cfg.RateLimitMs) * time.Millisecond):
		}
	}

	im.logger.Info("[import] Import complete, %d raw listings", len(im.listings))
	return im.listings, nil
}

// importPage loads one search results page and extracts its cards.
func (im *Importer) importPage(browserCtx context.Context, pageURL string, pageNum int, source string) ([]*models.RawListing, string, error) {
	var listings []*models.RawListing
	var nextURL string

	err := im.retry.Do(browserCtx, fmt.Sprintf("import-page-%d", pageNum), func() error {
		ctx, cancel := chromedp.NewContext(browserCtx)
		defer cancel()
		ctx, cancelTimeout := context.WithTimeout(ctx, 90*time.Second)
		defer cancelTimeout()

		var cards []card
		var next string
		err := chromedp.Run(ctx,
			chromedp.Navigate(pageURL),
			chromedp.Sleep(4*time.Second),
			chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
			chromedp.Sleep(2*time.Second),
			chromedp.Evaluate(cardScript(im.cfg.ListingsPerPage), &cards),
			chromedp.Evaluate(nextPageScript, &next),
		)
		if err != nil {
			return fmt.Errorf("chromedp page extract: %w", err)
		}

		im.logger.Debug("[import] Page %d: found %d cards", pageNum, len(cards))
		listings = toRawListings(cards, im.visited, source, time.Now())
		nextURL = next
		return nil
	})

	return listings, nextURL, err
}

// enrich visits the detail page of every listing through the worker pool.
func (im *Importer) enrich(browserCtx context.Context, listings []*models.RawListing) {
	for _, listing := range listings {
		l := listing
		ok := im.pool.Submit(browserCtx, func() {
			d, err := im.importDetail(browserCtx, l.URL)
			if err != nil {
				im.logger.Warn("[import] Detail page failed for %s: %v", l.URL, err)
				return
			}
			if needsEnrichment(l) {
				im.logger.Debug("[import] Filling missing fields for %s", l.URL)
			}
			merge(l, d)
		})
		if !ok {
			break
		}
	}
	im.pool.Wait()
	if n := im.pool.Skipped(); n > 0 {
		im.logger.Warn("[import] Cancelled, %d detail pages skipped so far", n)
	}
}

func (im *Importer) importDetail(browserCtx context.Context, url string) (detail, error) {
	var d detail
	err := im.retry.Do(browserCtx, "import-detail", func() error {
		ctx, cancel := chromedp.NewContext(browserCtx)
		defer cancel()
		ctx, cancelTimeout := context.WithTimeout(ctx, 60*time.Second)
		defer cancelTimeout()

		return chromedp.Run(ctx,
			chromedp.Navigate(url),
			chromedp.Sleep(3*time.Second),
			chromedp.Evaluate(detailScript, &d),
		)
	})
	return d, err
}

// findChromeBinary returns configured, or the first Chrome/Chromium found
// on PATH or in a well-known location. Empty means chromedp's default.
func findChromeBinary(configured string) string {
	if configured != "" {
		return configured
	}
	for _, name := range []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	for _, p := range []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
