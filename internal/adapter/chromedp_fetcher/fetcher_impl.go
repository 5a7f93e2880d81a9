package chromedp_fetcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/user/a11y-scraper/internal/repository"
)

const userAgent = `Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36`

// headingWaitTimeout bounds the best-effort wait for headings to render;
// the section extractor expects them, but their absence is not fatal.
const headingWaitTimeout = 5 * time.Second

// ChromedpFetcher fetches fully rendered statement pages with headless
// Chrome, dismissing cookie/consent banners along the way.
type ChromedpFetcher struct {
	allocatorPool *sync.Pool
	timeout       time.Duration
}

// NewChromedpFetcher creates a new fetcher implementation using chromedp.
func NewChromedpFetcher(maxConcurrency int, pageLoadTimeout time.Duration) (repository.PageFetcher, error) {
	pool := &sync.Pool{
		New: func() interface{} {
			opts := append(chromedp.DefaultExecAllocatorOptions[:],
				chromedp.Flag("headless", true),
				chromedp.Flag("disable-gpu", true),
				chromedp.Flag("no-sandbox", true),
				chromedp.Flag("disable-dev-shm-usage", true),
				chromedp.UserAgent(userAgent),
			)
			allocCtx, _ := chromedp.NewExecAllocator(context.Background(), opts...)
			return allocCtx
		},
	}

	// Pre-warm the pool
	for i := 0; i < maxConcurrency; i++ {
		allocCtx := pool.Get().(context.Context)
		pool.Put(allocCtx)
	}

	return &ChromedpFetcher{
		allocatorPool: pool,
		timeout:       pageLoadTimeout,
	}, nil
}

// Fetch navigates to a URL, dismisses consent banners, waits for headings to
// appear and returns the rendered document HTML.
func (f *ChromedpFetcher) Fetch(ctx context.Context, url string) (string, error) {
	allocCtx := f.allocatorPool.Get().(context.Context)
	defer f.allocatorPool.Put(allocCtx)

	taskCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	taskCtx, cancel = context.WithTimeout(taskCtx, f.timeout)
	defer cancel()

	// Capture the HTTP status of the main document from network events.
	var mainStatus atomic.Int64
	chromedp.ListenTarget(taskCtx, func(ev interface{}) {
		if resp, ok := ev.(*network.EventResponseReceived); ok {
			if resp.Type == network.ResourceTypeDocument {
				mainStatus.CompareAndSwap(0, resp.Response.Status)
			}
		}
	})

	var htmlContent string
	err := chromedp.Run(taskCtx,
		network.Enable(),
		chromedp.Navigate(url),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		dismissConsentBanners(),
		waitForHeadings(headingWaitTimeout),
		chromedp.OuterHTML("html", &htmlContent),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %s", repository.ErrFetchTimeout, url)
		}
		return "", fmt.Errorf("%w: %v", repository.ErrNavigationFailed, err)
	}

	if status := mainStatus.Load(); status == 401 || status == 403 {
		return "", fmt.Errorf("%w: received status code %d", repository.ErrContentRestricted, status)
	}

	slog.Info("Fetched rendered page", "url", url, "bytes", len(htmlContent))
	return htmlContent, nil
}

// waitForHeadings waits for at least one h1..h5 to be present. Best-effort:
// a page without headings still gets snapshotted.
func waitForHeadings(timeout time.Duration) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		waitCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		if err := chromedp.WaitReady("h1, h2, h3, h4, h5", chromedp.ByQuery).Do(waitCtx); err != nil {
			slog.Warn("No headings detected before timeout, proceeding anyway", "error", err)
		}
		return nil
	})
}
