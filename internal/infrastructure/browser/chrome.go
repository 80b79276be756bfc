package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"KenyaNews/internal/ports"
)

// Chrome drives a headless Chrome through the DevTools protocol.
type Chrome struct {
	opts   Options
	logger *slog.Logger
}

var _ ports.Browser = (*Chrome)(nil)

// NewChrome builds a Chrome launcher.
func NewChrome(opts Options, logger *slog.Logger) *Chrome {
	if logger == nil {
		logger = slog.Default()
	}
	return &Chrome{opts: opts.withDefaults(), logger: logger}
}

// Open launches the browser and its first tab so start-up failures surface here.
func (c *Chrome) Open(ctx context.Context) (ports.RenderSession, error) {
	allocOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoDefaultBrowserCheck,
		chromedp.NoFirstRun,
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserAgent(c.opts.UserAgent),
		chromedp.WindowSize(1920, 1080),
	}
	if c.opts.Headless {
		allocOpts = append(allocOpts, chromedp.Flag("headless", "new"))
	}
	if c.opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(c.opts.ExecPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)
	cancel := func() {
		tabCancel()
		allocCancel()
	}

	// The first Run binds the browser lifetime to tabCtx, so it must not carry a deadline.
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	err := chromedp.Run(tabCtx,
		network.Enable(),
		network.SetExtraHTTPHeaders(network.Headers{
			"Accept-Language": c.opts.AcceptLanguage,
			"DNT":             "1",
		}),
	)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("start chrome: %w", err)
	}

	c.logger.Debug("chrome started", "headless", c.opts.Headless)
	return &chromeSession{tab: tabCtx, cancel: cancel, opts: c.opts, logger: c.logger}, nil
}

type chromeSession struct {
	tab    context.Context
	cancel context.CancelFunc
	opts   Options
	logger *slog.Logger
	once   sync.Once
}

// Render navigates the tab, waits the fixed render delay and returns the document HTML.
func (s *chromeSession) Render(ctx context.Context, url string, wait time.Duration) (string, error) {
	if err := s.tab.Err(); err != nil {
		return "", fmt.Errorf("chrome session closed: %w", err)
	}

	wait = s.opts.wait(wait)
	runCtx, cancel := context.WithTimeout(s.tab, s.opts.Timeout+wait)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	s.logger.Debug("loading url", "url", url, "wait", wait)

	var html string
	err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.Sleep(wait),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", errors.Join(fmt.Errorf("render %s: %w", url, err), ctxErr)
		}
		return "", fmt.Errorf("render %s: %w", url, err)
	}
	return html, nil
}

// Close shuts the tab and the browser process.
func (s *chromeSession) Close() error {
	s.once.Do(s.cancel)
	return nil
}
