package chromedp_driver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/user/review-scraper/internal/repository"
	"github.com/user/review-scraper/pkg/config"
)

// Session is a chromedp-backed PageDriver. One headless browser page is
// created at session start and reused sequentially for the whole run.
type Session struct {
	browserCtx    context.Context
	allocCancel   context.CancelFunc
	browserCancel context.CancelFunc

	pageLoadTimeout time.Duration
	actionTimeout   time.Duration
}

var _ repository.PageDriver = (*Session)(nil)

// NewSession launches the browser and prepares the shared page context.
func NewSession(cfg *config.Config) (*Session, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(cfg.UserAgent),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Starts the browser eagerly and pins request headers for every
	// navigation in this session.
	headers := network.Headers{"Accept-Language": cfg.AcceptLanguage}
	if err := chromedp.Run(browserCtx, network.Enable(), network.SetExtraHTTPHeaders(headers)); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("start browser session: %w", err)
	}

	return &Session{
		browserCtx:      browserCtx,
		allocCancel:     allocCancel,
		browserCancel:   browserCancel,
		pageLoadTimeout: cfg.PageLoadTimeout,
		actionTimeout:   cfg.ActionTimeout,
	}, nil
}

// Close tears the browser down.
func (s *Session) Close() {
	s.browserCancel()
	s.allocCancel()
}

func (s *Session) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tctx, cancel := context.WithTimeout(s.browserCtx, s.pageLoadTimeout)
	defer cancel()

	err := chromedp.Run(tctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", repository.ErrNavigationFailed, url, err)
	}
	return nil
}

func (s *Session) WaitVisible(ctx context.Context, sel string, timeout time.Duration) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	tctx, cancel := context.WithTimeout(s.browserCtx, timeout)
	defer cancel()

	err := chromedp.Run(tctx, chromedp.WaitVisible(sel, chromedp.ByQuery))
	if errors.Is(err, context.DeadlineExceeded) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("wait visible %s: %w", sel, err)
	}
	return true, nil
}

func (s *Session) WaitHidden(ctx context.Context, sel string, timeout time.Duration) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	tctx, cancel := context.WithTimeout(s.browserCtx, timeout)
	defer cancel()

	err := chromedp.Run(tctx, chromedp.WaitNotVisible(sel, chromedp.ByQuery))
	if errors.Is(err, context.DeadlineExceeded) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("wait hidden %s: %w", sel, err)
	}
	return true, nil
}

func (s *Session) Exists(ctx context.Context, sel string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	tctx, cancel := context.WithTimeout(s.browserCtx, s.actionTimeout)
	defer cancel()

	var nodes []*cdp.Node
	err := chromedp.Run(tctx, chromedp.Nodes(sel, &nodes, chromedp.ByQueryAll, chromedp.AtLeast(0)))
	if err != nil {
		return false, fmt.Errorf("query %s: %w", sel, err)
	}
	return len(nodes) > 0, nil
}

func (s *Session) Click(ctx context.Context, sel string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tctx, cancel := context.WithTimeout(s.browserCtx, s.actionTimeout)
	defer cancel()

	if err := chromedp.Run(tctx, chromedp.Click(sel, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("click %s: %w", sel, err)
	}
	return nil
}

func (s *Session) Text(ctx context.Context, sel string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	tctx, cancel := context.WithTimeout(s.browserCtx, s.actionTimeout)
	defer cancel()

	var out string
	if err := chromedp.Run(tctx, chromedp.Text(sel, &out, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("%w: text of %s: %v", repository.ErrExtractionFailed, sel, err)
	}
	return out, nil
}

// Attribute treats a missing element as a soft absence: chromedp waits for
// the selector, so expiry of the bounded action timeout reports not-found
// rather than an error.
func (s *Session) Attribute(ctx context.Context, sel, name string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	tctx, cancel := context.WithTimeout(s.browserCtx, s.actionTimeout)
	defer cancel()

	var value string
	var ok bool
	err := chromedp.Run(tctx, chromedp.AttributeValue(sel, name, &value, &ok, chromedp.ByQuery))
	if errors.Is(err, context.DeadlineExceeded) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("attribute %s of %s: %w", name, sel, err)
	}
	return value, ok, nil
}

func (s *Session) OuterHTML(ctx context.Context, sel string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	tctx, cancel := context.WithTimeout(s.browserCtx, s.actionTimeout)
	defer cancel()

	var html string
	if err := chromedp.Run(tctx, chromedp.OuterHTML(sel, &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("%w: outer html of %s: %v", repository.ErrExtractionFailed, sel, err)
	}
	return html, nil
}

func (s *Session) Evaluate(ctx context.Context, script string, out interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tctx, cancel := context.WithTimeout(s.browserCtx, s.actionTimeout)
	defer cancel()

	if err := chromedp.Run(tctx, chromedp.Evaluate(script, out)); err != nil {
		return fmt.Errorf("evaluate script: %w", err)
	}
	return nil
}

func (s *Session) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return chromedp.Run(s.browserCtx, chromedp.Sleep(d))
}
