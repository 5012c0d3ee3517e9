package portal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"fwarchive/internal/config"
	"fwarchive/internal/ingest"
	"fwarchive/internal/logging"
)

// Interactive element selectors.
const (
	searchInputSelector  = "input.search-input"
	viewMoreSelector     = "button.view-more"
	downloadBtnSelector  = "a.download-btn"
	agreementSelector    = "#download-agreement"
	agreeButtonSelector  = "#download-agreement .agree-btn"
	resolvedLinkSelector = "#download-agreement a.download-url"
	shortElementTimeout  = 5 * time.Second
)

// Crawler drives the portal in a headless browser and emits one raw
// record per distinct (model, package label) pair.
type Crawler struct {
	cfg      config.Portal
	logger   *slog.Logger
	browser  *rod.Browser
	launcher *launcher.Launcher
}

func New(cfg config.Portal, logger *slog.Logger) *Crawler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Crawler{
		cfg:    cfg,
		logger: logger.With(logging.String(logging.FieldComponent, "portal")),
	}
}

// Start launches the browser and connects. Close must be called even
// when Start fails partway.
func (c *Crawler) Start() error {
	l := launcher.New().Headless(c.cfg.Headless)
	if c.cfg.BrowserBinPath != "" {
		l = l.Bin(c.cfg.BrowserBinPath)
	}
	l = l.Set("disable-blink-features", "AutomationControlled")

	wsURL, err := l.Launch()
	if err != nil {
		return fmt.Errorf("portal: launch browser: %w", err)
	}
	c.launcher = l

	browser := rod.New().ControlURL(wsURL)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("portal: connect browser: %w", err)
	}
	c.browser = browser
	c.logger.Info("browser launched", logging.Bool("headless", c.cfg.Headless))
	return nil
}

// Close shuts the browser down.
func (c *Crawler) Close() error {
	var err error
	if c.browser != nil {
		err = c.browser.Close()
		c.browser = nil
	}
	if c.launcher != nil {
		c.launcher.Cleanup()
		c.launcher = nil
	}
	return err
}

// Collect runs one crawl pass over every configured search term and
// returns the deduplicated raw records. A term that fails to load is
// logged and skipped; the pass continues with the next term.
func (c *Crawler) Collect(ctx context.Context) ([]ingest.RawRecord, error) {
	if c.browser == nil {
		return nil, fmt.Errorf("portal: crawler not started")
	}

	var records []ingest.RawRecord
	seen := make(map[string]struct{})

	for _, term := range c.cfg.SearchTerms {
		if ctx.Err() != nil {
			return records, ctx.Err()
		}
		termRecords, err := c.collectTerm(ctx, term)
		if err != nil {
			c.logger.Warn("search term failed",
				logging.String("term", term), logging.Error(err))
			continue
		}
		for _, record := range termRecords {
			key := record.ModelHint + "\x00" + record.Label
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			records = append(records, record)
			if c.cfg.RecordLimit > 0 && len(records) >= c.cfg.RecordLimit {
				c.logger.Info("record limit reached", logging.Int("limit", c.cfg.RecordLimit))
				return records, nil
			}
		}
	}
	c.logger.Info("crawl complete", logging.Int("records", len(records)))
	return records, nil
}

func (c *Crawler) collectTerm(ctx context.Context, term string) ([]ingest.RawRecord, error) {
	page, err := stealth.Page(c.browser)
	if err != nil {
		return nil, fmt.Errorf("create tab: %w", err)
	}
	defer page.Close()
	page = page.Context(ctx).Timeout(c.pageTimeout())

	if err := page.Navigate(c.cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("navigate: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait load: %w", err)
	}

	search, err := page.Element(searchInputSelector)
	if err != nil {
		return nil, fmt.Errorf("find search box: %w", err)
	}
	if err := search.Input(term); err != nil {
		return nil, fmt.Errorf("type search term: %w", err)
	}
	if err := search.Type(input.Enter); err != nil {
		return nil, fmt.Errorf("submit search: %w", err)
	}
	c.settle()

	c.expandResults(page)

	rowElements, err := page.Elements(rowSelector)
	if err != nil {
		return nil, fmt.Errorf("find result rows: %w", err)
	}
	c.logger.Debug("rows found",
		logging.String("term", term), logging.Int("count", len(rowElements)))

	var records []ingest.RawRecord
	for _, rowElement := range rowElements {
		if ctx.Err() != nil {
			return records, ctx.Err()
		}
		html, err := rowElement.HTML()
		if err != nil {
			c.logger.Warn("row html unavailable", logging.Error(err))
			continue
		}
		row, err := ParseRow(html)
		if err != nil {
			continue
		}
		downloadURL, err := c.resolveDownloadURL(page, rowElement)
		if err != nil {
			c.logger.Warn("download link unresolved",
				logging.String("model", row.Model),
				logging.String("label", row.Label),
				logging.Error(err))
			continue
		}
		records = append(records, row.Record(downloadURL))
	}
	return records, nil
}

// expandResults clicks "View more" until the button disappears or the
// configured cap is hit. The cap keeps a runaway page from pinning the
// crawl forever.
func (c *Crawler) expandResults(page *rod.Page) {
	for i := 0; i < c.cfg.MaxViewMore; i++ {
		more, err := page.Timeout(shortElementTimeout).Element(viewMoreSelector)
		if err != nil {
			return
		}
		visible, err := more.Visible()
		if err != nil || !visible {
			return
		}
		if err := more.Click(proto.InputMouseButtonLeft, 1); err != nil {
			c.logger.Warn("view more click failed", logging.Error(err))
			return
		}
		c.settle()
	}
	c.logger.Warn("view more cap reached", logging.Int("cap", c.cfg.MaxViewMore))
}

// resolveDownloadURL clicks the row's download button, accepts the
// agreement modal, and reads the real CDN link the modal reveals.
func (c *Crawler) resolveDownloadURL(page *rod.Page, rowElement *rod.Element) (string, error) {
	btn, err := rowElement.Element(downloadBtnSelector)
	if err != nil {
		return "", fmt.Errorf("download button: %w", err)
	}
	if err := btn.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return "", fmt.Errorf("click download: %w", err)
	}

	modal, err := page.Timeout(shortElementTimeout).Element(agreementSelector)
	if err != nil {
		return "", fmt.Errorf("agreement modal: %w", err)
	}
	agree, err := modal.Element(agreeButtonSelector)
	if err == nil {
		if err := agree.Click(proto.InputMouseButtonLeft, 1); err != nil {
			return "", fmt.Errorf("accept agreement: %w", err)
		}
		c.settle()
	}

	link, err := page.Timeout(shortElementTimeout).Element(resolvedLinkSelector)
	if err != nil {
		return "", fmt.Errorf("resolved link: %w", err)
	}
	href, err := link.Attribute("href")
	if err != nil || href == nil || *href == "" {
		return "", fmt.Errorf("resolved link has no href")
	}

	c.dismissModal(page)
	return *href, nil
}

// dismissModal closes the agreement dialog so the next row starts from
// a clean page. Best effort: pressing Escape is enough for this portal.
func (c *Crawler) dismissModal(page *rod.Page) {
	if err := page.Keyboard.Type(input.Escape); err != nil {
		c.logger.Debug("modal dismissal failed", logging.Error(err))
	}
	c.settle()
}

func (c *Crawler) settle() {
	time.Sleep(time.Duration(c.cfg.SettleMillis) * time.Millisecond)
}

func (c *Crawler) pageTimeout() time.Duration {
	return time.Duration(c.cfg.PageTimeout) * time.Second
}
