package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePortal(); err != nil {
		return err
	}
	if err := c.validateLinkCheck(); err != nil {
		return err
	}
	if err := c.validateReport(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePortal() error {
	parsed, err := url.Parse(c.Portal.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("portal.base_url %q is not an absolute URL", c.Portal.BaseURL)
	}
	if len(c.Portal.SearchTerms) == 0 {
		return errors.New("portal.search_terms must include at least one term")
	}
	if err := ensurePositiveMap(map[string]int{
		"portal.page_timeout":  c.Portal.PageTimeout,
		"portal.settle_millis": c.Portal.SettleMillis,
		"portal.max_view_more": c.Portal.MaxViewMore,
	}); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLinkCheck() error {
	if c.LinkCheck.RequestTimeout <= 0 {
		return errors.New("link_check.request_timeout must be positive (seconds)")
	}
	if c.LinkCheck.RetryCount < 0 {
		return errors.New("link_check.retry_count must be >= 0")
	}
	return nil
}

func (c *Config) validateReport() error {
	if c.Report.Filename == "" {
		return errors.New("report.filename must be set")
	}
	if strings.ContainsAny(c.Report.Filename, "/\\") {
		return fmt.Errorf("report.filename %q must be a bare filename, not a path", c.Report.Filename)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level %q must be one of debug, info, warn, error", c.Logging.Level)
	}
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
