package config

import (
	"fmt"
	"os"
	"strings"

	"fwarchive/internal/extract"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizePortal()
	c.normalizeExtract()
	c.normalizeLinkCheck()
	c.normalizeReport()
	c.normalizeNotifications()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ReportDir) == "" {
		c.Paths.ReportDir = defaultReportDir
	}
	if c.Paths.ReportDir, err = expandPath(c.Paths.ReportDir); err != nil {
		return fmt.Errorf("paths.report_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizePortal() {
	c.Portal.BaseURL = strings.TrimSpace(c.Portal.BaseURL)
	if c.Portal.BaseURL == "" {
		c.Portal.BaseURL = defaultPortalBaseURL
	}
	terms := make([]string, 0, len(c.Portal.SearchTerms))
	seen := make(map[string]struct{}, len(c.Portal.SearchTerms))
	for _, term := range c.Portal.SearchTerms {
		normalized := strings.ToUpper(strings.TrimSpace(term))
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		terms = append(terms, normalized)
	}
	if len(terms) == 0 {
		terms = defaultSearchTerms()
	}
	c.Portal.SearchTerms = terms
	if c.Portal.PageTimeout <= 0 {
		c.Portal.PageTimeout = defaultPortalPageTimeout
	}
	if c.Portal.SettleMillis <= 0 {
		c.Portal.SettleMillis = defaultPortalSettleMillis
	}
	if c.Portal.MaxViewMore <= 0 {
		c.Portal.MaxViewMore = defaultPortalMaxViewMore
	}
	if c.Portal.RecordLimit < 0 {
		c.Portal.RecordLimit = 0
	}
	c.Portal.BrowserBinPath = strings.TrimSpace(c.Portal.BrowserBinPath)
}

func (c *Config) normalizeExtract() {
	tags := make([]string, 0, len(c.Extract.HardwareTags))
	seen := make(map[string]struct{}, len(c.Extract.HardwareTags))
	for _, tag := range c.Extract.HardwareTags {
		normalized := strings.ToUpper(strings.TrimSpace(tag))
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		tags = append(tags, normalized)
	}
	if len(tags) == 0 {
		tags = extract.DefaultHardwareTags
	}
	c.Extract.HardwareTags = tags
}

func (c *Config) normalizeLinkCheck() {
	if c.LinkCheck.RequestTimeout <= 0 {
		c.LinkCheck.RequestTimeout = defaultLinkCheckTimeout
	}
	if c.LinkCheck.RetryCount < 0 {
		c.LinkCheck.RetryCount = 0
	}
}

func (c *Config) normalizeReport() {
	c.Report.Filename = strings.TrimSpace(c.Report.Filename)
	if c.Report.Filename == "" {
		c.Report.Filename = defaultReportFilename
	}
	c.Report.Title = strings.TrimSpace(c.Report.Title)
	if c.Report.Title == "" {
		c.Report.Title = defaultReportTitle
	}
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.NtfyTopic == "" {
		if value, ok := os.LookupEnv("FWARCHIVE_NTFY_TOPIC"); ok {
			c.Notifications.NtfyTopic = strings.TrimSpace(value)
		}
	}
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
