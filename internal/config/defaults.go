package config

const (
	defaultDataDir            = "~/.local/share/fwarchive/data"
	defaultReportDir          = "~/.local/share/fwarchive/reports"
	defaultLogDir             = "~/.local/share/fwarchive/logs"
	defaultPortalBaseURL      = "https://www.hikvision.com/en/support/download/firmware/"
	defaultPortalPageTimeout  = 60
	defaultPortalSettleMillis = 1500
	defaultPortalMaxViewMore  = 25
	defaultLinkCheckTimeout   = 20
	defaultLinkCheckRetries   = 2
	defaultReportFilename     = "README.md"
	defaultReportTitle        = "Firmware Archive"
	defaultNotifyTimeout      = 10
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

func defaultSearchTerms() []string {
	return []string{"DS-2CD", "DS-2DE", "DS-76", "DS-77", "DS-2TD", "AE-"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			ReportDir: defaultReportDir,
			LogDir:    defaultLogDir,
		},
		Portal: Portal{
			BaseURL:      defaultPortalBaseURL,
			SearchTerms:  defaultSearchTerms(),
			Headless:     true,
			PageTimeout:  defaultPortalPageTimeout,
			SettleMillis: defaultPortalSettleMillis,
			MaxViewMore:  defaultPortalMaxViewMore,
		},
		LinkCheck: LinkCheck{
			RequestTimeout: defaultLinkCheckTimeout,
			RetryCount:     defaultLinkCheckRetries,
		},
		Report: Report{
			Filename: defaultReportFilename,
			Title:    defaultReportTitle,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
			RunComplete:    true,
			Errors:         true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
