package testsupport

import (
	"testing"

	"fwarchive/internal/catalog"
	"fwarchive/internal/config"
)

// MustLoadCatalog opens the catalog backed by the config's data directory,
// failing the test on error.
func MustLoadCatalog(t testing.TB, cfg *config.Config) (*catalog.Store, catalog.Files) {
	t.Helper()

	files := catalog.DefaultFiles(cfg.Paths.DataDir)
	store, err := catalog.Load(files)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return store, files
}

// Entry builds a committed live entry with plausible defaults. Callers
// override fields through the mutate callback before the entry is stored.
func Entry(model, hardware, version string, mutate func(*catalog.Entry)) catalog.Entry {
	entry := catalog.Entry{
		DeviceID:        100000,
		Model:           model,
		HardwareVariant: hardware,
		FirmwareVersion: version,
		DownloadURL:     "https://www.hikvision.com/content/firmware/" + version + ".zip",
		Source:          catalog.SourceLive,
	}
	if mutate != nil {
		mutate(&entry)
	}
	return entry
}
