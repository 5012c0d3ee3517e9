package catalog

import "strings"

// Source records how an entry got into the archive.
type Source string

const (
	// SourceLive marks entries produced by the portal crawler.
	SourceLive Source = "live"
	// SourceManual marks curator-supplied entries. Manual entries are never
	// overwritten by automated merges.
	SourceManual Source = "manual"
)

// UnknownHardware is the sentinel hardware variant used when the source text
// gives no usable hint.
const UnknownHardware = "UNKNOWN"

// Entry is one canonical firmware record for a specific
// (model, hardware variant, firmware version) combination.
type Entry struct {
	CanonicalKey        string `json:"canonical_key"`
	DeviceID            int    `json:"device_id"`
	Model               string `json:"model"`
	HardwareVariant     string `json:"hardware_variant"`
	FirmwareVersion     string `json:"firmware_version"`
	ReleaseDate         string `json:"release_date,omitempty"`
	DownloadURL         string `json:"download_url"`
	SupportedModelsText string `json:"supported_models_text,omitempty"`
	Changes             string `json:"changes,omitempty"`
	Notes               string `json:"notes,omitempty"`
	IsBeta              bool   `json:"is_beta"`
	Source              Source `json:"source"`
}

var betaMarkers = []string{"beta", "test", "alpha", "rc", "preview"}

// DetectBeta reports whether the version or notes text carries a
// pre-release marker.
func DetectBeta(version, notes string) bool {
	version = strings.ToLower(version)
	notes = strings.ToLower(notes)
	for _, marker := range betaMarkers {
		if strings.Contains(version, marker) || strings.Contains(notes, marker) {
			return true
		}
	}
	return false
}
