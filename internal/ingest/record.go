package ingest

// RecordKind distinguishes where a raw record came from. The two
// origins carry different guarantees: search results are noisy portal
// scrapes, manual entries are curator-supplied and may pin a device id.
type RecordKind string

const (
	KindSearchResult RecordKind = "search_result"
	KindManualEntry  RecordKind = "manual_entry"
)

// RawRecord is one observation handed to the pipeline. Label and URL
// are required; everything else is optional context that improves
// extraction.
type RawRecord struct {
	Kind                RecordKind
	Label               string
	URL                 string
	ModelHint           string
	HardwareHint        string
	Version             string // explicit version, overrides label extraction
	ReleaseDateText     string // literal date shown on the portal row
	SupportedModelsText string
	Changes             string
	Notes               string
	DeviceID            int // curator-pinned id for manual entries, 0 = auto
}
