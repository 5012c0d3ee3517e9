// Package merge decides how a freshly extracted candidate entry lands
// in the catalog: insert, enrich an existing live entry, or skip.
// Previously curated data is never corrupted by an automated pass.
package merge

import (
	"fwarchive/internal/catalog"
)

// Outcome classifies what Apply did with one candidate.
type Outcome string

const (
	OutcomeNew              Outcome = "new"
	OutcomeUpdated          Outcome = "updated"
	OutcomeSkippedNoChange  Outcome = "skipped (no change)"
	OutcomeSkippedProtected Outcome = "skipped (protected)"
)

// Apply merges candidate into store. The candidate must carry its
// canonical key and device id already resolved.
//
// Rules: an unseen key inserts unconditionally. Manual entries are
// immutable with respect to automated merges. For an existing live
// entry, empty fields are filled from the candidate but populated
// fields are never overwritten, so a transient parse regression cannot
// erase a previously correct value. The download URL is the one
// exception: vendor CDN links rotate, so it always takes the incoming
// value.
func Apply(store *catalog.Store, candidate catalog.Entry) Outcome {
	existing, ok := store.Get(candidate.CanonicalKey)
	if !ok {
		store.Put(candidate.CanonicalKey, candidate)
		return OutcomeNew
	}
	if existing.Source == catalog.SourceManual {
		return OutcomeSkippedProtected
	}

	merged := existing
	changed := false
	fill := func(dst *string, src string) {
		if *dst == "" && src != "" {
			*dst = src
			changed = true
		}
	}
	fill(&merged.ReleaseDate, candidate.ReleaseDate)
	fill(&merged.SupportedModelsText, candidate.SupportedModelsText)
	fill(&merged.Changes, candidate.Changes)
	fill(&merged.Notes, candidate.Notes)

	if candidate.DownloadURL != "" && candidate.DownloadURL != merged.DownloadURL {
		merged.DownloadURL = candidate.DownloadURL
		changed = true
	}
	// Beta status only ratchets on: a candidate that failed to detect
	// the marker must not clear a previously detected one.
	if candidate.IsBeta && !merged.IsBeta {
		merged.IsBeta = true
		changed = true
	}

	if !changed {
		return OutcomeSkippedNoChange
	}
	store.Put(merged.CanonicalKey, merged)
	return OutcomeUpdated
}
