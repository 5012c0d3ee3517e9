package merge_test

import (
	"reflect"
	"testing"

	"fwarchive/internal/catalog"
	"fwarchive/internal/merge"
)

func candidate() catalog.Entry {
	return catalog.Entry{
		CanonicalKey:    "ds-2cd1023g0e-i_ipc_g0_5.7.23",
		DeviceID:        100000,
		Model:           "DS-2CD1023G0E-I",
		HardwareVariant: "IPC_G0",
		FirmwareVersion: "5.7.23",
		ReleaseDate:     "2024-12-11",
		DownloadURL:     "https://cdn.example.com/a.zip",
		Source:          catalog.SourceLive,
	}
}

func TestApplyInsertsUnseenKey(t *testing.T) {
	store := catalog.NewStore()
	if got := merge.Apply(store, candidate()); got != merge.OutcomeNew {
		t.Fatalf("outcome = %q, want %q", got, merge.OutcomeNew)
	}
	if _, ok := store.Get("ds-2cd1023g0e-i_ipc_g0_5.7.23"); !ok {
		t.Fatal("entry not stored")
	}
}

func TestApplyLeavesManualEntriesUntouched(t *testing.T) {
	store := catalog.NewStore()
	curated := candidate()
	curated.Source = catalog.SourceManual
	curated.Notes = "curated"
	store.Put(curated.CanonicalKey, curated)
	store.Commit()

	incoming := candidate()
	incoming.Notes = "scraped note"
	incoming.DownloadURL = "https://cdn.example.com/rotated.zip"
	if got := merge.Apply(store, incoming); got != merge.OutcomeSkippedProtected {
		t.Fatalf("outcome = %q, want %q", got, merge.OutcomeSkippedProtected)
	}

	after, _ := store.Get(curated.CanonicalKey)
	if !reflect.DeepEqual(after, curated) {
		t.Fatalf("manual entry changed:\n got %+v\nwant %+v", after, curated)
	}
}

func TestApplyEnrichesEmptyFieldsOnly(t *testing.T) {
	store := catalog.NewStore()
	existing := candidate()
	existing.Changes = ""
	existing.Notes = "original note"
	store.Put(existing.CanonicalKey, existing)

	incoming := candidate()
	incoming.Changes = "Bug fixes"
	incoming.Notes = "different note"
	if got := merge.Apply(store, incoming); got != merge.OutcomeUpdated {
		t.Fatalf("outcome = %q, want %q", got, merge.OutcomeUpdated)
	}

	after, _ := store.Get(existing.CanonicalKey)
	if after.Changes != "Bug fixes" {
		t.Fatalf("Changes = %q, want %q", after.Changes, "Bug fixes")
	}
	if after.Notes != "original note" {
		t.Fatalf("Notes overwritten: %q", after.Notes)
	}
}

func TestApplyNeverErasesFilledFields(t *testing.T) {
	store := catalog.NewStore()
	existing := candidate()
	existing.Changes = "Bug fixes"
	store.Put(existing.CanonicalKey, existing)

	incoming := candidate()
	incoming.Changes = ""
	if got := merge.Apply(store, incoming); got != merge.OutcomeSkippedNoChange {
		t.Fatalf("outcome = %q, want %q", got, merge.OutcomeSkippedNoChange)
	}
	after, _ := store.Get(existing.CanonicalKey)
	if after.Changes != "Bug fixes" {
		t.Fatalf("Changes erased: %q", after.Changes)
	}
}

func TestApplyAlwaysRefreshesDownloadURL(t *testing.T) {
	store := catalog.NewStore()
	existing := candidate()
	existing.DownloadURL = "https://cdn.example.com/A.zip"
	store.Put(existing.CanonicalKey, existing)

	incoming := candidate()
	incoming.DownloadURL = "https://cdn.example.com/B.zip"
	if got := merge.Apply(store, incoming); got != merge.OutcomeUpdated {
		t.Fatalf("outcome = %q, want %q", got, merge.OutcomeUpdated)
	}
	after, _ := store.Get(existing.CanonicalKey)
	if after.DownloadURL != "https://cdn.example.com/B.zip" {
		t.Fatalf("DownloadURL = %q, want rotated value", after.DownloadURL)
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	store := catalog.NewStore()
	if got := merge.Apply(store, candidate()); got != merge.OutcomeNew {
		t.Fatalf("first pass outcome = %q, want %q", got, merge.OutcomeNew)
	}
	if got := merge.Apply(store, candidate()); got != merge.OutcomeSkippedNoChange {
		t.Fatalf("second pass outcome = %q, want %q", got, merge.OutcomeSkippedNoChange)
	}
}

func TestApplyBetaStatusRatchetsOn(t *testing.T) {
	store := catalog.NewStore()
	existing := candidate()
	existing.IsBeta = true
	store.Put(existing.CanonicalKey, existing)

	incoming := candidate()
	incoming.IsBeta = false
	merge.Apply(store, incoming)
	after, _ := store.Get(existing.CanonicalKey)
	if !after.IsBeta {
		t.Fatal("beta flag cleared by non-beta candidate")
	}
}
