package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"fwarchive/internal/fileutil"
)

// Files names the durable catalog documents. Live and manual entries persist
// separately so the crawler's write path never touches curated data.
type Files struct {
	Live   string
	Manual string
}

// DefaultFiles returns the catalog file layout under dataDir.
func DefaultFiles(dataDir string) Files {
	return Files{
		Live:   filepath.Join(dataDir, "catalog_live.json"),
		Manual: filepath.Join(dataDir, "catalog_manual.json"),
	}
}

// Load reads both catalog documents into a fresh store. Missing files start
// empty. Manual entries win when both files carry the same key, so a crawler
// bug that wrote a curated key to the live file cannot shadow curation.
func Load(files Files) (*Store, error) {
	store := NewStore()

	live, err := loadFile(files.Live)
	if err != nil {
		return nil, fmt.Errorf("load live catalog: %w", err)
	}
	for key, entry := range live {
		entry.CanonicalKey = key
		store.entries[key] = entry
	}

	manual, err := loadFile(files.Manual)
	if err != nil {
		return nil, fmt.Errorf("load manual catalog: %w", err)
	}
	for key, entry := range manual {
		entry.CanonicalKey = key
		store.entries[key] = entry
	}

	return store, nil
}

// Save writes the committed state back to disk, splitting entries by
// provenance. Pending writes are not persisted; callers commit first.
func (s *Store) Save(files Files) error {
	live := make(map[string]Entry)
	manual := make(map[string]Entry)
	for key, entry := range s.entries {
		if entry.Source == SourceManual {
			manual[key] = entry
		} else {
			live[key] = entry
		}
	}

	if err := saveFile(files.Live, live); err != nil {
		return fmt.Errorf("save live catalog: %w", err)
	}
	if err := saveFile(files.Manual, manual); err != nil {
		return fmt.Errorf("save manual catalog: %w", err)
	}
	return nil
}

func loadFile(path string) (map[string]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]Entry{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(data) == 0 {
		return map[string]Entry{}, nil
	}

	var entries map[string]Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return entries, nil
}

func saveFile(path string, entries map[string]Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal entries: %w", err)
	}
	return fileutil.WriteAtomic(path, data, 0o644)
}
