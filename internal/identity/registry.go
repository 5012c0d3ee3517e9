package identity

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"fwarchive/internal/catalog"
	"fwarchive/internal/fileutil"
)

// AutoIDFloor is the lowest device id the registry will assign on its
// own. Ids below it are reserved for manually curated declarations.
const AutoIDFloor = 100000

type pair struct {
	Model    string
	Hardware string
}

// Registry maps (model, hardware variant) pairs to stable integer
// device ids. Auto-assigned ids are strictly increasing and never
// reused for a different pair.
type Registry struct {
	byPair  map[pair]int
	maxAuto int
}

// device is the on-disk shape of one registry binding.
type device struct {
	DeviceID        int    `json:"device_id"`
	Model           string `json:"model"`
	HardwareVariant string `json:"hardware_variant"`
}

func NewRegistry() *Registry {
	return &Registry{byPair: make(map[pair]int), maxAuto: AutoIDFloor - 1}
}

func normalizedPair(model, hardware string) (pair, error) {
	m := Normalize(model)
	if m == "" {
		return pair{}, fmt.Errorf("device lookup: %w", ErrEmptyModel)
	}
	h := Normalize(hardware)
	if h == "" {
		h = Normalize(catalog.UnknownHardware)
	}
	return pair{Model: m, Hardware: h}, nil
}

// Resolve returns the device id for the pair, assigning the next auto
// id when the pair is unseen.
func (r *Registry) Resolve(model, hardware string) (int, error) {
	p, err := normalizedPair(model, hardware)
	if err != nil {
		return 0, err
	}
	if id, ok := r.byPair[p]; ok {
		return id, nil
	}
	r.maxAuto++
	r.byPair[p] = r.maxAuto
	return r.maxAuto, nil
}

// Declare binds a curator-supplied id to a pair. Rebinding a pair to a
// different id is a store conflict.
func (r *Registry) Declare(model, hardware string, id int) error {
	p, err := normalizedPair(model, hardware)
	if err != nil {
		return err
	}
	if existing, ok := r.byPair[p]; ok && existing != id {
		return fmt.Errorf("%w: pair (%s, %s) already bound to %d, cannot rebind to %d",
			ErrStoreConflict, p.Model, p.Hardware, existing, id)
	}
	r.byPair[p] = id
	if id > r.maxAuto {
		r.maxAuto = id
	}
	return nil
}

// Len reports the number of known pairs.
func (r *Registry) Len() int {
	return len(r.byPair)
}

// DefaultRegistryPath returns the devices file under dataDir.
func DefaultRegistryPath(dataDir string) string {
	return filepath.Join(dataDir, "devices.json")
}

// LoadRegistry reads bindings from path. A missing file yields an empty
// registry. Two bindings for the same pair with different ids mean the
// file is corrupted and loading fails with a store conflict.
func LoadRegistry(path string) (*Registry, error) {
	r := NewRegistry()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return r, nil
		}
		return nil, fmt.Errorf("read device registry: %w", err)
	}
	var devices []device
	if err := json.Unmarshal(data, &devices); err != nil {
		return nil, fmt.Errorf("parse device registry %s: %w", path, err)
	}
	for _, d := range devices {
		if err := r.Declare(d.Model, d.HardwareVariant, d.DeviceID); err != nil {
			return nil, fmt.Errorf("device registry %s: %w", path, err)
		}
	}
	return r, nil
}

// Save writes the registry to path atomically, ordered by device id.
func (r *Registry) Save(path string) error {
	devices := make([]device, 0, len(r.byPair))
	for p, id := range r.byPair {
		devices = append(devices, device{DeviceID: id, Model: p.Model, HardwareVariant: p.Hardware})
	}
	sort.Slice(devices, func(i, j int) bool { return devices[i].DeviceID < devices[j].DeviceID })

	data, err := json.MarshalIndent(devices, "", "  ")
	if err != nil {
		return fmt.Errorf("encode device registry: %w", err)
	}
	return fileutil.WriteAtomic(path, data, 0o644)
}
