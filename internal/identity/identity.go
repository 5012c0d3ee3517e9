package identity

import (
	"errors"
	"fmt"
	"strings"

	"fwarchive/internal/catalog"
)

// ErrEmptyModel is returned when a record carries no model designator
// after normalization. An entry cannot exist without a model.
var ErrEmptyModel = errors.New("model is empty")

// ErrStoreConflict marks an attempt to bind two different device ids to
// the same (model, hardware variant) pair. It indicates corrupted prior
// state and is fatal to the run.
var ErrStoreConflict = errors.New("device id conflict")

// Normalize lowercases s, trims surrounding whitespace, and collapses
// internal whitespace runs to single underscores. It is idempotent.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "_")
}

// CanonicalKey derives the unique identifier for one (model, hardware
// variant, firmware version) triple. An empty hardware variant maps to
// the UNKNOWN sentinel so the key shape stays uniform.
func CanonicalKey(model, hardware, version string) (string, error) {
	m := Normalize(model)
	if m == "" {
		return "", fmt.Errorf("canonical key: %w", ErrEmptyModel)
	}
	h := Normalize(hardware)
	if h == "" {
		h = Normalize(catalog.UnknownHardware)
	}
	return m + "_" + h + "_" + Normalize(version), nil
}
