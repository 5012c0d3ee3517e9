// Package extract parses raw firmware labels (filenames and portal
// annotations) into structured candidate fields. Extraction is
// best-effort: a field that cannot be isolated confidently is left
// empty rather than guessed.
package extract
