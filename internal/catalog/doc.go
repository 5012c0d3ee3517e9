// Package catalog holds the canonical firmware archive: the Entry
// model, the in-memory store keyed by canonical key, semantic firmware
// version comparison, grouped iteration for report rendering, and JSON
// persistence split by provenance (live vs. manual).
//
// The store buffers writes made during an ingestion run and applies them only
// on Commit, so a run that fails an invariant check leaves the durable
// catalog untouched.
package catalog
