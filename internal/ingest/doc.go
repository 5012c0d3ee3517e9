// Package ingest drives one full catalog pass: each raw record from
// the crawler (or a manual submission) runs through field extraction,
// identity resolution, and the merge engine, accumulating a change
// summary. One malformed record never aborts a run; a device id
// conflict does, with nothing committed.
package ingest
