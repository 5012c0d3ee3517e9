// Package runlog records run history in a local SQLite database: when
// each catalog pass started, how it ended, and what it changed. The
// history backs the runs command and nothing else depends on it.
package runlog
