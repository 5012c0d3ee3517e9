// Package notifications delivers run status pushes over ntfy. When no
// topic is configured every call is a silent no-op, so callers never
// need to guard notification sends.
package notifications
