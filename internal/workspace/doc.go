// Package workspace manages the output directory of preview sessions,
// supporting both ephemeral (timestamped) and persistent (fixed-path) modes.
//
// Ephemeral mode creates a timestamped directory (e.g., docsite-20251214-122336-1234)
// that is removed completely when the session ends.
//
// Persistent mode uses a fixed directory chosen with --output that survives the
// session, so the next run can skip unchanged files.
package workspace
