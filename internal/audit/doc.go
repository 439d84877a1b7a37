// Package audit records a local history of sync operations.
//
// Entries are appended as JSON Lines to $XDG_STATE_HOME/manuka/audit.jsonl.
// The history is purely informational: it records which notes were synced
// where and when, never secret values. Writing is best-effort and can never
// fail a sync; reading tolerates malformed lines by skipping them.
package audit
