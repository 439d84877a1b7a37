// Package errors provides typed error values for the Manuka application.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. This makes
// error handling more robust and refactoring-safe.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Note resolution errors: Locator matched zero or many secure notes
//     (ErrNoteNotFound, ErrNoteAmbiguous)
//   - Repository errors: Locator could not be derived from git (ErrGitRemote)
//   - File errors: Local env file issues (ErrEnvFileNotFound)
//   - Audit errors: Sync history issues (ErrNoAuditLog)
//
// # Usage
//
// Return errors from internal packages:
//
//	if len(matches) == 0 {
//	    return nil, errors.ErrNoteNotFound
//	}
//
// Handle errors in the CLI layer:
//
//	result, err := workflows.LocalGet(ctx, opts)
//	if errors.Is(err, merrors.ErrNoteNotFound) {
//	    // Show user-friendly message
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("resolving note for %s: %w", locator, errors.ErrNoteNotFound)
package errors
