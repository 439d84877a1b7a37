package errors

import "errors"

// Note resolution errors indicate a secure note could not be pinned down.
var (
	// ErrNoteNotFound indicates no secure note title contains the locator.
	ErrNoteNotFound = errors.New("no secure note matches the locator")

	// ErrNoteAmbiguous indicates more than one secure note title contains the locator.
	ErrNoteAmbiguous = errors.New("multiple secure notes match the locator")

	// ErrNoteEmpty indicates the matched note holds no secret fields.
	ErrNoteEmpty = errors.New("secure note holds no secrets")
)

// Repository errors indicate issues deriving the locator from git.
var (
	// ErrGitRemote indicates the origin remote is missing or its URL is malformed.
	ErrGitRemote = errors.New(`remote "origin" is missing or not a recognized repository URL`)
)

// File errors indicate issues with the local env file.
var (
	// ErrEnvFileNotFound indicates the env file to push does not exist.
	ErrEnvFileNotFound = errors.New("env file not found")

	// ErrValueNotRepresentable indicates a secret value cannot be written in env syntax.
	ErrValueNotRepresentable = errors.New("value cannot be represented in env syntax")
)

// Audit errors indicate issues reading the sync history.
var (
	// ErrNoAuditLog indicates no audit log has been written yet.
	ErrNoAuditLog = errors.New("no sync history recorded yet")

	// ErrInvalidDateFormat indicates a date filter was not in YYYY-MM-DD form.
	ErrInvalidDateFormat = errors.New("invalid date format")
)
