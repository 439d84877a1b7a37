// Package onepassword wraps the 1Password CLI for secure note access.
//
// Every operation is a fresh `op` subprocess; the CLI's own session state
// is the only authentication layer. The package provides note resolution
// by title substring with a strict exactly-one arity check, extraction of
// a note's text fields into a SecretSet, and conservative field updates
// that never delete.
//
// # Note conventions
//
// Notes are located by substring: `repo:<owner>/<repo>` for repositories,
// `fly:<app-name>` for Fly.io apps. A note may carry a `file_name` field
// naming the env file its secrets materialize into. Manuka records its own
// sync timestamps under the "Generated by manuka" section; neither is ever
// treated as a secret.
package onepassword
