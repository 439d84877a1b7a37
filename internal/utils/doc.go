// Package utils provides shared helpers for Manuka.
//
// It contains the subprocess runner used by every external CLI call, the
// git origin URL parsing that derives the repo locator, and small system
// lookups. The CommandRunner type is the single seam for faking external
// tools in tests.
package utils
