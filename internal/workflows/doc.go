// Package workflows implements Manuka's sync operations.
//
// Each workflow is a single linear sequence: derive the locator, resolve
// the secure note, read one side, transform, write the other side. There
// is no retry layer and no partial success; the first failure aborts the
// operation and surfaces to the CLI.
//
// Workflows take an Options struct carrying the external tool clients and
// return a Result struct for the CLI layer to render. Tests inject fake
// command runners through the clients.
package workflows
