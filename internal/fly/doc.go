// Package fly wraps the Fly.io CLI for setting application secrets.
package fly
