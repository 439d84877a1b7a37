// Package ui provides semantic text formatting for CLI output.
//
// Formatters apply consistent colors when the terminal supports them and
// fall back to plain-text decoration (backticks, quotes, parentheses) when
// color is disabled via NO_COLOR or a non-tty stream.
//
// # Usage
//
//	msg := ui.Success.Sprint("✓") + " Wrote " + ui.Path.Sprint(".env")
//
// Pick the formatter by what the text means, not by the color you want:
// Code for runnable commands, Path for files, Highlight for user values.
package ui
