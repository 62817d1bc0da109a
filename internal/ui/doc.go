// Package ui provides semantic text formatting for CLI output.
//
// Formatters degrade gracefully when color is unavailable, falling
// back to plain-text conventions:
//
//	ui.Code.Sprint("securemodel keys generate") // Commands and code
//	ui.Path.Sprint("model/model.enc")           // File paths
//	ui.Success.Sprint("✓")                      // Success indicators
//	ui.Error.Sprint("✗")                        // Error indicators
//
// Color output respects the NO_COLOR convention and terminal
// capability detection.
package ui
