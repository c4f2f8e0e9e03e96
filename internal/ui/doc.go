// Package ui provides semantic text formatting for CLI output.
//
// Formatters render appropriately based on terminal capabilities: when
// colors are available, content is colorized; when NO_COLOR is set or the
// terminal doesn't support colors, text-based decorations (backticks,
// quotes) are used instead.
//
//	ui.Code.Sprint("doggo keygen personal") // commands
//	ui.Path.Sprint("~/secrets.doggo")       // file paths
//	ui.Success.Sprint("✓")                  // success indicators
//	ui.Error.Sprint("✗")                    // error indicators
//	ui.Info.Sprint("→")                     // hints
//	ui.Highlight.Sprint("email work")       // user values (tags, key ids)
package ui
