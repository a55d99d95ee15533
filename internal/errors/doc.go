// Package errors provides coded, actionable errors for the blog server
// and CLI.
//
// Each error has a code (e.g. "E100") registered with a category, a
// short message and a longer explanation. Callers add context with
// WithDetail, WithSuggestion and Wrap:
//
//	return errors.New("E100").
//	    WithDetail("No blog.json found in " + dir).
//	    WithSuggestion("Run 'blog serve' without --config to use defaults")
//
// Errors support errors.Is and errors.As through Unwrap, and two errors
// with the same code match with errors.Is.
//
// # Codes
//
//   - E100-E109: configuration
//   - E110-E119: page sources
//   - E120-E129: server listeners
//   - E130-E139: command line
package errors
