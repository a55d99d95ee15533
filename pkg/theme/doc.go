// Package theme resolves the reader's color theme and holds the style
// tokens for each theme.
//
// The preference is persisted in the color-theme cookie by the browser.
// This package only reads it: a recognized value selects that theme and
// anything else, including a missing cookie, selects Light.
//
//	res := theme.FromRequest(r)
//	style := theme.TokensFor(res.Theme).Style()
package theme
