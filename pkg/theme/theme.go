package theme

import "net/http"

// Theme is a color theme preference.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"

	// Default is used whenever the cookie is missing or not recognized.
	Default = Light
)

// CookieName is the cookie holding the persisted theme preference.
const CookieName = "color-theme"

// All returns the recognized themes in display order.
func All() []Theme {
	return []Theme{Light, Dark}
}

// String implements fmt.Stringer.
func (t Theme) String() string {
	return string(t)
}

// Valid reports whether t is a recognized theme.
func (t Theme) Valid() bool {
	_, ok := Parse(string(t))
	return ok
}

// Parse returns the theme named by raw. Matching is exact: "Dark" or
// " dark" are not recognized.
func Parse(raw string) (Theme, bool) {
	switch Theme(raw) {
	case Light:
		return Light, true
	case Dark:
		return Dark, true
	}
	return "", false
}

// Resolve maps any raw cookie value to a theme. It never fails.
func Resolve(raw string) Theme {
	if t, ok := Parse(raw); ok {
		return t
	}
	return Default
}

// Source says where a resolved theme came from.
type Source string

const (
	// SourceCookie means the cookie held a recognized value.
	SourceCookie Source = "cookie"

	// SourceDefault means there was no cookie.
	SourceDefault Source = "default"

	// SourceFallback means the cookie was present but unrecognized.
	SourceFallback Source = "fallback"
)

// Resolution is the outcome of reading the theme from a request.
type Resolution struct {
	Theme  Theme
	Source Source
}

// FromRequest reads the theme cookie from r.
func FromRequest(r *http.Request) Resolution {
	if r == nil {
		return Resolution{Theme: Default, Source: SourceDefault}
	}

	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return Resolution{Theme: Default, Source: SourceDefault}
	}

	if t, ok := Parse(cookie.Value); ok {
		return Resolution{Theme: t, Source: SourceCookie}
	}
	return Resolution{Theme: Default, Source: SourceFallback}
}
