package theme

import (
	"sort"
	"strings"
)

// Tokens maps CSS custom-property names to values.
type Tokens map[string]string

// LightTokens are applied to the document root for the light theme.
var LightTokens = Tokens{
	"--color-text":               "hsl(0deg 0% 0%)",
	"--color-background":         "hsl(0deg 0% 100%)",
	"--color-blurred-background": "hsl(0deg 0% 100% / 0.85)",
	"--color-primary":            "hsl(340deg 100% 40%)",
	"--color-decorative-100":     "hsl(200deg 10% 92%)",
	"--color-decorative-200":     "hsl(200deg 10% 85%)",
	"--color-decorative-300":     "hsl(200deg 10% 70%)",
	"--color-decorative-400":     "hsl(200deg 10% 50%)",
	"--color-decorative-500":     "hsl(200deg 10% 35%)",
	"--color-decorative-600":     "hsl(200deg 10% 25%)",
	"--color-decorative-700":     "hsl(200deg 10% 17%)",
	"--color-decorative-800":     "hsl(200deg 10% 10%)",
	"--color-decorative-900":     "hsl(200deg 10% 5%)",
	"--color-syntax-bg":          "hsl(225deg 15% 93%)",
	"--color-syntax-highlight":   "hsl(225deg 15% 85%)",
	"--color-syntax-txt":         "hsl(0deg 0% 0%)",
	"--color-syntax-comment":     "hsl(0deg 0% 40%)",
	"--color-syntax-prop":        "hsl(225deg 100% 40%)",
	"--color-syntax-bool":        "hsl(0deg 100% 40%)",
	"--color-syntax-val":         "hsl(220deg 10% 25%)",
	"--color-syntax-str":         "hsl(340deg 100% 40%)",
	"--color-syntax-name":        "hsl(340deg 100% 40%)",
	"--color-syntax-del":         "hsl(350deg 100% 30%)",
	"--color-syntax-regex":       "hsl(50deg 100% 30%)",
	"--color-syntax-fn":          "hsl(30deg 100% 40%)",
}

// DarkTokens are applied to the document root for the dark theme.
var DarkTokens = Tokens{
	"--color-text":               "hsl(0deg 0% 100%)",
	"--color-background":         "hsl(210deg 15% 6%)",
	"--color-blurred-background": "hsl(210deg 15% 6% / 0.85)",
	"--color-primary":            "hsl(50deg 100% 50%)",
	"--color-decorative-100":     "hsl(210deg 15% 10%)",
	"--color-decorative-200":     "hsl(210deg 15% 15%)",
	"--color-decorative-300":     "hsl(210deg 15% 20%)",
	"--color-decorative-400":     "hsl(210deg 15% 30%)",
	"--color-decorative-500":     "hsl(210deg 15% 45%)",
	"--color-decorative-600":     "hsl(210deg 15% 60%)",
	"--color-decorative-700":     "hsl(210deg 15% 75%)",
	"--color-decorative-800":     "hsl(210deg 15% 88%)",
	"--color-decorative-900":     "hsl(210deg 15% 95%)",
	"--color-syntax-bg":          "hsl(210deg 15% 10%)",
	"--color-syntax-highlight":   "hsl(210deg 15% 18%)",
	"--color-syntax-txt":         "hsl(0deg 0% 100%)",
	"--color-syntax-comment":     "hsl(210deg 10% 60%)",
	"--color-syntax-prop":        "hsl(200deg 100% 70%)",
	"--color-syntax-bool":        "hsl(350deg 100% 70%)",
	"--color-syntax-val":         "hsl(210deg 15% 85%)",
	"--color-syntax-str":         "hsl(50deg 100% 70%)",
	"--color-syntax-name":        "hsl(150deg 60% 60%)",
	"--color-syntax-del":         "hsl(0deg 100% 70%)",
	"--color-syntax-regex":       "hsl(50deg 100% 60%)",
	"--color-syntax-fn":          "hsl(30deg 100% 65%)",
}

// TokensFor returns a copy of the token set for t. Unrecognized themes
// get the light tokens.
func TokensFor(t Theme) Tokens {
	if t == Dark {
		return DarkTokens.Clone()
	}
	return LightTokens.Clone()
}

// Clone returns a copy of the token set.
func (t Tokens) Clone() Tokens {
	out := make(Tokens, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// Names returns the property names in sorted order.
func (t Tokens) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Style renders the tokens as an inline style declaration list,
// "--a: x; --b: y", with names sorted.
func (t Tokens) Style() string {
	var b strings.Builder
	for i, name := range t.Names() {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(t[name])
	}
	return b.String()
}

// CSS renders the tokens as a rule block for selector.
func (t Tokens) CSS(selector string) string {
	var b strings.Builder
	b.WriteString(selector)
	b.WriteString(" {\n")
	for _, name := range t.Names() {
		b.WriteString("  ")
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(t[name])
		b.WriteString(";\n")
	}
	b.WriteString("}\n")
	return b.String()
}

// ParseStyle parses an inline style declaration list produced by Style
// back into tokens. Declarations without a colon are ignored.
func ParseStyle(style string) Tokens {
	out := Tokens{}
	for _, decl := range strings.Split(style, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		out[name] = strings.TrimSpace(value)
	}
	return out
}
