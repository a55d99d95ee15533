package theme

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTokenSetsShareKeys(t *testing.T) {
	if diff := cmp.Diff(LightTokens.Names(), DarkTokens.Names()); diff != "" {
		t.Errorf("light and dark token names differ (-light +dark):\n%s", diff)
	}
	for _, name := range LightTokens.Names() {
		if !strings.HasPrefix(name, "--") {
			t.Errorf("token %q is not a custom property", name)
		}
	}
}

func TestTokensFor(t *testing.T) {
	if diff := cmp.Diff(LightTokens, TokensFor(Light)); diff != "" {
		t.Errorf("TokensFor(light) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(DarkTokens, TokensFor(Dark)); diff != "" {
		t.Errorf("TokensFor(dark) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(LightTokens, TokensFor(Theme("purple"))); diff != "" {
		t.Errorf("TokensFor(purple) mismatch (-want +got):\n%s", diff)
	}
}

func TestTokensForReturnsCopy(t *testing.T) {
	got := TokensFor(Dark)
	got["--color-text"] = "red"
	if DarkTokens["--color-text"] == "red" {
		t.Fatal("TokensFor must not expose the shared token set")
	}
}

func TestStyle(t *testing.T) {
	tokens := Tokens{"--b": "2", "--a": "1"}
	if got, want := tokens.Style(), "--a: 1; --b: 2"; got != want {
		t.Errorf("Style() = %q, want %q", got, want)
	}
	if got := (Tokens{}).Style(); got != "" {
		t.Errorf("empty Style() = %q", got)
	}
}

func TestStyleRoundTrip(t *testing.T) {
	for _, th := range All() {
		tokens := TokensFor(th)
		if diff := cmp.Diff(tokens, ParseStyle(tokens.Style())); diff != "" {
			t.Errorf("%s: ParseStyle(Style()) mismatch (-want +got):\n%s", th, diff)
		}
	}
}

func TestParseStyleIgnoresJunk(t *testing.T) {
	got := ParseStyle("--a: 1;; junk; : x; --b:2 ")
	want := Tokens{"--a": "1", "--b": "2"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseStyle mismatch (-want +got):\n%s", diff)
	}
}

func TestCSS(t *testing.T) {
	got := Tokens{"--b": "2", "--a": "1"}.CSS(`:root[data-color-theme="dark"]`)
	want := ":root[data-color-theme=\"dark\"] {\n  --a: 1;\n  --b: 2;\n}\n"
	if got != want {
		t.Errorf("CSS() = %q, want %q", got, want)
	}
}
