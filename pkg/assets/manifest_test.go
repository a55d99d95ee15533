package assets

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"
	"testing/fstest"
)

func TestFingerprintName(t *testing.T) {
	tests := []struct {
		name, hash, want string
	}{
		{"styles.css", "0123456789abcdef", "styles.01234567.css"},
		{"css/site.min.css", "abcd", "css/site.min.abcd.css"},
		{"LICENSE", "deadbeefcafe", "LICENSE.deadbeef"},
	}

	for _, tt := range tests {
		if got := FingerprintName(tt.name, tt.hash); got != tt.want {
			t.Errorf("FingerprintName(%q, %q) = %q, want %q", tt.name, tt.hash, got, tt.want)
		}
	}
}

func TestFingerprint(t *testing.T) {
	content := []byte("body { color: var(--color-text); }")
	fsys := fstest.MapFS{
		"styles.css": {Data: content},
	}

	m, err := Fingerprint(fsys, "styles.css")
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}

	sum := sha256.Sum256(content)
	want := "styles." + hex.EncodeToString(sum[:])[:8] + ".css"
	if got := m.Resolve("styles.css"); got != want {
		t.Errorf("Resolve = %q, want %q", got, want)
	}
	if source, ok := m.Reverse(want); !ok || source != "styles.css" {
		t.Errorf("Reverse(%q) = %q, %v", want, source, ok)
	}

	other, err := Fingerprint(fstest.MapFS{"styles.css": {Data: []byte("changed")}}, "styles.css")
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	if other.Resolve("styles.css") == want {
		t.Error("different content should produce a different fingerprint")
	}
}

func TestFingerprintMissingFile(t *testing.T) {
	_, err := Fingerprint(fstest.MapFS{}, "missing.css")
	if err == nil || !strings.Contains(err.Error(), "missing.css") {
		t.Fatalf("expected error naming the file, got %v", err)
	}
}

func TestManifestSetReplacesReverse(t *testing.T) {
	m := NewManifest()
	m.Set("a.css", "a.1.css")
	m.Set("a.css", "a.2.css")

	if _, ok := m.Reverse("a.1.css"); ok {
		t.Error("stale fingerprint should be forgotten")
	}
	if m.Len() != 1 || !m.Has("a.css") {
		t.Errorf("Len = %d, Has = %v", m.Len(), m.Has("a.css"))
	}
	if got := m.Resolve("unknown.js"); got != "unknown.js" {
		t.Errorf("unknown source should resolve to itself, got %q", got)
	}

	all := m.All()
	all["b.css"] = "x"
	if m.Has("b.css") {
		t.Error("All must return a copy")
	}
}

func TestResolvers(t *testing.T) {
	m := NewManifest()
	m.Set("styles.css", "styles.abc.css")

	if got := NewResolver(m, "/static/").Asset("styles.css"); got != "/static/styles.abc.css" {
		t.Errorf("manifest resolver = %q", got)
	}
	if got := NewPassthroughResolver("/static/").Asset("styles.css"); got != "/static/styles.css" {
		t.Errorf("passthrough resolver = %q", got)
	}
}
