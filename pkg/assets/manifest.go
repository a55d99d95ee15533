// Package assets fingerprints static files and resolves their public URLs.
//
// A Manifest maps a source name to a fingerprinted name that embeds a
// content hash:
//
//	{
//	  "styles.css": "styles.3f9a1c0b.css"
//	}
//
// Fingerprinted URLs can be served with an immutable cache policy because
// any change to the file changes its URL.
//
//	manifest, _ := assets.Fingerprint(web.Static(), "styles.css")
//	resolver := assets.NewResolver(manifest, "/static/")
//	resolver.Asset("styles.css") // "/static/styles.3f9a1c0b.css"
package assets

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"
)

// hashLen is the number of hex characters of the content hash kept in
// fingerprinted names.
const hashLen = 8

// Manifest holds the mapping from source asset paths to fingerprinted paths.
// It is safe for concurrent use.
type Manifest struct {
	entries map[string]string
	reverse map[string]string
	mu      sync.RWMutex
}

// NewManifest creates an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{
		entries: make(map[string]string),
		reverse: make(map[string]string),
	}
}

// Fingerprint hashes each named file in fsys and records its
// fingerprinted name.
func Fingerprint(fsys fs.FS, names ...string) (*Manifest, error) {
	m := NewManifest()
	for _, name := range names {
		sum, err := hashFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("fingerprint %s: %w", name, err)
		}
		m.Set(name, FingerprintName(name, sum))
	}
	return m, nil
}

// FingerprintName inserts hash before the extension of name:
// "css/styles.css" -> "css/styles.<hash>.css".
func FingerprintName(name, hash string) string {
	if len(hash) > hashLen {
		hash = hash[:hashLen]
	}
	dir, file := path.Split(name)
	ext := path.Ext(file)
	base := strings.TrimSuffix(file, ext)
	return dir + base + "." + hash + ext
}

func hashFile(fsys fs.FS, name string) (string, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Resolve returns the fingerprinted path for the given source path.
// If not found, returns the original path unchanged.
func (m *Manifest) Resolve(source string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if resolved, ok := m.entries[source]; ok {
		return resolved
	}
	return source
}

// Reverse returns the source path for a fingerprinted path.
func (m *Manifest) Reverse(resolved string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	source, ok := m.reverse[resolved]
	return source, ok
}

// Has returns true if the manifest contains the given source path.
func (m *Manifest) Has(source string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.entries[source]
	return ok
}

// Set adds or updates an entry in the manifest.
func (m *Manifest) Set(source, resolved string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if old, ok := m.entries[source]; ok {
		delete(m.reverse, old)
	}
	m.entries[source] = resolved
	m.reverse[resolved] = source
}

// Len returns the number of entries in the manifest.
func (m *Manifest) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.entries)
}

// All returns a copy of all manifest entries.
func (m *Manifest) All() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]string, len(m.entries))
	for k, v := range m.entries {
		result[k] = v
	}
	return result
}
