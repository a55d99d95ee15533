package pages

import (
	"context"
	"errors"
	"strings"

	"github.com/bitsbytes/blog/pkg/vdom"
)

// ErrNotFound is returned when no fragment exists for a path.
var ErrNotFound = errors.New("page not found")

// MaxPageBytes bounds the size of a single fragment.
const MaxPageBytes = 4 << 20

// ErrTooLarge is returned when a fragment exceeds MaxPageBytes.
var ErrTooLarge = errors.New("page exceeds size limit")

// Source looks up the fragment for a request path.
type Source interface {
	Lookup(ctx context.Context, urlPath string) (*vdom.VNode, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, urlPath string) (*vdom.VNode, error)

// Lookup implements Source.
func (f SourceFunc) Lookup(ctx context.Context, urlPath string) (*vdom.VNode, error) {
	return f(ctx, urlPath)
}

// Keys returns the storage keys to try, in order, for a request path.
// It returns false for paths that can never name a page: traversal
// attempts, empty or dot segments, backslashes, NUL bytes and paths whose
// last segment has a file extension.
func Keys(urlPath string) ([]string, bool) {
	if urlPath == "" {
		urlPath = "/"
	}
	if !strings.HasPrefix(urlPath, "/") {
		return nil, false
	}
	if strings.IndexByte(urlPath, 0) != -1 || strings.Contains(urlPath, "\\") {
		return nil, false
	}

	rel := strings.TrimPrefix(urlPath, "/")
	if rel == "" {
		return []string{"index.html"}, true
	}

	dirOnly := strings.HasSuffix(rel, "/")
	rel = strings.TrimSuffix(rel, "/")

	segments := strings.Split(rel, "/")
	for _, seg := range segments {
		if seg == "" || seg == "." || seg == ".." || strings.HasPrefix(seg, ".") {
			return nil, false
		}
	}
	if strings.Contains(segments[len(segments)-1], ".") {
		return nil, false
	}

	if dirOnly {
		return []string{rel + "/index.html"}, true
	}
	return []string{rel + ".html", rel + "/index.html"}, true
}

// Static is an in-memory Source keyed by storage key ("index.html",
// "about.html", ...).
type Static map[string]string

// Lookup implements Source.
func (s Static) Lookup(ctx context.Context, urlPath string) (*vdom.VNode, error) {
	keys, ok := Keys(urlPath)
	if !ok {
		return nil, ErrNotFound
	}
	for _, key := range keys {
		if html, ok := s[key]; ok {
			return vdom.Raw(html), nil
		}
	}
	return nil, ErrNotFound
}
