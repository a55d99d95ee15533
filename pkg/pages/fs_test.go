package pages

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"index.html":             {Data: []byte("<h1>Home</h1>")},
		"about.html":             {Data: []byte("<p>About</p>")},
		"about/index.html":       {Data: []byte("<p>shadowed</p>")},
		"posts/index.html":       {Data: []byte("<ul><li>hello</li></ul>")},
		"posts/hello/index.html": {Data: []byte("<article>hello</article>")},
		"big.html":               {Data: []byte(strings.Repeat("x", MaxPageBytes+1))},
	}
}

func TestFSSourceLookup(t *testing.T) {
	src := NewFSSource(testFS())
	ctx := context.Background()

	tests := []struct {
		path string
		want string
	}{
		{"/", "<h1>Home</h1>"},
		{"/about", "<p>About</p>"},
		{"/posts", "<ul><li>hello</li></ul>"},
		{"/posts/", "<ul><li>hello</li></ul>"},
		{"/posts/hello", "<article>hello</article>"},
	}

	for _, tt := range tests {
		node, err := src.Lookup(ctx, tt.path)
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, node.Text, tt.path)
	}
}

func TestFSSourceNotFound(t *testing.T) {
	src := NewFSSource(testFS())

	for _, path := range []string{"/nope", "/posts/nope", "/../index", "/index.html"} {
		_, err := src.Lookup(context.Background(), path)
		assert.ErrorIs(t, err, ErrNotFound, path)
	}
}

func TestFSSourceTooLarge(t *testing.T) {
	src := NewFSSource(testFS())

	_, err := src.Lookup(context.Background(), "/big")
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestFSSourceCanceled(t *testing.T) {
	src := NewFSSource(testFS())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := src.Lookup(ctx, "/")
	assert.ErrorIs(t, err, context.Canceled)
}
