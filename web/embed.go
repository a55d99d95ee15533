// Package web holds the static files compiled into the blog binary.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var embedded embed.FS

// StyleSheet is the global stylesheet linked from every page.
const StyleSheet = "styles.css"

// Static returns the embedded static directory.
func Static() fs.FS {
	sub, err := fs.Sub(embedded, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
