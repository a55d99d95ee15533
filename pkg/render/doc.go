// Package render writes vdom trees and complete HTML documents.
//
// The render package converts VNode trees into HTML, handling:
//
//   - Text and attribute escaping
//   - Void elements (meta, link, br, ...)
//   - Boolean attributes (hidden, defer, ...)
//   - Deterministic attribute ordering
//   - Full documents with DOCTYPE, root attributes, head and body
//
// # Basic Usage
//
//	renderer := render.NewRenderer(render.RendererConfig{})
//	html, err := renderer.RenderToString(node)
//
// # Full Page Rendering
//
//	page := render.PageData{
//	    Lang:        "en",
//	    RootAttrs:   map[string]string{"data-color-theme": "dark"},
//	    Title:       "Bits & Bytes",
//	    Description: "A wonderful blog about JavaScript",
//	    Body:        vdom.Main(children...),
//	}
//	err := renderer.RenderPage(w, page)
//
// # Security
//
// Text content and attribute values are escaped. Raw nodes are written
// verbatim and must only carry trusted content.
package render
