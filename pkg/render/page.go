package render

import (
	"fmt"
	"io"

	"github.com/bitsbytes/blog/pkg/vdom"
)

// PageData contains all data needed to render a complete HTML document.
type PageData struct {
	// Lang is the language attribute for the html element.
	// Defaults to "en" if not specified.
	Lang string

	// RootAttrs are extra attributes written on the html element, after
	// lang. Keys are written in sorted order.
	RootAttrs map[string]string

	// Title is the document title.
	Title string

	// Description is written as <meta name="description">.
	Description string

	// Meta contains additional meta tags.
	Meta []MetaTag

	// Links contains link tags (favicon, preload, ...).
	Links []LinkTag

	// StyleSheets contains URLs of external stylesheets.
	StyleSheets []string

	// Scripts are written in the head when deferred or async, and at the
	// end of the body otherwise.
	Scripts []ScriptTag

	// Body is the content of the body element.
	Body *vdom.VNode
}

// MetaTag represents a meta element in the document head.
type MetaTag struct {
	Name     string // name attribute
	Property string // property attribute (OpenGraph)
	Content  string // content attribute
}

// LinkTag represents a link element in the document head.
type LinkTag struct {
	Rel  string
	Href string
	Type string
}

// ScriptTag represents a script element.
type ScriptTag struct {
	Src    string // src attribute
	Defer  bool   // defer attribute
	Async  bool   // async attribute
	Module bool   // type="module"
	Inline string // inline script content
}

func (s ScriptTag) inHead() bool {
	return s.Defer || s.Async
}

// RenderPage renders a complete HTML document to the given writer.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	if _, err := io.WriteString(w, "<!DOCTYPE html>\n"); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, `<html lang="%s"`, escapeAttr(lang)); err != nil {
		return err
	}
	rootAttrs := make(map[string]string, len(page.RootAttrs))
	for k, v := range page.RootAttrs {
		if k == "lang" {
			continue
		}
		rootAttrs[k] = v
	}
	if err := writeStringAttributes(w, rootAttrs); err != nil {
		return err
	}
	if _, err := io.WriteString(w, ">\n"); err != nil {
		return err
	}

	if err := r.renderHead(w, page); err != nil {
		return err
	}

	if _, err := io.WriteString(w, "<body>\n"); err != nil {
		return err
	}
	if err := r.RenderToWriter(w, page.Body); err != nil {
		return err
	}
	if page.Body != nil {
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	for _, script := range page.Scripts {
		if script.inHead() {
			continue
		}
		if err := renderScriptTag(w, script); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "</body>\n</html>\n")
	return err
}

// renderHead renders the document head section.
func (r *Renderer) renderHead(w io.Writer, page PageData) error {
	if _, err := io.WriteString(w, "<head>\n"); err != nil {
		return err
	}
	if _, err := io.WriteString(w, `  <meta charset="utf-8">`+"\n"); err != nil {
		return err
	}
	if _, err := io.WriteString(w, `  <meta name="viewport" content="width=device-width, initial-scale=1">`+"\n"); err != nil {
		return err
	}

	if page.Title != "" {
		if _, err := fmt.Fprintf(w, "  <title>%s</title>\n", escapeHTML(page.Title)); err != nil {
			return err
		}
	}
	if page.Description != "" {
		if err := renderMetaTag(w, MetaTag{Name: "description", Content: page.Description}); err != nil {
			return err
		}
	}

	for _, meta := range page.Meta {
		if err := renderMetaTag(w, meta); err != nil {
			return err
		}
	}

	for _, link := range page.Links {
		if err := renderLinkTag(w, link); err != nil {
			return err
		}
	}

	for _, href := range page.StyleSheets {
		if err := renderLinkTag(w, LinkTag{Rel: "stylesheet", Href: href}); err != nil {
			return err
		}
	}

	for _, script := range page.Scripts {
		if !script.inHead() {
			continue
		}
		if err := renderScriptTag(w, script); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "</head>\n")
	return err
}

// renderMetaTag renders a meta element.
func renderMetaTag(w io.Writer, meta MetaTag) error {
	attrs := map[string]string{}
	if meta.Name != "" {
		attrs["name"] = meta.Name
	}
	if meta.Property != "" {
		attrs["property"] = meta.Property
	}
	if meta.Content != "" {
		attrs["content"] = meta.Content
	}
	return writeTag(w, "meta", []string{"name", "property", "content"}, attrs)
}

// renderLinkTag renders a link element.
func renderLinkTag(w io.Writer, link LinkTag) error {
	attrs := map[string]string{}
	if link.Rel != "" {
		attrs["rel"] = link.Rel
	}
	if link.Href != "" {
		attrs["href"] = link.Href
	}
	if link.Type != "" {
		attrs["type"] = link.Type
	}
	return writeTag(w, "link", []string{"rel", "href", "type"}, attrs)
}

// writeTag writes an indented void head element with attributes in the
// given order.
func writeTag(w io.Writer, tag string, order []string, attrs map[string]string) error {
	if _, err := io.WriteString(w, "  <"+tag); err != nil {
		return err
	}
	for _, key := range order {
		value, ok := attrs[key]
		if !ok {
			continue
		}
		if _, err := fmt.Fprintf(w, ` %s="%s"`, key, escapeAttr(value)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, ">\n")
	return err
}

// renderScriptTag renders a script element.
func renderScriptTag(w io.Writer, script ScriptTag) error {
	if _, err := io.WriteString(w, "  <script"); err != nil {
		return err
	}

	if script.Src != "" {
		if _, err := fmt.Fprintf(w, ` src="%s"`, escapeAttr(script.Src)); err != nil {
			return err
		}
	}
	if script.Module {
		if _, err := io.WriteString(w, ` type="module"`); err != nil {
			return err
		}
	}
	if script.Defer {
		if _, err := io.WriteString(w, " defer"); err != nil {
			return err
		}
	}
	if script.Async {
		if _, err := io.WriteString(w, " async"); err != nil {
			return err
		}
	}

	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}
	if script.Inline != "" {
		if _, err := io.WriteString(w, script.Inline); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</script>\n")
	return err
}
