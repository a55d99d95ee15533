package layout

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/bitsbytes/blog/pkg/pages"
	"github.com/bitsbytes/blog/pkg/vdom"
)

// NotFoundPage is rendered inside the shell when no page exists.
func NotFoundPage() *vdom.VNode {
	return vdom.Section(vdom.Class("not-found"),
		vdom.H1(vdom.Text("Page not found")),
		vdom.P(vdom.Text("The page you are looking for does not exist.")),
		vdom.P(vdom.A(vdom.Href("/"), vdom.Text("Back to the home page"))),
	)
}

// Handler serves pages from src through the root layout.
func (l *RootLayout) Handler(src pages.Source) http.Handler {
	return &pageHandler{layout: l, source: src}
}

type pageHandler struct {
	layout *RootLayout
	source pages.Source
}

func (h *pageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	log := h.layout.logger.With("path", r.URL.Path)

	status := http.StatusOK
	child, err := h.source.Lookup(r.Context(), r.URL.Path)
	switch {
	case errors.Is(err, pages.ErrNotFound):
		status = http.StatusNotFound
		child = NotFoundPage()
	case err != nil:
		log.Error("page lookup failed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	body, err := h.layout.RenderBytes(r, child)
	if err != nil {
		log.Error("failed to render page", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	header := w.Header()
	header.Set("Content-Type", "text/html; charset=utf-8")
	header.Set("Content-Length", strconv.Itoa(len(body)))
	header.Add("Vary", "Cookie")
	w.WriteHeader(status)

	if r.Method == http.MethodHead {
		return
	}
	if _, err := w.Write(body); err != nil {
		log.Debug("client went away", "error", err)
	}
}
