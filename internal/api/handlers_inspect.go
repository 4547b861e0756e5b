package api

import (
	"net/http"

	"github.com/dgallion1/pptxdom/internal/deck"
	"github.com/dgallion1/pptxdom/internal/report"
)

// handleInspect outlines the charts and SmartArt of an uploaded deck.
// format is json (default), markdown or html.
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	up, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	defer r.MultipartForm.RemoveAll()

	format := r.FormValue("format")
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "markdown" && format != "html" {
		jsonError(w, "format must be json, markdown or html", http.StatusBadRequest)
		return
	}

	d, err := deck.OpenBytes(up.data, deck.WithLogger(s.log))
	if err != nil {
		jsonError(w, "invalid pptx: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}
	outline, err := report.Build(d, up.filename)
	if err != nil {
		jsonError(w, "inspect failed: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	switch format {
	case "markdown":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Write([]byte(outline.Markdown()))
	case "html":
		html, err := outline.HTML()
		if err != nil {
			jsonError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(html)
	default:
		writeJSON(w, http.StatusOK, outline)
	}
}
