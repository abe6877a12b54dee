package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"bankweb/src/views"

	"go.uber.org/zap"
)

// render executes the page into a buffer first so a template error never
// leaves a half-written page behind.
func render(w http.ResponseWriter, renderer *views.Renderer, page string, data any, logger *zap.Logger) {
	var buf bytes.Buffer
	if err := renderer.Render(&buf, page, data); err != nil {
		logger.Error("Failed to render page", zap.String("page", page), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

func writeJSON(w http.ResponseWriter, v any, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", zap.Error(err))
	}
}

func writeText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(text))
}
