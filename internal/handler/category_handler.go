package handler

import (
	"net/http"

	"github.com/neighborly/backend/internal/costmodel"
)

// Categories handles GET /api/categories. It lists every vendor category with
// the cost form it starts from.
func Categories(w http.ResponseWriter, r *http.Request) {
	cats := costmodel.Categories()
	templates := make([]costmodel.Template, 0, len(cats))
	for _, c := range cats {
		templates = append(templates, costmodel.TemplateFor(c))
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": templates})
}

// Classify handles GET /api/categories/classify?label=... and reports which
// category a free-text label falls under.
func Classify(w http.ResponseWriter, r *http.Request) {
	label := r.URL.Query().Get("label")
	c := costmodel.Classify(label)
	writeJSON(w, http.StatusOK, map[string]any{
		"label":    label,
		"category": c,
		"template": costmodel.TemplateFor(c),
	})
}
