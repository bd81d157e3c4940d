package httpapi

import (
	_ "embed"
	"html/template"
	"net/http"
)

const openAPIPath = "/openapi.yaml"

//go:embed openapi.yaml
var openAPISpec []byte

var swaggerPageTemplate = template.Must(template.ParseFS(templateFS, "templates/swagger.html"))

type swaggerPageData struct {
	Title   string
	SpecURL string
}

func (h *Handler) OpenAPI(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.OpenAPI")
	defer span.End()

	w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(openAPISpec); err != nil {
		h.logger.WarnContext(ctx, "write openapi document failed", "error", err)
	}
}

func (h *Handler) SwaggerUI(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SwaggerUI")
	defer span.End()

	h.renderHTML(ctx, w, http.StatusOK, swaggerPageTemplate, swaggerPageData{
		Title:   "Draft League Dashboard API Docs",
		SpecURL: openAPIPath,
	})
}
