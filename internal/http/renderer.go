package httpx

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// TemplateRenderer renders the embedded HTML templates for UI responses.
// Pages are buffered before writing so a template failure can still produce
// a clean error page instead of a half-written body.
type TemplateRenderer struct {
	t      *template.Template
	logger *slog.Logger
}

// NewTemplateRenderer parses the embedded template set.
func NewTemplateRenderer(logger *slog.Logger) (*TemplateRenderer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	t, err := template.New("root").Funcs(template.FuncMap{
		"datetime": func(ts time.Time) string {
			if ts.IsZero() {
				return "-"
			}
			return ts.Format("2006-01-02 15:04")
		},
	}).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		logger.Error("template parsing failed", slog.Any("error", err))
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &TemplateRenderer{t: t, logger: logger}, nil
}

// Render executes the named page template with the given data.
func (r *TemplateRenderer) Render(w http.ResponseWriter, name string, data any) error {
	return r.render(w, name, data, http.StatusOK)
}

// RenderStatus executes the named page template with an explicit status code.
func (r *TemplateRenderer) RenderStatus(w http.ResponseWriter, name string, data any, status int) error {
	return r.render(w, name, data, status)
}

func (r *TemplateRenderer) render(w http.ResponseWriter, name string, data any, status int) error {
	var buf bytes.Buffer
	if err := r.t.ExecuteTemplate(&buf, name, data); err != nil {
		r.logger.Error("template execution failed",
			slog.String("template", name),
			slog.Any("error", err),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		r.logger.Error("failed to write rendered template",
			slog.String("template", name),
			slog.Any("error", err),
		)
		return err
	}
	return nil
}
