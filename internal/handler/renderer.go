package handler

import (
	"fmt"
	"html/template"
	"io"
	"net/http"
	"path/filepath"
	"strings"
)

// Renderer holds one isolated template set per page so pages can define
// blocks with the same name without clobbering each other.
type Renderer struct {
	templates map[string]*template.Template
}

// NewRenderer parses the storefront and admin layouts and clones them
// for every page template found under templatesDir. Pages are keyed as
// "storefront/<name>" and "admin/<name>".
func NewRenderer(templatesDir string) (*Renderer, error) {
	templates := make(map[string]*template.Template)

	base, err := template.New("base").Funcs(TemplateFuncs()).
		ParseFiles(filepath.Join(templatesDir, "layout.html"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}

	adminBase, err := template.New("admin_base").Funcs(TemplateFuncs()).
		ParseFiles(filepath.Join(templatesDir, "admin", "layout.html"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse admin layout: %w", err)
	}

	if err := parsePages(templates, base, filepath.Join(templatesDir, "storefront"), "storefront/"); err != nil {
		return nil, err
	}
	if err := parsePages(templates, adminBase, filepath.Join(templatesDir, "admin"), "admin/"); err != nil {
		return nil, err
	}

	return &Renderer{templates: templates}, nil
}

func parsePages(templates map[string]*template.Template, base *template.Template, dir, keyPrefix string) error {
	pages, err := filepath.Glob(filepath.Join(dir, "*.html"))
	if err != nil {
		return fmt.Errorf("failed to glob templates in %s: %w", dir, err)
	}

	for _, page := range pages {
		name := filepath.Base(page)
		if name == "layout.html" {
			continue
		}

		pageTmpl, err := base.Clone()
		if err != nil {
			return fmt.Errorf("failed to clone layout for %s: %w", page, err)
		}
		pageTmpl, err = pageTmpl.ParseFiles(page)
		if err != nil {
			return fmt.Errorf("failed to parse page %s: %w", page, err)
		}

		key := keyPrefix + strings.TrimSuffix(name, filepath.Ext(name))
		templates[key] = pageTmpl
	}
	return nil
}

// Render executes a named page template against its layout.
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}

	layout := "base"
	if strings.HasPrefix(name, "admin/") {
		layout = "admin_base"
	}
	return tmpl.ExecuteTemplate(w, layout, data)
}

// RenderHTTP renders a page to the response, falling back to a plain
// 500 when the template is missing or fails mid-write.
func (r *Renderer) RenderHTTP(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := r.Render(w, name, data); err != nil {
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}
