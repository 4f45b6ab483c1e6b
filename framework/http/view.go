package http

import (
	"html/template"
	"net/http"
	"path/filepath"
	"strings"
)

// ViewEngine renders html/template files from a directory.
type ViewEngine struct {
	dir    string
	ext    string
	layout string
	funcs  template.FuncMap
}

// NewViewEngine creates a ViewEngine.
// dir is the templates directory (e.g. "./views"), ext is the file extension
// (e.g. ".html") and layout the base template name ("" for none).
func NewViewEngine(dir, ext, layout string) *ViewEngine {
	return &ViewEngine{
		dir:    dir,
		ext:    ext,
		layout: layout,
		funcs: template.FuncMap{
			"join":  strings.Join,
			"lower": strings.ToLower,
		},
	}
}

// Funcs adds template functions. Call before the first render.
func (ve *ViewEngine) Funcs(fm template.FuncMap) *ViewEngine {
	for k, v := range fm {
		ve.funcs[k] = v
	}
	return ve
}

// View renders a template with data, wrapped in the layout when one is set.
//
//	engine.View(res.Raw(), http.StatusOK, "index", page)
func (ve *ViewEngine) View(w http.ResponseWriter, status int, name string, data any) error {
	files := []string{filepath.Join(ve.dir, name+ve.ext)}
	entry := filepath.Base(files[0])
	if ve.layout != "" {
		layoutPath := filepath.Join(ve.dir, ve.layout+ve.ext)
		files = append([]string{layoutPath}, files...)
		entry = filepath.Base(layoutPath)
	}

	tmpl, err := template.New(entry).Funcs(ve.funcs).ParseFiles(files...)
	if err != nil {
		http.Error(w, "Template not found: "+name, http.StatusInternalServerError)
		return err
	}

	// render into a buffer so a failing template never leaves half a page
	var buf strings.Builder
	if err := tmpl.ExecuteTemplate(&buf, entry, data); err != nil {
		http.Error(w, "Template render error", http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = w.Write([]byte(buf.String()))
	return err
}
