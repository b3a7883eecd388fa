package webserver

import (
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const layoutFile = "layout.html"

// Renderer executes page templates, each parsed together with the shared layout
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every *.html page in fsys against layout.html
func NewRenderer(fsys fs.FS, funcs template.FuncMap) (*Renderer, error) {
	files, err := fs.Glob(fsys, "*.html")
	if err != nil {
		return nil, errors.Wrap(err, "list templates")
	}
	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, file := range files {
		if file == layoutFile {
			continue
		}
		name := strings.TrimSuffix(path.Base(file), ".html")
		tpl, err := template.New(layoutFile).Funcs(funcs).ParseFS(fsys, layoutFile, file)
		if err != nil {
			return nil, errors.Wrapf(err, "parse template %s", file)
		}
		r.pages[name] = tpl
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	tpl, ok := r.pages[name]
	if !ok {
		return errors.Errorf("template %s not found", name)
	}
	return tpl.ExecuteTemplate(w, layoutFile, data)
}

// Has reports whether a page template exists
func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}
