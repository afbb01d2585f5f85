package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin/render"
)

//go:embed templates
var templatesFS embed.FS

// page names, as passed to gin's c.HTML
const (
	PageHome               = "home.html"
	PageIllustration       = "illustration.html"
	PageError              = "error.html"
	PageLogin              = "login.html"
	PageDashboard          = "dashboard.html"
	PageAdminIllustrations = "admin_illustrations.html"
)

var pageLayouts = map[string]string{
	PageHome:               "public",
	PageIllustration:       "public",
	PageError:              "public",
	PageLogin:              "bare",
	PageDashboard:          "admin",
	PageAdminIllustrations: "admin",
}

// Renderer is a gin HTMLRender holding one template set per page, each made
// of the page file plus its layout.
type Renderer struct {
	pages map[string]pageTemplate
}

type pageTemplate struct {
	layout string
	tmpl   *template.Template
}

var _ render.HTMLRender = (*Renderer)(nil)

func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]pageTemplate, len(pageLayouts))}
	for page, layout := range pageLayouts {
		t, err := template.New(page).ParseFS(templatesFS,
			"templates/layouts/"+layout+".html",
			"templates/"+page,
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		r.pages[page] = pageTemplate{layout: layout, tmpl: t}
	}
	return r, nil
}

func MustRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Renderer) Instance(name string, data any) render.Render {
	p, ok := r.pages[name]
	if !ok {
		return missingPage{name: name}
	}
	return render.HTML{Template: p.tmpl, Name: p.layout, Data: data}
}

type missingPage struct{ name string }

func (m missingPage) Render(http.ResponseWriter) error {
	return fmt.Errorf("unknown page template %q", m.name)
}

func (m missingPage) WriteContentType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
}
