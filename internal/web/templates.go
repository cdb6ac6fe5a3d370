package web

import (
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"github.com/Goga-Rid/pitza/internal/backend"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var funcMap = template.FuncMap{
	"rub": func(v float64) string {
		return fmt.Sprintf("%.0f ₽", v)
	},
}

func parseTemplates() *template.Template {
	return template.Must(template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/*.html"))
}

// page is the data every template receives: the shared session/cart header
// state plus a page-specific payload.
type page struct {
	Title         string
	User          *backend.User
	Authenticated bool
	CartCount     int
	Error         string
	Flash         string
	Data          any
}

func (h *handlers) newPage(title string) page {
	p := page{
		Title:         title,
		User:          h.Session.User(),
		Authenticated: h.Session.IsAuthenticated(),
	}
	p.CartCount = h.Cart.Aggregate().Count
	return p
}

func (h *handlers) render(w http.ResponseWriter, status int, name string, p page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.templates.ExecuteTemplate(w, name, p); err != nil {
		log.Printf("render %s error: %v", name, err)
	}
}
