package handler

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/Temutjin2k/geo-attendance/internal/domain/models"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageIndex   = "index.html"
	pageEnroll  = "enroll.html"
	pageVerify  = "verify.html"
	pageLecture = "lecture.html"
	pageAdmin   = "admin.html"
)

type (
	flashPage struct {
		Flash string
	}

	verifyPage struct {
		Flash   string
		Student models.Student
		Reading models.Reading
		Ticket  string
	}

	lecturePage struct {
		Flash   string
		Lecture models.Lecture
		Student models.Student
		Ticket  string
	}

	adminPage struct {
		Flash   string
		Lecture *models.Lecture
		Total   int
	}
)

// Pages holds one parsed template set per page, each layered over base.html.
type Pages struct {
	sets map[string]*template.Template
}

func NewPages() (*Pages, error) {
	p := &Pages{sets: make(map[string]*template.Template)}
	for _, name := range []string{pageIndex, pageEnroll, pageVerify, pageLecture, pageAdmin} {
		t, err := template.ParseFS(templateFS, "templates/base.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		p.sets[name] = t
	}
	return p, nil
}

// Render executes the page into a buffer first so a template error never leaves a
// half-written response.
func (p *Pages) Render(w http.ResponseWriter, status int, name string, data any) error {
	t, ok := p.sets[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
