// Package render executes the HTML page templates.
//
// Every page is parsed together with layout.html into its own template set,
// so pages may reuse block names such as "title" and "content" freely.
// Requests made by htmx (HX-Request: true) get only the "content" block,
// unless htmx boosted a regular link or form (HX-Boosted: true): boosted
// requests swap the whole body and need the full layout.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-shipy/internal/validators"
	"github.com/MKhiriev/go-shipy/models"
)

const (
	layoutFile   = "layout.html"
	layoutBlock  = "layout"
	contentBlock = "content"

	HeaderHXRequest = "HX-Request"
	HeaderHXBoosted = "HX-Boosted"
)

var ErrTemplateNotFound = errors.New("template not found")

// Data is passed to every template. User is nil for anonymous requests and
// Form is never nil when it reaches a template.
type Data struct {
	User    *models.User
	Form    *validators.Form
	Version string
}

// Renderer holds one parsed template set per page.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every *.html file in fsys except the layout.
// Pages are named by their path, e.g. "users/new.html".
func New(fsys fs.FS) (*Renderer, error) {
	base, err := template.ParseFS(fsys, layoutFile)
	if err != nil {
		return nil, fmt.Errorf("parsing layout: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template)}

	err = fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path == layoutFile || !strings.HasSuffix(path, ".html") {
			return nil
		}

		page, err := base.Clone()
		if err != nil {
			return err
		}
		if _, err = page.ParseFS(fsys, path); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		r.pages[path] = page
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r, nil
}

// Has reports whether a page called name was loaded.
func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}

// Render writes page name with status. Output is buffered so a template
// error never leaves a half-written page behind.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, name string, status int, data Data) error {
	page, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}

	if data.Form == nil {
		data.Form = validators.NewForm(nil)
	}

	block := layoutBlock
	if IsPartial(req) {
		block = contentBlock
	}

	var buf bytes.Buffer
	if err := page.ExecuteTemplate(&buf, block, data); err != nil {
		return fmt.Errorf("executing %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Vary", HeaderHXRequest+", "+HeaderHXBoosted)
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// IsHTMX reports whether req was sent by htmx, boosted or not.
func IsHTMX(req *http.Request) bool {
	return req.Header.Get(HeaderHXRequest) == "true"
}

// IsPartial reports whether req asks for the "content" block only.
func IsPartial(req *http.Request) bool {
	return IsHTMX(req) && req.Header.Get(HeaderHXBoosted) != "true"
}

// FormStatus is the status for re-rendering a rejected form. htmx does not
// swap 4xx responses, so requests made by htmx get 200 and the errors stay
// visible.
func FormStatus(req *http.Request, status int) int {
	if IsHTMX(req) {
		return http.StatusOK
	}
	return status
}
