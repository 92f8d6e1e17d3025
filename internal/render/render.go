package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/microcosm-cc/bluemonday"

	"github.com/Belphemur/ShowBrowser/internal/metrics"
)

// View names accepted by Render.
const (
	ViewPage     = "page"
	ViewShows    = "shows"
	ViewEpisodes = "episodes"
	ViewBanner   = "banner"
)

// MissingSummaryHTML stands in for a show summary the API returned as null.
const MissingSummaryHTML = "<p>Summary not available.</p>"

//go:embed templates/*.gohtml
var templatesFS embed.FS

// Renderer turns shows and episodes into the page regions the browser displays.
// It is safe for concurrent use.
type Renderer struct {
	templates *template.Template
	policy    *bluemonday.Policy
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	r := &Renderer{policy: bluemonday.UGCPolicy()}

	tmpl, err := template.New("views").Funcs(template.FuncMap{
		"summary":     r.summaryHTML,
		"episodesURL": EpisodesURL,
	}).ParseFS(templatesFS, "templates/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r.templates = tmpl
	return r, nil
}

// MustNew is New for package initialisation and tests.
func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

// summaryHTML sanitises the API-provided summary markup, or returns the placeholder when there is none.
func (r *Renderer) summaryHTML(summary *string) template.HTML {
	if summary == nil {
		return template.HTML(MissingSummaryHTML)
	}
	return template.HTML(r.policy.Sanitize(*summary))
}

// Page renders the full document: search form, shows container, episodes modal and error banner.
func (r *Renderer) Page(w io.Writer, data PageData) error {
	return r.Render(w, ViewPage, data)
}

// ShowsList renders the shows container holding one card per show. No shows
// yield an empty container.
func (r *Renderer) ShowsList(w io.Writer, view ShowsView) error {
	return r.Render(w, ViewShows, view)
}

// EpisodesModal renders the episodes modal. A visible modal lists one item per
// episode, or a single notice when there are none.
func (r *Renderer) EpisodesModal(w io.Writer, view EpisodesView) error {
	return r.Render(w, ViewEpisodes, view)
}

// Banner renders the error banner on its own.
func (r *Renderer) Banner(w io.Writer, message string) error {
	return r.Render(w, ViewBanner, message)
}

// Render executes the named view. It renders into a buffer first so a failing
// template never leaves partial output in w.
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		metrics.ViewRendersTotal.WithLabelValues(name, "error").Inc()
		return fmt.Errorf("render %s: %w", name, err)
	}
	metrics.ViewRendersTotal.WithLabelValues(name, "success").Inc()

	_, err := buf.WriteTo(w)
	return err
}
