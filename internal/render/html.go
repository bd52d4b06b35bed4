// Package render turns a reconciled dataset into one self-contained HTML
// document: inline stylesheet, inline search script, no external dependencies.
package render

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/myrjola/dialogtree/internal/dialog"
	"github.com/myrjola/dialogtree/internal/errors"
	"github.com/myrjola/dialogtree/internal/progress"
	"github.com/tdewolff/minify/v2"
	minifyhtml "github.com/tdewolff/minify/v2/html"
)

//go:embed assets/page.gohtml assets/styles.css assets/search.js
var assets embed.FS

// Options tune document emission.
type Options struct {
	Title  string
	Minify bool
}

type pageData struct {
	Title string
	CSS   template.CSS
	JS    template.JS
	Cards []*Card
}

// HTML renders the dataset into the output document. It is a pure function of
// the dataset: the same input renders byte-identical output. bus may be nil.
func HTML(ds *dialog.Dataset, opts Options, bus *progress.Bus) ([]byte, error) {
	tmpl, err := template.ParseFS(assets, "assets/page.gohtml")
	if err != nil {
		return nil, errors.Wrap(err, "parse page template")
	}
	css, err := assets.ReadFile("assets/styles.css")
	if err != nil {
		return nil, errors.Wrap(err, "read stylesheet")
	}
	js, err := assets.ReadFile("assets/search.js")
	if err != nil {
		return nil, errors.Wrap(err, "read search script")
	}

	title := opts.Title
	if title == "" {
		title = "Dialogues PNJ"
	}
	cards := BuildCards(ds)
	data := pageData{
		Title: title,
		CSS:   template.CSS(css),
		JS:    template.JS(js),
		Cards: cards,
	}

	var buf bytes.Buffer
	if err = tmpl.ExecuteTemplate(&buf, "page", data); err != nil {
		return nil, errors.Wrap(err, "execute page template")
	}
	bus.Publish(progress.Event{Stage: progress.StageRender, Message: "cards rendered", N: len(cards)})

	if !opts.Minify {
		return buf.Bytes(), nil
	}
	m := minify.New()
	m.AddFunc("text/html", minifyhtml.Minify)
	minified, err := m.Bytes("text/html", buf.Bytes())
	if err != nil {
		return nil, errors.Wrap(err, "minify document")
	}
	return minified, nil
}
