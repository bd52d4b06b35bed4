// Package inspect parses a generated dialog document back into counts, for
// sanity-checking an artifact without re-running the pipeline.
package inspect

import (
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
	"github.com/myrjola/dialogtree/internal/errors"
)

// Report holds the node counts of one generated document.
type Report struct {
	Title      string
	Cards      int
	Dialogs    int
	Messages   int
	Replies    int
	References int
	NullValues int
}

// Document parses a generated document and counts its nodes.
func Document(r io.Reader) (Report, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Report{}, errors.Wrap(err, "parse document")
	}
	report := Report{
		Title:      doc.Find("title").First().Text(),
		Cards:      doc.Find(".npc-card").Length(),
		Dialogs:    doc.Find(".dialog").Length(),
		Messages:   doc.Find(".message").Length(),
		Replies:    doc.Find(".reply").Length(),
		References: doc.Find(".ref-marker").Length(),
		NullValues: doc.Find(".null-value").Length(),
	}
	if report.Cards == 0 && doc.Find("#cards").Length() == 0 {
		return report, errors.New("not a dialog document: no card container found")
	}
	return report, nil
}

// WriteText prints the report.
func (r Report) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "title\t%s\ncards\t%d\ndialogs\t%d\nmessages\t%d\nreplies\t%d\nreferences\t%d\nnull values\t%d\n",
		r.Title, r.Cards, r.Dialogs, r.Messages, r.Replies, r.References, r.NullValues)
	if err != nil {
		return errors.Wrap(err, "write report")
	}
	return nil
}
