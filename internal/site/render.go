package site

import (
	"context"
	_ "embed"
	"html/template"
	"io"
	"log/slog"

	"ouinon/internal/pagemeta"
)

//go:embed page.html
var pageHTML string

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

// Page is the data the status page template renders. All display text
// lives in the template; Page carries only values.
type Page struct {
	SiteTitle     string
	HasEventToday bool
	HasEvents     bool
	DaysSince     int
	EventTitle    string
	EventURL      string
	Thumbnail     string
	EventDate     string // day-first French form
}

// Builder assembles page data from a computed status, backfilling missing
// display metadata from the article page itself.
type Builder struct {
	title string
	meta  *pagemeta.Client
	log   *slog.Logger
}

// NewBuilder creates a Builder. meta may be nil to disable backfill.
func NewBuilder(title string, meta *pagemeta.Client, log *slog.Logger) *Builder {
	return &Builder{title: title, meta: meta, log: log}
}

// Build turns a status into template data. An event recorded without a
// title, typically a row added to the log by hand, gets one from its
// article page; failing that the bare URL serves as link text. Metadata
// fetch failures only cost the nicer link text, never the page.
func (b *Builder) Build(ctx context.Context, st Status) Page {
	p := Page{SiteTitle: b.title, HasEventToday: st.HasEventToday}
	if st.Latest == nil {
		return p
	}

	ev := *st.Latest
	p.HasEvents = true
	p.DaysSince = st.DaysSince
	p.EventURL = ev.URL
	p.EventDate = ev.Date.Format("02/01/2006")
	p.EventTitle = ev.Title
	p.Thumbnail = ev.Thumbnail

	if p.EventTitle == "" && b.meta != nil {
		meta, err := b.meta.Fetch(ctx, ev.URL)
		if err != nil {
			b.log.Warn("fetch article metadata", "url", ev.URL, "error", err)
		} else {
			p.EventTitle = meta.Title
			if p.Thumbnail == "" {
				p.Thumbnail = meta.Thumbnail
			}
		}
	}
	if p.EventTitle == "" {
		p.EventTitle = ev.URL
	}
	return p
}

// Render writes the status page HTML for p to w.
func Render(w io.Writer, p Page) error {
	return pageTemplate.Execute(w, p)
}
