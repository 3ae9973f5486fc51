// Package ingest fetches the watched feeds and appends qualifying events
// to the event log.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"

	"ouinon/internal/classifier"
	"ouinon/internal/fetcher"
	"ouinon/internal/model"
	"ouinon/internal/storage"
)

const maxConcurrentFetches = 4

// Stats summarizes one ingestion pass.
type Stats struct {
	Feeds    int // sources processed
	Failed   int // sources that could not be fetched or parsed
	Entries  int // feed entries seen across successful fetches
	Matched  int // new entries the classifier accepted
	Appended int // events written to the log
	Skipped  int // entries whose URL was already recorded
}

// Ingester polls the configured feeds and appends accepted events.
type Ingester struct {
	feedsPath string
	storePath string
	fetcher   *fetcher.Fetcher
	cls       *classifier.Classifier
	log       *slog.Logger
	now       func() time.Time
}

// New creates an Ingester reading sources from feedsPath and appending to
// the event log at storePath.
func New(feedsPath, storePath string, f *fetcher.Fetcher, cls *classifier.Classifier, log *slog.Logger) *Ingester {
	return &Ingester{
		feedsPath: feedsPath,
		storePath: storePath,
		fetcher:   f,
		cls:       cls,
		log:       log,
		now:       time.Now,
	}
}

// Run executes one ingestion pass: read the source list, load the event
// log, fetch every feed, and append accepted new events. A pass is
// idempotent, URLs already in the log are skipped, so rerunning after a
// partial failure only adds what is missing. Both files are re-read on
// every pass, which makes edits between passes take effect in loop mode.
func (ing *Ingester) Run(ctx context.Context) (Stats, error) {
	sources, err := storage.LoadSources(ing.feedsPath)
	if err != nil {
		return Stats{}, fmt.Errorf("load feed list: %w", err)
	}
	eventLog, err := storage.Open(ing.storePath)
	if err != nil {
		return Stats{}, fmt.Errorf("open event log: %w", err)
	}

	stats := Stats{Feeds: len(sources)}
	results := ing.fetchAll(ctx, sources)

	pending := make(map[string]struct{})
	var accepted []model.Event
	for i, res := range results {
		if res.err != nil {
			stats.Failed++
			ing.log.Error("fetch feed", "url", sources[i], "error", res.err)
			continue
		}

		entries := fetcher.Entries(res.feed)
		stats.Entries += len(entries)
		ing.log.Debug("checking feed", "url", sources[i], "entries", len(entries))

		for _, entry := range entries {
			if !eligible(entry.Link) {
				continue
			}
			if eventLog.ContainsURL(entry.Link) {
				stats.Skipped++
				continue
			}
			if _, ok := pending[entry.Link]; ok {
				stats.Skipped++
				continue
			}
			text := entry.Title
			if text == "" {
				text = entry.Summary
			}
			if !ing.cls.Match(text) {
				continue
			}
			stats.Matched++

			thumb := entry.Thumbnail
			if strings.ContainsAny(thumb, "|\n\r") {
				thumb = ""
			}
			accepted = append(accepted, model.Event{
				Date:      fetcher.EntryDate(entry, ing.now()),
				URL:       entry.Link,
				Title:     sanitizeTitle(entry.Title),
				Thumbnail: thumb,
			})
			pending[entry.Link] = struct{}{}
		}
	}

	// Deterministic log order no matter which feed answered first.
	slices.SortFunc(accepted, func(a, b model.Event) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return strings.Compare(a.URL, b.URL)
	})

	for _, ev := range accepted {
		if err := eventLog.Append(ev); err != nil {
			return stats, fmt.Errorf("append event %s: %w", ev.URL, err)
		}
		stats.Appended++
		ing.log.Info("recorded event",
			"date", ev.Date.Format(storage.DateLayout), "url", ev.URL)
	}

	ing.log.Info("ingest complete",
		"feeds", stats.Feeds, "failed", stats.Failed, "entries", stats.Entries,
		"matched", stats.Matched, "appended", stats.Appended, "skipped", stats.Skipped)
	return stats, nil
}

type fetchResult struct {
	feed *gofeed.Feed
	err  error
}

// fetchAll downloads every source concurrently, returning results in
// source order. Failures stay per source; merging happens sequentially
// afterwards.
func (ing *Ingester) fetchAll(ctx context.Context, sources []string) []fetchResult {
	results := make([]fetchResult, len(sources))
	var g errgroup.Group
	g.SetLimit(maxConcurrentFetches)
	for i, src := range sources {
		g.Go(func() error {
			feed, err := ing.fetcher.Fetch(ctx, src)
			results[i] = fetchResult{feed: feed, err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// eligible reports whether link can serve as an event URL: http or https,
// and representable in the pipe-delimited log.
func eligible(link string) bool {
	if strings.ContainsAny(link, "|\n\r") {
		return false
	}
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// sanitizeTitle makes a feed title safe for the log format.
func sanitizeTitle(title string) string {
	if !strings.ContainsAny(title, "|\n\r") {
		return title
	}
	title = strings.NewReplacer("|", " ", "\n", " ", "\r", " ").Replace(title)
	return strings.Join(strings.Fields(title), " ")
}
