// Package fetcher handles RSS feed downloading, parsing, and entry
// extraction.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mmcdole/gofeed"

	"ouinon/internal/model"
)

// HTTPClient is the interface for performing HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Fetcher downloads and parses RSS and Atom feeds.
type Fetcher struct {
	client    HTTPClient
	userAgent string
}

// New creates a Fetcher with the given HTTP client. Some publishers refuse
// requests without a browser-like user agent, so the caller provides one.
func New(client HTTPClient, userAgent string) *Fetcher {
	return &Fetcher{client: client, userAgent: userAgent}
}

// Fetch downloads and parses the feed at url.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*gofeed.Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http get: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 5*1024*1024))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	parser := gofeed.NewParser()
	feed, err := parser.ParseString(string(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	return feed, nil
}

// Entries converts parsed feed items into entries. Items without a link
// are dropped: the link is both the event URL and the dedup key, so an
// entry without one cannot be recorded.
func Entries(feed *gofeed.Feed) []model.Entry {
	entries := make([]model.Entry, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil || strings.TrimSpace(item.Link) == "" {
			continue
		}
		e := model.Entry{
			Title:     strings.TrimSpace(item.Title),
			Summary:   strings.TrimSpace(item.Description),
			Link:      strings.TrimSpace(item.Link),
			Thumbnail: itemThumbnail(item),
		}
		switch {
		case item.PublishedParsed != nil:
			e.Published = *item.PublishedParsed
		case item.UpdatedParsed != nil:
			e.Published = *item.UpdatedParsed
		}
		entries = append(entries, e)
	}
	return entries
}

// itemThumbnail picks a preview image: the item image when present, else
// the first image enclosure.
func itemThumbnail(item *gofeed.Item) string {
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}
	for _, enc := range item.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") && enc.URL != "" {
			return enc.URL
		}
	}
	return ""
}
