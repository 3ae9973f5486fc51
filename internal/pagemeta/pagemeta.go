// Package pagemeta extracts display metadata from article pages.
//
// The site builder uses it to backfill titles and preview images for
// events recorded without them, typically rows added to the log by hand.
package pagemeta

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const maxPageBytes = 1 * 1024 * 1024

// Meta holds the metadata extracted from one page.
type Meta struct {
	Title     string
	Thumbnail string
}

// HTTPClient is the interface for performing HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client fetches article pages and extracts their metadata.
type Client struct {
	client    HTTPClient
	userAgent string
}

// New creates a Client with the given HTTP client.
func New(client HTTPClient, userAgent string) *Client {
	return &Client{client: client, userAgent: userAgent}
}

// Fetch downloads url and extracts its title and preview image. Callers
// treat any error as "no metadata available" and keep going.
func (c *Client) Fetch(ctx context.Context, url string) (Meta, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Meta{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return Meta{}, fmt.Errorf("http get: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Meta{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return Extract(io.LimitReader(resp.Body, maxPageBytes))
}

// Extract parses HTML and pulls the document title and the og:image URL.
// Whitespace runs inside the title are collapsed to single spaces.
func Extract(r io.Reader) (Meta, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Meta{}, fmt.Errorf("parse html: %w", err)
	}

	m := Meta{
		Title: strings.Join(strings.Fields(doc.Find("title").First().Text()), " "),
	}
	if v, ok := doc.Find(`meta[property="og:image"]`).First().Attr("content"); ok {
		m.Thumbnail = strings.TrimSpace(v)
	}
	return m, nil
}
