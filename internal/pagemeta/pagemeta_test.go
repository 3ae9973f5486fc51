package pagemeta

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type mockTransport struct {
	body       string
	statusCode int
	err        error
}

func (m *mockTransport) Do(_ *http.Request) (*http.Response, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &http.Response{
		StatusCode: m.statusCode,
		Body:       io.NopCloser(bytes.NewBufferString(m.body)),
	}, nil
}

func TestExtract(t *testing.T) {
	article, err := os.ReadFile("../../testdata/article.html")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	tests := []struct {
		name string
		html string
		want Meta
	}{
		{
			name: "full article page",
			html: string(article),
			want: Meta{
				Title:     "Trump signe un décret sur les droits de douane - Le Monde",
				Thumbnail: "https://img.lemde.fr/2026/02/03/decret-og.jpg",
			},
		},
		{
			name: "title only",
			html: "<html><head><title>Un titre</title></head><body></body></html>",
			want: Meta{Title: "Un titre"},
		},
		{
			name: "og image only",
			html: `<html><head><meta property="og:image" content="https://example.org/i.png"></head></html>`,
			want: Meta{Thumbnail: "https://example.org/i.png"},
		},
		{
			name: "no metadata at all",
			html: "<html><body><p>rien</p></body></html>",
			want: Meta{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(strings.NewReader(tt.html))
			if err != nil {
				t.Fatalf("extract: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Extract mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFetch(t *testing.T) {
	tests := []struct {
		name      string
		transport *mockTransport
		want      Meta
		wantErr   bool
	}{
		{
			name: "successful fetch",
			transport: &mockTransport{
				body:       `<html><head><title>Titre</title><meta property="og:image" content="https://example.org/i.jpg"></head></html>`,
				statusCode: 200,
			},
			want: Meta{Title: "Titre", Thumbnail: "https://example.org/i.jpg"},
		},
		{
			name:      "http error status",
			transport: &mockTransport{body: "gone", statusCode: 410},
			wantErr:   true,
		},
		{
			name:      "network error",
			transport: &mockTransport{err: io.ErrUnexpectedEOF},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.transport, "ouinon-test/1.0")
			got, err := c.Fetch(context.Background(), "https://example.org/article")

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Fetch mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
