package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadSources(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "one per line",
			content: "https://a.example/rss\nhttps://b.example/rss\n",
			want:    []string{"https://a.example/rss", "https://b.example/rss"},
		},
		{
			name:    "blank lines and whitespace",
			content: "\n  https://a.example/rss  \n\nhttps://b.example/rss",
			want:    []string{"https://a.example/rss", "https://b.example/rss"},
		},
		{
			name:    "empty file",
			content: "",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "feeds.txt")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("write feeds: %v", err)
			}

			got, err := LoadSources(path)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("LoadSources mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadSourcesMissingFile(t *testing.T) {
	if _, err := LoadSources(filepath.Join(t.TempDir(), "feeds.txt")); err == nil {
		t.Fatal("expected error")
	}
}
