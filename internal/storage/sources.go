package storage

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadSources reads the feed source list: one feed URL per line, in order.
// Blank lines are skipped and surrounding whitespace is trimmed. Unlike the
// event log, a missing file is an error, because an ingester without
// sources has nothing to do.
func LoadSources(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open feed list: %w", err)
	}
	defer func() { _ = f.Close() }()

	var urls []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		urls = append(urls, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read feed list: %w", err)
	}
	return urls, nil
}
