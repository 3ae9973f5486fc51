// Package storage reads and writes the flat files the tools share: the
// append-only event log and the feed source list.
package storage

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"ouinon/internal/model"
)

// DateLayout is the on-disk date format of event log lines.
const DateLayout = "2006-01-02"

const fieldSep = "|"

// ParseError reports an event log line that cannot be parsed.
type ParseError struct {
	Line   int // 1-based
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// Log is the append-only store of recorded events. Each line holds one
// event as pipe-separated fields:
//
//	YYYY-MM-DD|URL|Title|ThumbnailURL
//
// Title and ThumbnailURL are optional trailing fields. The format has no
// escaping, so a separator can never appear inside a field; Append enforces
// that. Existing lines are never rewritten.
type Log struct {
	path   string
	events []model.Event
	urls   map[string]struct{}
}

// Open loads the event log at path. A missing file yields an empty log.
// Blank lines are skipped; any other line that does not parse fails the
// whole load with a *ParseError, so a corrupted log is caught at startup
// instead of silently shrinking history.
func Open(path string) (*Log, error) {
	l := &Log{path: path, urls: make(map[string]struct{})}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open event log: %w", err)
	}
	defer func() { _ = f.Close() }()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSuffix(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		ev, err := parseLine(line)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Text: line, Reason: err.Error()}
		}
		l.events = append(l.events, ev)
		l.urls[ev.URL] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read event log: %w", err)
	}
	return l, nil
}

// Events returns the loaded events in file order.
func (l *Log) Events() []model.Event {
	out := make([]model.Event, len(l.events))
	copy(out, l.events)
	return out
}

// Len returns the number of loaded events.
func (l *Log) Len() int {
	return len(l.events)
}

// ContainsURL reports whether an event with this URL is already recorded,
// either on disk or appended during this session.
func (l *Log) ContainsURL(url string) bool {
	_, ok := l.urls[url]
	return ok
}

// Append writes one event as a new line at the end of the log and records
// its URL in the dedup index. When the file does not end in a newline, for
// instance after a manual edit, one is written first so the new record
// cannot merge into the previous line.
func (l *Log) Append(e model.Event) error {
	if err := validate(e); err != nil {
		return fmt.Errorf("append event: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("open event log for append: %w", err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat event log: %w", err)
	}
	prefix := ""
	if size := info.Size(); size > 0 {
		last := make([]byte, 1)
		if _, err := f.ReadAt(last, size-1); err != nil {
			return fmt.Errorf("read event log tail: %w", err)
		}
		if last[0] != '\n' {
			prefix = "\n"
		}
	}

	if _, err := f.WriteString(prefix + formatLine(e) + "\n"); err != nil {
		return fmt.Errorf("write event log: %w", err)
	}

	l.events = append(l.events, e)
	l.urls[e.URL] = struct{}{}
	return nil
}

func parseLine(line string) (model.Event, error) {
	parts := strings.Split(line, fieldSep)
	if len(parts) < 2 {
		return model.Event{}, errors.New("want at least date|url")
	}
	if len(parts) > 4 {
		return model.Event{}, errors.New("too many fields")
	}
	if parts[len(parts)-1] == "" {
		return model.Event{}, errors.New("empty trailing field")
	}
	date, err := time.Parse(DateLayout, parts[0])
	if err != nil {
		return model.Event{}, fmt.Errorf("invalid date %q", parts[0])
	}
	if parts[1] == "" {
		return model.Event{}, errors.New("empty url")
	}
	ev := model.Event{Date: date, URL: parts[1]}
	if len(parts) > 2 {
		ev.Title = parts[2]
	}
	if len(parts) > 3 {
		ev.Thumbnail = parts[3]
	}
	return ev, nil
}

// formatLine renders the shortest line that round-trips: optional fields are
// written only when set, except that an empty title is kept when a thumbnail
// follows it.
func formatLine(e model.Event) string {
	fields := []string{e.Date.Format(DateLayout), e.URL}
	switch {
	case e.Thumbnail != "":
		fields = append(fields, e.Title, e.Thumbnail)
	case e.Title != "":
		fields = append(fields, e.Title)
	}
	return strings.Join(fields, fieldSep)
}

func validate(e model.Event) error {
	if e.Date.IsZero() {
		return errors.New("date is zero")
	}
	if e.URL == "" {
		return errors.New("url is empty")
	}
	for _, field := range []string{e.URL, e.Title, e.Thumbnail} {
		if strings.ContainsAny(field, "|\n\r") {
			return fmt.Errorf("field %q contains a separator or line break", field)
		}
	}
	return nil
}
