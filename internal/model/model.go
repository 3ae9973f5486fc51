// Package model defines the domain types used across the application.
package model

import "time"

// Event represents one recorded occurrence of the tracked behaviour.
// Events live in the append-only event log, one per line.
type Event struct {
	Date      time.Time // calendar day the event is attributed to, midnight UTC
	URL       string    // canonical article link, also the dedup key
	Title     string    // optional headline
	Thumbnail string    // optional preview image URL
}

// Entry is a single feed item after parsing, before classification.
// Entries are transient and never persisted.
type Entry struct {
	Title     string
	Summary   string
	Link      string
	Published time.Time // zero when the feed carries no usable date
	Thumbnail string    // from the item image or an image enclosure
}

// Verdict is the decision a classifier rule produces when its pattern matches.
type Verdict string

// Supported verdicts.
const (
	VerdictAccept Verdict = "accept"
	VerdictReject Verdict = "reject"
)

// Rule pairs a regular expression with the verdict taken when it matches.
// Rules are evaluated in order and the first match decides.
type Rule struct {
	Pattern string
	Verdict Verdict
}

// Day truncates t to its calendar day in t's own location, normalized to
// midnight UTC so that dates compare with Equal and subtract cleanly.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
