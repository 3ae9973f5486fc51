package fetcher

import (
	"regexp"
	"time"

	"ouinon/internal/model"
)

const dateLayout = "2006-01-02"

var urlDatePattern = regexp.MustCompile(`/(\d{4})/(\d{2})/(\d{2})/`)

// EntryDate returns the calendar day an entry is attributed to. A
// /YYYY/MM/DD/ segment in the link wins over the feed timestamp: press
// sites date article paths in editorial time, which tracks the publication
// day better than timestamps carrying arbitrary zone offsets. Without
// either, the entry is attributed to now.
func EntryDate(e model.Entry, now time.Time) time.Time {
	if m := urlDatePattern.FindStringSubmatch(e.Link); m != nil {
		if d, err := time.Parse(dateLayout, m[1]+"-"+m[2]+"-"+m[3]); err == nil {
			return d
		}
	}
	if !e.Published.IsZero() {
		return model.Day(e.Published)
	}
	return model.Day(now)
}
