package store

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"fundbrief/internal/model"
)

// BriefStore persists the published set of daily briefs as one whole
// document. Get must never fail: backends degrade to an empty collection on
// I/O errors. Prune must run before Append within a publish cycle.
type BriefStore interface {
	Get() ([]model.DailyBrief, error)
	Append(newBriefs []model.DailyBrief) error
	Prune(maxAgeDays int) error
}

// pruneExpired filters out briefs whose publish date is maxAgeDays or more
// days before now, preserving the relative order of survivors. Briefs whose
// date fails to parse are dropped unconditionally.
func pruneExpired(briefs []model.DailyBrief, maxAgeDays int, now time.Time) []model.DailyBrief {
	kept := make([]model.DailyBrief, 0, len(briefs))

	for _, brief := range briefs {
		published, ok := parsePublishDate(brief.PublishedDate)
		if !ok {
			slog.Warn("dropping brief with unparseable publish date",
				"date", brief.PublishedDate, "title", brief.Title)
			continue
		}

		ageDays := int(now.Sub(published).Hours() / 24)
		if ageDays >= maxAgeDays {
			continue
		}

		kept = append(kept, brief)
	}

	return kept
}

// parsePublishDate reads a YYYY-MM-DD date. Values carrying a time component
// after a "T" separator are accepted by their date prefix.
func parsePublishDate(raw string) (time.Time, bool) {
	if idx := strings.Index(raw, "T"); idx >= 0 {
		raw = raw[:idx]
	}

	parts := strings.Split(raw, "-")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, false
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, false
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}
