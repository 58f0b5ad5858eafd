package srs

import "time"

// Scheduled is implemented by anything that carries a review schedule,
// typically a flashcard record loaded from storage.
type Scheduled interface {
	ScheduleState() State
}

// DueNow returns the items whose next review is at or before now, preserving
// input order. A positive limit truncates the result; limit <= 0 means no
// limit. The input slice is never modified.
func DueNow[T Scheduled](items []T, now time.Time, limit int) []T {
	var due []T
	for _, item := range items {
		if !item.ScheduleState().Due(now) {
			continue
		}
		due = append(due, item)
		if limit > 0 && len(due) == limit {
			break
		}
	}
	return due
}

// DayLoad is the number of cards coming due on one calendar day.
type DayLoad struct {
	Date     time.Time `json:"date"`
	DueCards int       `json:"due_cards"`
}

// ScheduleSummary is the forward-looking review load over a window of days.
type ScheduleSummary struct {
	Days     []DayLoad `json:"schedule"`
	TotalDue int       `json:"total_due"`
}

// DailySchedule buckets the items' next-review times by UTC calendar day for
// the window [midnight(now), midnight(now)+days). Each bucket is half-open,
// so a review landing exactly on a midnight boundary counts toward the day
// it starts. The summary always contains exactly days entries.
func DailySchedule[T Scheduled](items []T, now time.Time, days int) ScheduleSummary {
	summary := ScheduleSummary{Days: make([]DayLoad, 0, days)}

	start := midnightUTC(now)
	for i := 0; i < days; i++ {
		dayStart := start.AddDate(0, 0, i)
		dayEnd := dayStart.AddDate(0, 0, 1)

		count := 0
		for _, item := range items {
			next := item.ScheduleState().NextReview
			if !next.Before(dayStart) && next.Before(dayEnd) {
				count++
			}
		}

		summary.Days = append(summary.Days, DayLoad{Date: dayStart, DueCards: count})
		summary.TotalDue += count
	}

	return summary
}

// midnightUTC truncates a time to the start of its UTC calendar day.
func midnightUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
