package srs

import (
	"sort"
	"time"
)

// ReviewRecord is one logged review, the input to streak and response-time
// statistics. Timed is false when the client did not report a response time.
type ReviewRecord struct {
	ReviewedAt     time.Time
	Rating         Rating
	ResponseTimeMS int64
	Timed          bool
}

// Stats is the aggregated learning picture for one user.
type Stats struct {
	TotalCards          int     `json:"total_cards"`
	CardsReviewedToday  int     `json:"cards_reviewed_today"`
	AccuracyRate        float64 `json:"accuracy_rate"`
	CurrentStreak       int     `json:"current_streak"`
	LongestStreak       int     `json:"longest_streak"`
	AverageResponseTime float64 `json:"average_response_time"`
	CardsDueTomorrow    int     `json:"cards_due_tomorrow"`
}

// Aggregate rolls a user's cards and review history up into Stats. It is a
// pure function of its inputs: calling it twice on the same snapshot yields
// the same result.
//
// AccuracyRate is the unweighted mean of the per-card success rates; a card
// reviewed once weighs the same as a card reviewed a hundred times. The days
// parameter bounds the response-time window; streaks always consider the
// whole history.
func Aggregate[T Scheduled](cards []T, reviews []ReviewRecord, now time.Time, days int) Stats {
	stats := Stats{TotalCards: len(cards)}

	today := midnightUTC(now)
	tomorrow := today.AddDate(0, 0, 1)
	dayAfter := tomorrow.AddDate(0, 0, 1)

	var rateSum float64
	for _, card := range cards {
		state := card.ScheduleState()
		rateSum += state.SuccessRate

		if !state.LastReview.IsZero() && !state.LastReview.Before(today) {
			stats.CardsReviewedToday++
		}
		if !state.NextReview.Before(tomorrow) && state.NextReview.Before(dayAfter) {
			stats.CardsDueTomorrow++
		}
	}
	if len(cards) > 0 {
		stats.AccuracyRate = rateSum / float64(len(cards))
	}

	stats.CurrentStreak, stats.LongestStreak = streaks(reviews, today)
	stats.AverageResponseTime = averageResponseTime(reviews, now.Add(-time.Duration(days)*24*time.Hour))

	return stats
}

// streaks computes the current and longest runs of consecutive UTC calendar
// days containing at least one successful review. The current streak is kept
// alive by a successful review today or yesterday; a day without one breaks
// it.
func streaks(reviews []ReviewRecord, today time.Time) (current, longest int) {
	seen := make(map[time.Time]struct{})
	for _, review := range reviews {
		if review.Rating.Correct() {
			seen[midnightUTC(review.ReviewedAt)] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return 0, 0
	}

	anchor := today
	if _, ok := seen[anchor]; !ok {
		anchor = today.AddDate(0, 0, -1)
	}
	for {
		if _, ok := seen[anchor]; !ok {
			break
		}
		current++
		anchor = anchor.AddDate(0, 0, -1)
	}

	uniqueDays := make([]time.Time, 0, len(seen))
	for day := range seen {
		uniqueDays = append(uniqueDays, day)
	}
	sort.Slice(uniqueDays, func(i, j int) bool { return uniqueDays[i].Before(uniqueDays[j]) })

	run := 1
	longest = 1
	for i := 1; i < len(uniqueDays); i++ {
		if uniqueDays[i].Sub(uniqueDays[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	return current, longest
}

// averageResponseTime is the mean reported response time in milliseconds over
// timed reviews at or after the cutoff, or 0 when there are none.
func averageResponseTime(reviews []ReviewRecord, cutoff time.Time) float64 {
	var sum int64
	var count int
	for _, review := range reviews {
		if !review.Timed || review.ReviewedAt.Before(cutoff) {
			continue
		}
		sum += review.ResponseTimeMS
		count++
	}
	if count == 0 {
		return 0
	}
	return float64(sum) / float64(count)
}
