// Package report derives display views from a contributor snapshot. Every
// function is a pure recomputation over the snapshot it is given; nothing is
// cached.
package report

import (
	"fmt"
	"time"

	"github.com/rostralabs/rostra/internal/domain/contributor"
)

// DaySeries holds per-day counts over a trailing window, oldest day first.
type DaySeries struct {
	Days   []string `json:"days"`
	Added  []int    `json:"added"`
	Passed []int    `json:"passed"`
	Failed []int    `json:"failed"`
}

// TrailingWeek buckets additions and completions by day over the 7 days
// ending today inclusive, across both partitions.
func TrailingWeek(snap contributor.Snapshot, today time.Time) DaySeries {
	series := DaySeries{
		Days:   make([]string, 7),
		Added:  make([]int, 7),
		Passed: make([]int, 7),
		Failed: make([]int, 7),
	}
	for i := 0; i < 7; i++ {
		series.Days[i] = today.AddDate(0, 0, i-6).Format(contributor.DateLayout)
	}

	index := make(map[string]int, 7)
	for i, day := range series.Days {
		index[day] = i
	}

	forEach(snap, func(c contributor.Contributor) {
		if i, ok := index[c.DateAdded]; ok {
			series.Added[i]++
		}
		if i, ok := index[c.DateCompleted]; ok {
			switch c.Result {
			case contributor.ResultPassed:
				series.Passed[i]++
			case contributor.ResultFailed:
				series.Failed[i]++
			}
		}
	})
	return series
}

// Distribution counts records by stage across both partitions. Assigned
// excludes records that already carry a result.
type Distribution struct {
	Pending  int `json:"pending"`
	Assigned int `json:"assigned"`
	Passed   int `json:"passed"`
	Failed   int `json:"failed"`
}

// StatusDistribution computes the stage distribution over the full set.
func StatusDistribution(snap contributor.Snapshot) Distribution {
	var d Distribution
	forEach(snap, func(c contributor.Contributor) {
		switch {
		case c.Result == contributor.ResultPassed:
			d.Passed++
		case c.Result == contributor.ResultFailed:
			d.Failed++
		case c.Status == contributor.StatusPending:
			d.Pending++
		default:
			d.Assigned++
		}
	})
	return d
}

// DailyDetail is the activity view for one date: active records touched on
// that date plus its summary counts.
type DailyDetail struct {
	Date         string                    `json:"date"`
	Added        int                       `json:"added"`
	Assigned     int                       `json:"assigned"`
	Passed       int                       `json:"passed"`
	Failed       int                       `json:"failed"`
	Contributors []contributor.Contributor `json:"contributors"`
}

// Daily selects active records whose added, assigned, or completed date equals
// the given date.
func Daily(snap contributor.Snapshot, date string) DailyDetail {
	detail := DailyDetail{Date: date, Contributors: []contributor.Contributor{}}
	for _, c := range snap.Active {
		if c.DateAdded == date || c.DateAssigned == date || c.DateCompleted == date {
			detail.Contributors = append(detail.Contributors, c)
		}
		if c.DateAdded == date {
			detail.Added++
		}
		if c.DateAssigned == date {
			detail.Assigned++
		}
		if c.DateCompleted == date {
			switch c.Result {
			case contributor.ResultPassed:
				detail.Passed++
			case contributor.ResultFailed:
				detail.Failed++
			}
		}
	}
	return detail
}

// WeekBucket is one 7-day bucket of the four-week summary.
type WeekBucket struct {
	Label     string `json:"label"`
	Added     int    `json:"added"`
	Completed int    `json:"completed"`
}

// FourWeekSummary buckets additions and completions into the four trailing
// 7-day windows ending today, oldest bucket first.
func FourWeekSummary(snap contributor.Snapshot, today time.Time) []WeekBucket {
	// Normalize to midnight so parsed record dates compare cleanly.
	today, _ = time.Parse(contributor.DateLayout, today.Format(contributor.DateLayout))

	buckets := make([]WeekBucket, 4)
	starts := make([]time.Time, 4)
	for i := range buckets {
		buckets[i].Label = fmt.Sprintf("Week %d", i+1)
		starts[i] = today.AddDate(0, 0, -7*(4-i)+1)
	}

	bucketFor := func(date string) int {
		d, err := time.Parse(contributor.DateLayout, date)
		if err != nil {
			return -1
		}
		for i := 3; i >= 0; i-- {
			if !d.Before(starts[i]) {
				if i == 3 && d.After(today) {
					return -1
				}
				return i
			}
		}
		return -1
	}

	forEach(snap, func(c contributor.Contributor) {
		if c.DateAdded != "" {
			if i := bucketFor(c.DateAdded); i >= 0 {
				buckets[i].Added++
			}
		}
		if c.DateCompleted != "" {
			if i := bucketFor(c.DateCompleted); i >= 0 {
				buckets[i].Completed++
			}
		}
	})
	return buckets
}

func forEach(snap contributor.Snapshot, fn func(contributor.Contributor)) {
	for _, c := range snap.Active {
		fn(c)
	}
	for _, c := range snap.Archived {
		fn(c)
	}
}
