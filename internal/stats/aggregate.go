// Package stats derives reporting series from the persisted daily
// counts. Everything here is a pure function of stored data plus a
// reference date.
package stats

import (
	"math"
	"time"

	"pomo/internal/domain"
)

// WeekDays is the fixed length of the weekly series.
const WeekDays = 7

// DayPoint is one day in the weekly series.
type DayPoint struct {
	Day     string
	Weekday string
	Count   int
}

// WeeklySeries returns exactly seven points, oldest first, ending at
// the reference date's day. Days absent from counts report zero.
func WeeklySeries(counts domain.DailyCounts, ref time.Time) []DayPoint {
	points := make([]DayPoint, 0, WeekDays)
	for i := WeekDays - 1; i >= 0; i-- {
		day := ref.AddDate(0, 0, -i)
		key := domain.DayKey(day)
		points = append(points, DayPoint{
			Day:     key,
			Weekday: day.Format("Mon"),
			Count:   counts[key],
		})
	}
	return points
}

// Streak counts consecutive days with at least one completed work
// session, walking backward from the reference date inclusive. A zero
// count on the reference day itself yields zero.
func Streak(counts domain.DailyCounts, ref time.Time) int {
	n := 0
	for {
		key := domain.DayKey(ref.AddDate(0, 0, -n))
		if counts[key] == 0 {
			return n
		}
		n++
	}
}

// LifetimeTotal sums completed work sessions across all recorded days.
func LifetimeTotal(counts domain.DailyCounts) int {
	total := 0
	for _, v := range counts {
		total += v
	}
	return total
}

// WeeklyTotal sums the counts of a weekly series.
func WeeklyTotal(series []DayPoint) int {
	total := 0
	for _, p := range series {
		total += p.Count
	}
	return total
}

// AveragePerDay is the weekly total divided by seven, rounded to the
// nearest integer.
func AveragePerDay(weeklyTotal int) int {
	return int(math.Round(float64(weeklyTotal) / WeekDays))
}
