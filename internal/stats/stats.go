// Package stats computes the aggregation snapshot backing the dashboard
// view. Everything is recomputed from the full record set on each read;
// at interactive scale that beats maintaining incremental state.
package stats

import (
	"sort"
	"time"

	"spendview/internal/core"
)

// TrendPoint is one month of the trailing six-calendar-month spending chart.
type TrendPoint struct {
	Label string // e.g. "Mar 2026"
	Total core.Money
}

// Summary is the derived statistics snapshot for a record set. It is not
// stored anywhere; callers recompute it whenever the set changes.
type Summary struct {
	Count         int
	Total         core.Money
	Average       core.Money
	Median        core.Money
	TopVendor     string
	CurrentMonth  core.Money
	PreviousMonth core.Money
	ByCategory    map[core.Category]core.Money
	Trend         []TrendPoint // oldest first, always 6 points when Count > 0
}

// Compute derives the summary for recs with all calendar arithmetic anchored
// at now. An empty input yields the zero snapshot: no division by zero, no
// error.
func Compute(recs []core.Receipt, now time.Time) Summary {
	s := Summary{ByCategory: make(map[core.Category]core.Money)}
	s.Count = len(recs)
	if s.Count == 0 {
		return s
	}

	curYear, curMonth := now.Year(), int(now.Month())
	prevYear, prevMonth := curYear, curMonth-1
	if prevMonth < 1 {
		// December of the previous year
		prevMonth = 12
		prevYear--
	}

	amounts := make([]int64, 0, len(recs))
	vendorCounts := make(map[string]int, len(recs))
	vendorOrder := make([]string, 0, len(recs))

	for _, r := range recs {
		s.Total = s.Total.Add(r.Amount)
		amounts = append(amounts, r.Amount.Cents)

		if _, seen := vendorCounts[r.Vendor]; !seen {
			vendorOrder = append(vendorOrder, r.Vendor)
		}
		vendorCounts[r.Vendor]++

		s.ByCategory[r.Category] = s.ByCategory[r.Category].Add(r.Amount)

		if r.Date.SameMonth(curYear, curMonth) {
			s.CurrentMonth = s.CurrentMonth.Add(r.Amount)
		}
		if r.Date.SameMonth(prevYear, prevMonth) {
			s.PreviousMonth = s.PreviousMonth.Add(r.Amount)
		}
	}

	s.Average = core.Money{Cents: divRound(s.Total.Cents, int64(s.Count))}
	s.Median = core.Money{Cents: median(amounts)}
	s.TopVendor = topVendor(vendorCounts, vendorOrder)
	s.Trend = trend(recs, now)
	return s
}

// median sorts ascending and takes the middle element, averaging the two
// central elements for even counts.
func median(amounts []int64) int64 {
	sort.Slice(amounts, func(i, j int) bool { return amounts[i] < amounts[j] })
	n := len(amounts)
	if n%2 == 1 {
		return amounts[n/2]
	}
	return divRound(amounts[n/2-1]+amounts[n/2], 2)
}

// topVendor returns the vendor with the highest occurrence count; ties go
// to the vendor seen first in input order, keeping the result deterministic
// for a fixed input.
func topVendor(counts map[string]int, order []string) string {
	best, bestCount := "", 0
	for _, v := range order {
		if counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}
	return best
}

// trend produces six data points for the calendar months [now-5 .. now];
// months with no matching records report zero, not absence.
func trend(recs []core.Receipt, now time.Time) []TrendPoint {
	points := make([]TrendPoint, 0, 6)
	for i := 5; i >= 0; i-- {
		// walk back i calendar months from the first of the current month
		anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)
		year, month := anchor.Year(), int(anchor.Month())

		var total core.Money
		for _, r := range recs {
			if r.Date.SameMonth(year, month) {
				total = total.Add(r.Amount)
			}
		}
		points = append(points, TrendPoint{
			Label: anchor.Format("Jan 2006"),
			Total: total,
		})
	}
	return points
}

// divRound divides with half-up rounding on positive cents.
func divRound(total, n int64) int64 {
	return (total + n/2) / n
}
