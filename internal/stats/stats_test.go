package stats

import (
	"testing"
	"time"

	"spendview/internal/core"
)

var now = time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

func rec(vendor string, date core.Date, cents int64, cat core.Category) core.Receipt {
	return core.Receipt{
		ID: vendor + date.String(), Vendor: vendor, Date: date,
		Amount: core.Money{Cents: cents}, Category: cat,
		FileName: "f.jpg", FileType: "image/jpeg", Confidence: 0.9,
	}
}

func TestComputeEmpty(t *testing.T) {
	s := Compute(nil, now)
	if s.Count != 0 || s.Total.Cents != 0 || s.Average.Cents != 0 || s.Median.Cents != 0 {
		t.Fatalf("empty snapshot not zero: %+v", s)
	}
	if s.TopVendor != "" {
		t.Errorf("empty snapshot has top vendor %q", s.TopVendor)
	}
	if len(s.ByCategory) != 0 {
		t.Errorf("empty snapshot has category totals: %v", s.ByCategory)
	}
	if len(s.Trend) != 0 {
		t.Errorf("empty snapshot has trend points: %v", s.Trend)
	}
}

func TestComputeTotalsAndAverage(t *testing.T) {
	recs := []core.Receipt{
		rec("Starbucks", core.NewDate(2026, 8, 10), 1000, core.Dining),
		rec("Amazon", core.NewDate(2026, 8, 11), 2000, core.Shopping),
		rec("Target", core.NewDate(2026, 8, 12), 3000, core.Shopping),
	}
	s := Compute(recs, now)
	if s.Count != 3 || s.Total.Cents != 6000 {
		t.Fatalf("count/total wrong: %+v", s)
	}
	// average * count equals total amount
	if s.Average.Cents*int64(s.Count) != s.Total.Cents {
		t.Errorf("average %d * count %d != total %d", s.Average.Cents, s.Count, s.Total.Cents)
	}
}

func TestComputeMedian(t *testing.T) {
	odd := []core.Receipt{
		rec("A", core.NewDate(2026, 8, 1), 3000, core.Other),
		rec("B", core.NewDate(2026, 8, 2), 1000, core.Other),
		rec("C", core.NewDate(2026, 8, 3), 2000, core.Other),
	}
	if s := Compute(odd, now); s.Median.Cents != 2000 {
		t.Errorf("median of [10,20,30] = %v, want 20.00", s.Median.Decimal())
	}

	even := append(odd, rec("D", core.NewDate(2026, 8, 4), 4000, core.Other))
	if s := Compute(even, now); s.Median.Cents != 2500 {
		t.Errorf("median of [10,20,30,40] = %v, want 25.00", s.Median.Decimal())
	}
}

func TestComputeTopVendorFirstSeenTieBreak(t *testing.T) {
	recs := []core.Receipt{
		rec("Chipotle", core.NewDate(2026, 8, 1), 100, core.Dining),
		rec("Starbucks", core.NewDate(2026, 8, 2), 100, core.Dining),
		rec("Starbucks", core.NewDate(2026, 8, 3), 100, core.Dining),
		rec("Chipotle", core.NewDate(2026, 8, 4), 100, core.Dining),
	}
	if s := Compute(recs, now); s.TopVendor != "Chipotle" {
		t.Errorf("tie should go to first-seen vendor, got %q", s.TopVendor)
	}
}

func TestComputeMonthBuckets(t *testing.T) {
	recs := []core.Receipt{
		rec("A", core.NewDate(2026, 8, 5), 1000, core.Other),  // current month
		rec("B", core.NewDate(2026, 7, 20), 2000, core.Other), // previous month
		rec("C", core.NewDate(2026, 8, 25), 500, core.Other),  // current month
		rec("D", core.NewDate(2025, 8, 25), 900, core.Other),  // same month last year: neither bucket
	}
	s := Compute(recs, now)
	if s.CurrentMonth.Cents != 1500 {
		t.Errorf("current month = %d, want 1500", s.CurrentMonth.Cents)
	}
	if s.PreviousMonth.Cents != 2000 {
		t.Errorf("previous month = %d, want 2000", s.PreviousMonth.Cents)
	}
}

func TestComputeJanuaryRollover(t *testing.T) {
	january := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	recs := []core.Receipt{
		rec("A", core.NewDate(2026, 1, 5), 1000, core.Other),
		rec("B", core.NewDate(2025, 12, 28), 2000, core.Other),
	}
	s := Compute(recs, january)
	if s.CurrentMonth.Cents != 1000 {
		t.Errorf("current month = %d", s.CurrentMonth.Cents)
	}
	// last month resolves to December of the previous year
	if s.PreviousMonth.Cents != 2000 {
		t.Errorf("previous month = %d, want December 2025 total", s.PreviousMonth.Cents)
	}
}

func TestComputeCategoryBreakdown(t *testing.T) {
	recs := []core.Receipt{
		rec("A", core.NewDate(2026, 8, 5), 1000, core.Dining),
		rec("B", core.NewDate(2026, 8, 6), 2000, core.Dining),
		rec("C", core.NewDate(2026, 8, 7), 700, core.Travel),
	}
	s := Compute(recs, now)
	if s.ByCategory[core.Dining].Cents != 3000 || s.ByCategory[core.Travel].Cents != 700 {
		t.Errorf("breakdown wrong: %v", s.ByCategory)
	}
	// categories with zero spend are absent from the mapping
	if _, ok := s.ByCategory[core.Groceries]; ok {
		t.Error("zero-spend category present in breakdown")
	}
	if len(s.ByCategory) != 2 {
		t.Errorf("breakdown has %d entries, want 2", len(s.ByCategory))
	}
}

func TestComputeTrend(t *testing.T) {
	recs := []core.Receipt{
		rec("A", core.NewDate(2026, 8, 5), 1000, core.Other),
		rec("B", core.NewDate(2026, 6, 5), 2000, core.Other),
		rec("C", core.NewDate(2026, 3, 5), 900, core.Other), // before the window
	}
	s := Compute(recs, now)
	if len(s.Trend) != 6 {
		t.Fatalf("trend has %d points, want 6", len(s.Trend))
	}
	wantLabels := []string{"Mar 2026", "Apr 2026", "May 2026", "Jun 2026", "Jul 2026", "Aug 2026"}
	wantTotals := []int64{900, 0, 0, 2000, 0, 1000}
	for i, p := range s.Trend {
		if p.Label != wantLabels[i] {
			t.Errorf("trend[%d].Label = %q, want %q", i, p.Label, wantLabels[i])
		}
		if p.Total.Cents != wantTotals[i] {
			t.Errorf("trend[%d].Total = %d, want %d", i, p.Total.Cents, wantTotals[i])
		}
	}
}

func TestComputeTrendYearBoundary(t *testing.T) {
	february := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)
	s := Compute([]core.Receipt{
		rec("A", core.NewDate(2025, 11, 5), 1000, core.Other),
	}, february)
	if s.Trend[0].Label != "Sep 2025" || s.Trend[5].Label != "Feb 2026" {
		t.Errorf("trend window labels across year boundary: %v", s.Trend)
	}
	if s.Trend[2].Total.Cents != 1000 {
		t.Errorf("November 2025 total = %d", s.Trend[2].Total.Cents)
	}
}
