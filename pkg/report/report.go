// Package report computes time-windowed sales aggregates: reference-day,
// month-to-date and year-to-date totals plus a per-salesperson leaderboard.
// Aggregation is a pure function of the record set and the reference date;
// nothing is cached between calls and every call recomputes from scratch.
//
// Windows are string-prefix matches on the canonical YYYY-MM-DD date, not
// calendar arithmetic: month-to-date compares the first 7 characters,
// year-to-date the first 4.
package report

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/salesbook-io/salesbook/pkg/models"
)

// LeaderboardEntry is one salesperson's ranked month-to-date standing.
type LeaderboardEntry struct {
	Name             string  `json:"name"`
	TotalDay         float64 `json:"total_day"`
	TotalMonthToDate float64 `json:"total_month_to_date"`
}

// Result holds every derived aggregate for one reference date.
type Result struct {
	TotalDay         float64
	TotalMonthToDate float64
	TotalYearToDate  float64
	DayRecords       []*models.SaleRecord
	Leaderboard      []LeaderboardEntry
}

var refDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidReferenceDate reports whether s is a YYYY-MM-DD shaped string.
// Aggregate assumes this holds and does not defend against anything else;
// callers validate before calling.
func ValidReferenceDate(s string) bool {
	return refDatePattern.MatchString(s)
}

// Aggregate derives all totals from records at referenceDate. Sums
// accumulate left to right in record order with plain float64 addition;
// rounding is left to presentation. The leaderboard has one entry per
// distinct salesperson with month-to-date activity, sorted by month-to-date
// total descending, ties keeping the order the names were first seen.
func Aggregate(records []*models.SaleRecord, referenceDate string) *Result {
	month := referenceDate[:7]
	year := referenceDate[:4]

	res := &Result{}
	slots := make(map[string]int)

	for _, r := range records {
		if !strings.HasPrefix(r.Date(), year) {
			continue
		}
		res.TotalYearToDate += r.Amount()

		if !strings.HasPrefix(r.Date(), month) {
			continue
		}
		res.TotalMonthToDate += r.Amount()

		slot, ok := slots[r.Salesperson()]
		if !ok {
			slot = len(res.Leaderboard)
			slots[r.Salesperson()] = slot
			res.Leaderboard = append(res.Leaderboard, LeaderboardEntry{Name: r.Salesperson()})
		}
		res.Leaderboard[slot].TotalMonthToDate += r.Amount()

		if r.Date() == referenceDate {
			res.TotalDay += r.Amount()
			res.Leaderboard[slot].TotalDay += r.Amount()
			res.DayRecords = append(res.DayRecords, r)
		}
	}

	sort.SliceStable(res.Leaderboard, func(i, j int) bool {
		return res.Leaderboard[i].TotalMonthToDate > res.Leaderboard[j].TotalMonthToDate
	})
	return res
}

// Render formats a result as a plain-text report. This is the one place
// amounts are rounded.
func Render(res *Result, referenceDate string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "reference date:      %s\n", referenceDate)
	fmt.Fprintf(&b, "total day:           %.2f\n", res.TotalDay)
	fmt.Fprintf(&b, "total month to date: %.2f\n", res.TotalMonthToDate)
	fmt.Fprintf(&b, "total year to date:  %.2f\n", res.TotalYearToDate)
	b.WriteString("leaderboard:\n")
	for i, e := range res.Leaderboard {
		fmt.Fprintf(&b, "%3d. %-24s day %12.2f   mtd %12.2f\n", i+1, e.Name, e.TotalDay, e.TotalMonthToDate)
	}
	return b.String()
}
