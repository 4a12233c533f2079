package profitability

import (
	"time"

	"github.com/google/uuid"
)

// monthKey identifies one entity's visit bucket for one calendar month.
// Grouping uses the visit's own calendar month, not the report period's
// boundary months.
type monthKey struct {
	EntityID uuid.UUID
	Year     int
	Month    time.Month
}

func newMonthKey(entityID uuid.UUID, date time.Time) monthKey {
	return monthKey{EntityID: entityID, Year: date.Year(), Month: date.Month()}
}

// MonthlyVisitCounts holds two independent per-calendar-month visit counts:
// one keyed by customer and one keyed by branch. A monthly contract may be
// billed at either level and the two counts generally differ, since a
// branch's visits are a subset of its customer's.
type MonthlyVisitCounts struct {
	byCustomer map[monthKey]int
	byBranch   map[monthKey]int
}

// CountVisitsPerMonth folds the visit set into fresh customer- and
// branch-keyed month counts. Only completed visits are counted; callers
// pass the period-filtered set, so no date filtering happens here.
func CountVisitsPerMonth(visits []Visit) MonthlyVisitCounts {
	counts := MonthlyVisitCounts{
		byCustomer: make(map[monthKey]int),
		byBranch:   make(map[monthKey]int),
	}

	for _, v := range visits {
		if !v.IsCompleted() {
			continue
		}
		counts.byCustomer[newMonthKey(v.CustomerID, v.VisitDate)]++
		if v.BranchID != nil {
			counts.byBranch[newMonthKey(*v.BranchID, v.VisitDate)]++
		}
	}

	return counts
}

// CustomerMonthCount returns how many completed visits the customer had in
// the calendar month of the given date.
func (c MonthlyVisitCounts) CustomerMonthCount(customerID uuid.UUID, date time.Time) int {
	return c.byCustomer[newMonthKey(customerID, date)]
}

// BranchMonthCount returns how many completed visits the branch had in the
// calendar month of the given date.
func (c MonthlyVisitCounts) BranchMonthCount(branchID uuid.UUID, date time.Time) int {
	return c.byBranch[newMonthKey(branchID, date)]
}
