package profitability

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCountVisitsPerMonth_GroupsByOwnCalendarMonth(t *testing.T) {
	customerID := uuid.New()
	operatorID := uuid.New()

	// Two visits in May, one on the last day of June. Each counts toward
	// its own month, independent of any report boundary.
	visits := []Visit{
		completedVisit(operatorID, customerID, nil, time.Date(2026, 5, 3, 0, 0, 0, 0, time.UTC)),
		completedVisit(operatorID, customerID, nil, time.Date(2026, 5, 28, 0, 0, 0, 0, time.UTC)),
		completedVisit(operatorID, customerID, nil, time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)),
	}

	counts := CountVisitsPerMonth(visits)

	assert.Equal(t, 2, counts.CustomerMonthCount(customerID, time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1, counts.CustomerMonthCount(customerID, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, counts.CustomerMonthCount(customerID, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)))
}

func TestCountVisitsPerMonth_IgnoresNonCompletedVisits(t *testing.T) {
	customerID := uuid.New()
	date := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)

	planned := completedVisit(uuid.New(), customerID, nil, date)
	planned.Status = VisitStatusPlanned
	cancelled := completedVisit(uuid.New(), customerID, nil, date)
	cancelled.Status = VisitStatusCancelled

	counts := CountVisitsPerMonth([]Visit{planned, cancelled, completedVisit(uuid.New(), customerID, nil, date)})

	assert.Equal(t, 1, counts.CustomerMonthCount(customerID, date))
}

func TestCountVisitsPerMonth_BranchCountsAreIndependent(t *testing.T) {
	customerID := uuid.New()
	branchID := uuid.New()
	operatorID := uuid.New()
	date := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)

	// Three customer visits, only one at the branch: the branch count is a
	// subset of the customer's total.
	visits := []Visit{
		completedVisit(operatorID, customerID, uuidPtr(branchID), date),
		completedVisit(operatorID, customerID, nil, date.AddDate(0, 0, 1)),
		completedVisit(operatorID, customerID, nil, date.AddDate(0, 0, 2)),
	}

	counts := CountVisitsPerMonth(visits)

	assert.Equal(t, 3, counts.CustomerMonthCount(customerID, date))
	assert.Equal(t, 1, counts.BranchMonthCount(branchID, date))
}

func TestCountVisitsPerMonth_SameMonthDifferentYear(t *testing.T) {
	customerID := uuid.New()
	operatorID := uuid.New()

	visits := []Visit{
		completedVisit(operatorID, customerID, nil, time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)),
		completedVisit(operatorID, customerID, nil, time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)),
	}

	counts := CountVisitsPerMonth(visits)

	assert.Equal(t, 1, counts.CustomerMonthCount(customerID, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1, counts.CustomerMonthCount(customerID, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)))
}
