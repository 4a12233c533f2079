package profitability

import (
	"math"
	"time"

	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VisitStatus represents the lifecycle state of a service visit.
type VisitStatus string

// Visit statuses. Only completed visits participate in profitability.
const (
	VisitStatusPlanned   VisitStatus = "planned"
	VisitStatusCompleted VisitStatus = "completed"
	VisitStatusCancelled VisitStatus = "cancelled"
)

// UnknownEntityName is the placeholder used when a visit or sale references
// a customer or branch that is missing from the fetched set. Aggregation
// still proceeds numerically by id.
const UnknownEntityName = "Unknown"

// Visit is a read model for a single service visit, joined with the names
// and coordinates needed by the profitability engine. It is owned by the
// scheduling subsystem; the engine never mutates it.
type Visit struct {
	ID              uuid.UUID   `json:"id"`
	VisitDate       time.Time   `json:"visit_date"`
	Status          VisitStatus `json:"status"`
	OperatorID      uuid.UUID   `json:"operator_id"`
	OperatorName    string      `json:"operator_name"`
	CustomerID      uuid.UUID   `json:"customer_id"`
	CustomerName    string      `json:"customer_name"`
	BranchID        *uuid.UUID  `json:"branch_id,omitempty"`
	BranchName      string      `json:"branch_name,omitempty"`
	BranchLatitude  *float64    `json:"branch_latitude,omitempty"`
	BranchLongitude *float64    `json:"branch_longitude,omitempty"`
}

// IsCompleted reports whether the visit participates in profitability.
func (v Visit) IsCompleted() bool {
	return v.Status == VisitStatusCompleted
}

// HasCoordinates reports whether the visit's branch carries a full
// coordinate pair and can contribute a leg to the operator's route.
func (v Visit) HasCoordinates() bool {
	return v.BranchLatitude != nil && v.BranchLongitude != nil
}

// PricingRecord is attached to exactly one customer or one branch. Both
// price fields may be present; the resolver decides which one wins.
type PricingRecord struct {
	CustomerID    *uuid.UUID       `json:"customer_id,omitempty"`
	BranchID      *uuid.UUID       `json:"branch_id,omitempty"`
	MonthlyPrice  *decimal.Decimal `json:"monthly_price,omitempty"`
	PerVisitPrice *decimal.Decimal `json:"per_visit_price,omitempty"`
}

// MaterialSale is a billable transaction tied to exactly one visit.
type MaterialSale struct {
	VisitID     uuid.UUID       `json:"visit_id"`
	CustomerID  uuid.UUID       `json:"customer_id"`
	BranchID    *uuid.UUID      `json:"branch_id,omitempty"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// CostParameters is the per-run cost configuration. All values are
// non-negative decimals supplied by the caller; nothing here is persisted.
type CostParameters struct {
	FuelCostPerKm               decimal.Decimal `json:"fuel_cost_per_km"`
	WagePerDay                  decimal.Decimal `json:"wage_per_day"`
	MonthlyInsurance            decimal.Decimal `json:"monthly_insurance"`
	MonthlyVehicleMaintenance   decimal.Decimal `json:"monthly_vehicle_maintenance"`
	MonthlyOfficeExpenses       decimal.Decimal `json:"monthly_office_expenses"`
	MonthlyOtherInsuranceAndTax decimal.Decimal `json:"monthly_other_insurance_and_tax"`
}

// Validate ensures every cost parameter is non-negative.
func (p CostParameters) Validate() error {
	values := []decimal.Decimal{
		p.FuelCostPerKm,
		p.WagePerDay,
		p.MonthlyInsurance,
		p.MonthlyVehicleMaintenance,
		p.MonthlyOfficeExpenses,
		p.MonthlyOtherInsuranceAndTax,
	}
	for _, v := range values {
		if v.IsNegative() {
			return shared.NewDomainError("INVALID_INPUT", "cost parameters must be non-negative")
		}
	}
	return nil
}

// ReportFilter bounds a report run: an inclusive date range and an optional
// operator filter.
type ReportFilter struct {
	StartDate  time.Time  `json:"start_date"`
	EndDate    time.Time  `json:"end_date"`
	OperatorID *uuid.UUID `json:"operator_id,omitempty"`
}

// Validate checks that the period is well-formed.
func (f ReportFilter) Validate() error {
	if f.EndDate.Before(f.StartDate) {
		return shared.ErrInvalidPeriod
	}
	return nil
}

// PeriodDays returns the inclusive day count of the report window
// (end minus start plus one).
func (f ReportFilter) PeriodDays() int {
	days := int(f.EndDate.Sub(f.StartDate).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	return days
}

// PeriodMonths approximates the number of months covered by the window as
// ceil(days/30). This is not calendar-month counting; the approximation is
// kept deliberately for parity with the established cost figures.
func (f ReportFilter) PeriodMonths() int {
	return int(math.Ceil(float64(f.PeriodDays()) / 30.0))
}

// Contains reports whether the given date falls inside the inclusive window.
func (f ReportFilter) Contains(t time.Time) bool {
	return !t.Before(f.StartDate) && !t.After(f.EndDate)
}
