package profitability

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PricingSource identifies which of the four competing pricing sources won
// for a visit. The aggregator needs this to attribute monthly-contract
// revenue at entity level rather than per visit.
type PricingSource string

// Pricing sources in precedence order. Per-visit pricing always beats a
// distributed monthly fee, and branch-level pricing beats customer-level
// pricing because branches represent finer-grained billing arrangements.
const (
	SourceBranchPerVisit   PricingSource = "branch_per_visit"
	SourceCustomerPerVisit PricingSource = "customer_per_visit"
	SourceBranchMonthly    PricingSource = "branch_monthly"
	SourceCustomerMonthly  PricingSource = "customer_monthly"
	SourceNone             PricingSource = "none"
)

// IsMonthly reports whether the source distributes a monthly contract fee.
func (s PricingSource) IsMonthly() bool {
	return s == SourceBranchMonthly || s == SourceCustomerMonthly
}

// PricingIndex provides pricing-record lookup by owning entity.
type PricingIndex struct {
	byCustomer map[uuid.UUID]PricingRecord
	byBranch   map[uuid.UUID]PricingRecord
}

// NewPricingIndex builds an index over the fetched pricing records. A record
// carrying a customer id is indexed under the customer; a record carrying a
// branch id under the branch. Later records for the same entity replace
// earlier ones.
func NewPricingIndex(records []PricingRecord) PricingIndex {
	idx := PricingIndex{
		byCustomer: make(map[uuid.UUID]PricingRecord),
		byBranch:   make(map[uuid.UUID]PricingRecord),
	}
	for _, r := range records {
		if r.CustomerID != nil {
			idx.byCustomer[*r.CustomerID] = r
		}
		if r.BranchID != nil {
			idx.byBranch[*r.BranchID] = r
		}
	}
	return idx
}

// CustomerPricing returns the pricing record owned by the customer, if any.
func (idx PricingIndex) CustomerPricing(customerID uuid.UUID) (PricingRecord, bool) {
	r, ok := idx.byCustomer[customerID]
	return r, ok
}

// BranchPricing returns the pricing record owned by the branch, if any.
func (idx PricingIndex) BranchPricing(branchID uuid.UUID) (PricingRecord, bool) {
	r, ok := idx.byBranch[branchID]
	return r, ok
}

// ResolvedRevenue is the outcome of pricing one visit.
type ResolvedRevenue struct {
	Amount decimal.Decimal
	Source PricingSource
	// MonthlyFee carries the full contract fee when a monthly source won,
	// so the aggregator can credit the owning entity once per run.
	MonthlyFee decimal.Decimal
}

// ResolveVisitRevenue determines the monetary revenue attributable to a
// single visit. Precedence is evaluated top-down and the first match wins;
// rules are never combined:
//
//  1. branch per-visit price
//  2. customer per-visit price
//  3. branch monthly price divided by the branch's visit count in the
//     visit's calendar month
//  4. customer monthly price divided by the customer's visit count in the
//     visit's calendar month
//  5. zero
//
// A zero month count is treated as 1 to guard the division. A visit with no
// branch skips the branch rules entirely.
func ResolveVisitRevenue(v Visit, pricing PricingIndex, counts MonthlyVisitCounts) ResolvedRevenue {
	if v.BranchID != nil {
		if r, ok := pricing.BranchPricing(*v.BranchID); ok && r.PerVisitPrice != nil {
			return ResolvedRevenue{Amount: *r.PerVisitPrice, Source: SourceBranchPerVisit}
		}
	}

	if r, ok := pricing.CustomerPricing(v.CustomerID); ok && r.PerVisitPrice != nil {
		return ResolvedRevenue{Amount: *r.PerVisitPrice, Source: SourceCustomerPerVisit}
	}

	if v.BranchID != nil {
		if r, ok := pricing.BranchPricing(*v.BranchID); ok && r.MonthlyPrice != nil {
			count := counts.BranchMonthCount(*v.BranchID, v.VisitDate)
			return ResolvedRevenue{
				Amount:     distributeMonthly(*r.MonthlyPrice, count),
				Source:     SourceBranchMonthly,
				MonthlyFee: *r.MonthlyPrice,
			}
		}
	}

	if r, ok := pricing.CustomerPricing(v.CustomerID); ok && r.MonthlyPrice != nil {
		count := counts.CustomerMonthCount(v.CustomerID, v.VisitDate)
		return ResolvedRevenue{
			Amount:     distributeMonthly(*r.MonthlyPrice, count),
			Source:     SourceCustomerMonthly,
			MonthlyFee: *r.MonthlyPrice,
		}
	}

	return ResolvedRevenue{Amount: decimal.Zero, Source: SourceNone}
}

// distributeMonthly divides a monthly contract fee evenly across the visits
// that occurred in the entity's calendar month. A count of zero is treated
// as 1 to avoid division by zero.
func distributeMonthly(monthlyPrice decimal.Decimal, monthCount int) decimal.Decimal {
	if monthCount < 1 {
		monthCount = 1
	}
	return monthlyPrice.Div(decimal.NewFromInt(int64(monthCount)))
}
