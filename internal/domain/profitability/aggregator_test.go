package profitability

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mayFilter() ReportFilter {
	return ReportFilter{
		StartDate: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC),
	}
}

func zeroParams() CostParameters {
	return CostParameters{
		FuelCostPerKm:               decimal.Zero,
		WagePerDay:                  decimal.Zero,
		MonthlyInsurance:            decimal.Zero,
		MonthlyVehicleMaintenance:   decimal.Zero,
		MonthlyOfficeExpenses:       decimal.Zero,
		MonthlyOtherInsuranceAndTax: decimal.Zero,
	}
}

func TestAggregate_FiltersToCompletedVisitsInPeriod(t *testing.T) {
	operatorID := uuid.New()
	customerID := uuid.New()
	filter := mayFilter()

	inPeriod := completedVisit(operatorID, customerID, nil, time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC))
	planned := completedVisit(operatorID, customerID, nil, time.Date(2026, 5, 11, 0, 0, 0, 0, time.UTC))
	planned.Status = VisitStatusPlanned
	outOfPeriod := completedVisit(operatorID, customerID, nil, time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC))

	report := Aggregate(AggregationInput{
		Filter: filter,
		Visits: []Visit{inPeriod, planned, outOfPeriod},
		Params: zeroParams(),
	})

	assert.Equal(t, 1, report.Summary.VisitCount)
	require.Len(t, report.Visits, 1)
	assert.Equal(t, inPeriod.ID, report.Visits[0].VisitID)
}

func TestAggregate_OperatorFilter(t *testing.T) {
	customerID := uuid.New()
	opA := uuid.New()
	opB := uuid.New()
	date := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)

	filter := mayFilter()
	filter.OperatorID = &opA

	report := Aggregate(AggregationInput{
		Filter: filter,
		Visits: []Visit{
			completedVisit(opA, customerID, nil, date),
			completedVisit(opB, customerID, nil, date),
		},
		Params: zeroParams(),
	})

	require.Len(t, report.Operators, 1)
	assert.Equal(t, opA, report.Operators[0].OperatorID)
}

func TestAggregate_OperatorRevenueMatchesResolvedPlusMaterials(t *testing.T) {
	customerID := uuid.New()
	operatorID := uuid.New()
	date := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)

	v1 := completedVisit(operatorID, customerID, nil, date)
	v2 := completedVisit(operatorID, customerID, nil, date.AddDate(0, 0, 1))

	report := Aggregate(AggregationInput{
		Filter: mayFilter(),
		Visits: []Visit{v1, v2},
		Pricing: NewPricingIndex([]PricingRecord{
			{CustomerID: uuidPtr(customerID), PerVisitPrice: decPtr("30")},
		}),
		Sales: []MaterialSale{
			{VisitID: v1.ID, CustomerID: customerID, TotalAmount: dec("15")},
		},
		Params: zeroParams(),
	})

	require.Len(t, report.Operators, 1)
	// 30 + 30 resolved, plus 15 material.
	assert.True(t, dec("75").Equal(report.Operators[0].Revenue))
	assert.True(t, dec("60").Equal(report.Summary.PerVisitRevenue))
	assert.True(t, dec("15").Equal(report.Summary.MaterialSaleRevenue))
	assert.True(t, dec("75").Equal(report.Summary.TotalRevenue))
}

func TestAggregate_MonthlyContractCountedOncePerEntity(t *testing.T) {
	customerID := uuid.New()
	operatorID := uuid.New()
	date := time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC)

	// Three visits under one monthly contract: the summary and the customer
	// bucket carry the fee once, not three times.
	visits := []Visit{
		completedVisit(operatorID, customerID, nil, date),
		completedVisit(operatorID, customerID, nil, date.AddDate(0, 0, 7)),
		completedVisit(operatorID, customerID, nil, date.AddDate(0, 0, 14)),
	}

	report := Aggregate(AggregationInput{
		Filter: mayFilter(),
		Visits: visits,
		Pricing: NewPricingIndex([]PricingRecord{
			{CustomerID: uuidPtr(customerID), MonthlyPrice: decPtr("300")},
		}),
		Params: zeroParams(),
	})

	assert.True(t, dec("300").Equal(report.Summary.MonthlyContractRevenue))
	assert.True(t, report.Summary.PerVisitRevenue.IsZero())

	require.Len(t, report.Customers, 1)
	assert.True(t, dec("300").Equal(report.Customers[0].Revenue))
	assert.Equal(t, 3, report.Customers[0].VisitCount)

	// The operator still earns the distributed shares.
	require.Len(t, report.Operators, 1)
	assert.True(t, dec("300").Equal(report.Operators[0].Revenue))

	// And each visit row carries its even share.
	for _, item := range report.Visits {
		assert.True(t, dec("100").Equal(item.Revenue))
	}
}

func TestAggregate_BranchMonthlyCreditsBranchNotCustomer(t *testing.T) {
	customerID := uuid.New()
	branchID := uuid.New()
	operatorID := uuid.New()
	date := time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC)

	visits := []Visit{
		completedVisit(operatorID, customerID, uuidPtr(branchID), date),
		completedVisit(operatorID, customerID, uuidPtr(branchID), date.AddDate(0, 0, 10)),
	}

	report := Aggregate(AggregationInput{
		Filter: mayFilter(),
		Visits: visits,
		Pricing: NewPricingIndex([]PricingRecord{
			{BranchID: uuidPtr(branchID), MonthlyPrice: decPtr("200")},
		}),
		Params: zeroParams(),
	})

	require.Len(t, report.Branches, 1)
	assert.True(t, dec("200").Equal(report.Branches[0].Revenue))

	// Monthly revenue goes to the owning entity only; the customer bucket
	// still counts the visits but carries no monthly fee.
	require.Len(t, report.Customers, 1)
	assert.True(t, report.Customers[0].Revenue.IsZero())
	assert.Equal(t, 2, report.Customers[0].VisitCount)
}

func TestAggregate_PerVisitRevenueVisibleInBothBuckets(t *testing.T) {
	customerID := uuid.New()
	branchID := uuid.New()
	operatorID := uuid.New()
	date := time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC)

	visit := completedVisit(operatorID, customerID, uuidPtr(branchID), date)

	report := Aggregate(AggregationInput{
		Filter: mayFilter(),
		Visits: []Visit{visit},
		Pricing: NewPricingIndex([]PricingRecord{
			{BranchID: uuidPtr(branchID), PerVisitPrice: decPtr("50")},
		}),
		Sales: []MaterialSale{
			{VisitID: visit.ID, CustomerID: customerID, BranchID: uuidPtr(branchID), TotalAmount: dec("20")},
		},
		Params: zeroParams(),
	})

	// Drill-down double-visibility: both buckets show 70. The summary sums
	// independently, so the total stays 70, not 140.
	require.Len(t, report.Customers, 1)
	require.Len(t, report.Branches, 1)
	assert.True(t, dec("70").Equal(report.Customers[0].Revenue))
	assert.True(t, dec("70").Equal(report.Branches[0].Revenue))
	assert.True(t, dec("70").Equal(report.Summary.TotalRevenue))
}

func TestAggregate_EqualCostAllocationPerVisit(t *testing.T) {
	customerID := uuid.New()
	operatorID := uuid.New()
	date := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	// Single-day window keeps the wage term easy: 100 * 1 day = 100 total
	// cost, split evenly across two visits.
	filter := ReportFilter{StartDate: date, EndDate: date}
	params := zeroParams()
	params.WagePerDay = dec("100")

	report := Aggregate(AggregationInput{
		Filter: filter,
		Visits: []Visit{
			completedVisit(operatorID, customerID, nil, date),
			completedVisit(operatorID, customerID, nil, date),
		},
		Pricing: NewPricingIndex([]PricingRecord{
			{CustomerID: uuidPtr(customerID), PerVisitPrice: decPtr("80")},
		}),
		Params: params,
	})

	require.Len(t, report.Visits, 2)
	for _, item := range report.Visits {
		assert.True(t, dec("50").Equal(item.AllocatedCost))
		assert.True(t, dec("30").Equal(item.NetProfit))
	}

	require.Len(t, report.Operators, 1)
	assert.True(t, dec("100").Equal(report.Operators[0].Cost))
	assert.True(t, dec("60").Equal(report.Operators[0].NetProfit))
}

func TestAggregate_FuelCostUsesOperatorDistance(t *testing.T) {
	customerID := uuid.New()
	operatorID := uuid.New()
	date := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	params := zeroParams()
	params.FuelCostPerKm = dec("3")

	report := Aggregate(AggregationInput{
		Filter: ReportFilter{StartDate: date, EndDate: date},
		Visits: []Visit{completedVisit(operatorID, customerID, nil, date)},
		Params: params,
		DistanceByOperator: map[uuid.UUID]float64{
			operatorID: 40,
		},
	})

	require.Len(t, report.Operators, 1)
	assert.True(t, dec("120").Equal(report.Operators[0].CostBreakdown.Fuel))
	assert.InDelta(t, 40.0, report.Operators[0].TotalDistanceKm, 1e-9)
}

func TestAggregate_MarginGuards(t *testing.T) {
	customerID := uuid.New()
	operatorID := uuid.New()
	date := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	params := zeroParams()
	params.WagePerDay = dec("100")

	// No pricing at all: revenue 0, cost positive.
	report := Aggregate(AggregationInput{
		Filter: ReportFilter{StartDate: date, EndDate: date},
		Visits: []Visit{completedVisit(operatorID, customerID, nil, date)},
		Params: params,
	})

	assert.True(t, report.Summary.TotalRevenue.IsZero())
	assert.True(t, report.Summary.ProfitMargin.IsZero(), "margin must be 0 when revenue is 0")
	assert.True(t, report.Summary.NetProfit.IsNegative())

	// Costs above revenue: margin goes negative.
	report = Aggregate(AggregationInput{
		Filter: ReportFilter{StartDate: date, EndDate: date},
		Visits: []Visit{completedVisit(operatorID, customerID, nil, date)},
		Pricing: NewPricingIndex([]PricingRecord{
			{CustomerID: uuidPtr(customerID), PerVisitPrice: decPtr("40")},
		}),
		Params: params,
	})

	assert.True(t, report.Summary.NetProfit.IsNegative())
	assert.True(t, report.Summary.ProfitMargin.IsNegative())
}

func TestAggregate_SortsViews(t *testing.T) {
	customerA := uuid.New()
	customerB := uuid.New()
	opA := uuid.New()
	opB := uuid.New()

	early := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)
	late := time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)

	report := Aggregate(AggregationInput{
		Filter: mayFilter(),
		Visits: []Visit{
			completedVisit(opA, customerA, nil, early),
			completedVisit(opB, customerB, nil, late),
		},
		Pricing: NewPricingIndex([]PricingRecord{
			{CustomerID: uuidPtr(customerA), PerVisitPrice: decPtr("10")},
			{CustomerID: uuidPtr(customerB), PerVisitPrice: decPtr("90")},
		}),
		Params: zeroParams(),
	})

	require.Len(t, report.Operators, 2)
	assert.True(t, report.Operators[0].NetProfit.GreaterThanOrEqual(report.Operators[1].NetProfit))

	require.Len(t, report.Customers, 2)
	assert.Equal(t, customerB, report.Customers[0].CustomerID)

	require.Len(t, report.Visits, 2)
	assert.True(t, report.Visits[0].VisitDate.After(report.Visits[1].VisitDate))
}

func TestAggregate_UnknownEntityNamesDegrade(t *testing.T) {
	customerID := uuid.New()
	operatorID := uuid.New()
	date := time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC)

	// The joined names are empty: the visit references entities missing
	// from the fetched set. Aggregation proceeds by id.
	visit := completedVisit(operatorID, customerID, nil, date)

	report := Aggregate(AggregationInput{
		Filter: mayFilter(),
		Visits: []Visit{visit},
		Pricing: NewPricingIndex([]PricingRecord{
			{CustomerID: uuidPtr(customerID), PerVisitPrice: decPtr("10")},
		}),
		Params: zeroParams(),
	})

	require.Len(t, report.Customers, 1)
	assert.Equal(t, UnknownEntityName, report.Customers[0].CustomerName)
	assert.True(t, dec("10").Equal(report.Customers[0].Revenue))
	require.Len(t, report.Operators, 1)
	assert.Equal(t, UnknownEntityName, report.Operators[0].OperatorName)
}

func TestAggregate_SaleForUnmatchedVisitIgnored(t *testing.T) {
	customerID := uuid.New()
	operatorID := uuid.New()
	date := time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC)

	visit := completedVisit(operatorID, customerID, nil, date)

	report := Aggregate(AggregationInput{
		Filter: mayFilter(),
		Visits: []Visit{visit},
		Sales: []MaterialSale{
			{VisitID: uuid.New(), CustomerID: customerID, TotalAmount: dec("999")},
		},
		Params: zeroParams(),
	})

	assert.True(t, report.Summary.MaterialSaleRevenue.IsZero())
}
