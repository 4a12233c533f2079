package profitability

import "github.com/shopspring/decimal"

// CostBreakdown itemizes an operator's period cost into the six categories
// of the cost model.
type CostBreakdown struct {
	Wages                decimal.Decimal `json:"wages"`
	Fuel                 decimal.Decimal `json:"fuel"`
	Insurance            decimal.Decimal `json:"insurance"`
	VehicleMaintenance   decimal.Decimal `json:"vehicle_maintenance"`
	OfficeExpenses       decimal.Decimal `json:"office_expenses"`
	OtherInsuranceAndTax decimal.Decimal `json:"other_insurance_and_tax"`
}

// Total returns the sum of all six cost categories.
func (b CostBreakdown) Total() decimal.Decimal {
	return b.Wages.
		Add(b.Fuel).
		Add(b.Insurance).
		Add(b.VehicleMaintenance).
		Add(b.OfficeExpenses).
		Add(b.OtherInsuranceAndTax)
}

// Add returns a breakdown with every category summed pairwise.
func (b CostBreakdown) Add(other CostBreakdown) CostBreakdown {
	return CostBreakdown{
		Wages:                b.Wages.Add(other.Wages),
		Fuel:                 b.Fuel.Add(other.Fuel),
		Insurance:            b.Insurance.Add(other.Insurance),
		VehicleMaintenance:   b.VehicleMaintenance.Add(other.VehicleMaintenance),
		OfficeExpenses:       b.OfficeExpenses.Add(other.OfficeExpenses),
		OtherInsuranceAndTax: b.OtherInsuranceAndTax.Add(other.OtherInsuranceAndTax),
	}
}

// ZeroCostBreakdown returns a breakdown with all categories at zero.
// decimal.Decimal's zero value already behaves as zero; this exists for
// explicit initialization of accumulators.
func ZeroCostBreakdown() CostBreakdown {
	return CostBreakdown{
		Wages:                decimal.Zero,
		Fuel:                 decimal.Zero,
		Insurance:            decimal.Zero,
		VehicleMaintenance:   decimal.Zero,
		OfficeExpenses:       decimal.Zero,
		OtherInsuranceAndTax: decimal.Zero,
	}
}

// ComputeOperatorCost computes one operator's total cost for the report
// window. Wage uses the inclusive day count of the window for every
// operator alike (a flat-rate staffing assumption, not attendance
// tracking); fuel scales with the operator's route distance; the four
// overheads scale with the approximate month count. Cost is computed once
// per operator for the whole period; per-visit allocation happens in the
// aggregator.
func ComputeOperatorCost(periodDays, periodMonths int, totalDistanceKm float64, params CostParameters) CostBreakdown {
	days := decimal.NewFromInt(int64(periodDays))
	months := decimal.NewFromInt(int64(periodMonths))
	distance := decimal.NewFromFloat(totalDistanceKm)

	return CostBreakdown{
		Wages:                params.WagePerDay.Mul(days),
		Fuel:                 distance.Mul(params.FuelCostPerKm),
		Insurance:            params.MonthlyInsurance.Mul(months),
		VehicleMaintenance:   params.MonthlyVehicleMaintenance.Mul(months),
		OfficeExpenses:       params.MonthlyOfficeExpenses.Mul(months),
		OtherInsuranceAndTax: params.MonthlyOtherInsuranceAndTax.Mul(months),
	}
}
