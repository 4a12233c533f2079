package profitability

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func baseParams() CostParameters {
	return CostParameters{
		FuelCostPerKm:               dec("2"),
		WagePerDay:                  dec("100"),
		MonthlyInsurance:            dec("500"),
		MonthlyVehicleMaintenance:   dec("250"),
		MonthlyOfficeExpenses:       dec("1000"),
		MonthlyOtherInsuranceAndTax: dec("150"),
	}
}

func TestComputeOperatorCost_SumsAllSixTerms(t *testing.T) {
	// 30 inclusive days, 1 month, 100 km.
	cost := ComputeOperatorCost(30, 1, 100, baseParams())

	assert.True(t, dec("3000").Equal(cost.Wages))
	assert.True(t, dec("200").Equal(cost.Fuel))
	assert.True(t, dec("500").Equal(cost.Insurance))
	assert.True(t, dec("250").Equal(cost.VehicleMaintenance))
	assert.True(t, dec("1000").Equal(cost.OfficeExpenses))
	assert.True(t, dec("150").Equal(cost.OtherInsuranceAndTax))
	assert.True(t, dec("5100").Equal(cost.Total()))
}

func TestComputeOperatorCost_ZeroDistanceHasNoFuelCost(t *testing.T) {
	cost := ComputeOperatorCost(30, 1, 0, baseParams())
	assert.True(t, cost.Fuel.IsZero())
}

func TestComputeOperatorCost_MonotonicInEveryParameter(t *testing.T) {
	base := ComputeOperatorCost(30, 1, 100, baseParams()).Total()

	bump := dec("10")
	variants := []struct {
		name   string
		params CostParameters
	}{
		{"fuel_cost_per_km", func() CostParameters { p := baseParams(); p.FuelCostPerKm = p.FuelCostPerKm.Add(bump); return p }()},
		{"wage_per_day", func() CostParameters { p := baseParams(); p.WagePerDay = p.WagePerDay.Add(bump); return p }()},
		{"monthly_insurance", func() CostParameters { p := baseParams(); p.MonthlyInsurance = p.MonthlyInsurance.Add(bump); return p }()},
		{"monthly_vehicle_maintenance", func() CostParameters {
			p := baseParams()
			p.MonthlyVehicleMaintenance = p.MonthlyVehicleMaintenance.Add(bump)
			return p
		}()},
		{"monthly_office_expenses", func() CostParameters { p := baseParams(); p.MonthlyOfficeExpenses = p.MonthlyOfficeExpenses.Add(bump); return p }()},
		{"monthly_other_insurance_and_tax", func() CostParameters {
			p := baseParams()
			p.MonthlyOtherInsuranceAndTax = p.MonthlyOtherInsuranceAndTax.Add(bump)
			return p
		}()},
	}

	for _, tt := range variants {
		t.Run(tt.name, func(t *testing.T) {
			total := ComputeOperatorCost(30, 1, 100, tt.params).Total()
			assert.True(t, total.GreaterThanOrEqual(base),
				"raising %s must never lower total cost", tt.name)
		})
	}
}

func TestCostParameters_Validate(t *testing.T) {
	assert.NoError(t, baseParams().Validate())

	negative := baseParams()
	negative.FuelCostPerKm = dec("-1")
	assert.Error(t, negative.Validate())

	zero := CostParameters{
		FuelCostPerKm:               decimal.Zero,
		WagePerDay:                  decimal.Zero,
		MonthlyInsurance:            decimal.Zero,
		MonthlyVehicleMaintenance:   decimal.Zero,
		MonthlyOfficeExpenses:       decimal.Zero,
		MonthlyOtherInsuranceAndTax: decimal.Zero,
	}
	assert.NoError(t, zero.Validate())
}

func TestReportFilter_PeriodDays(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected int
	}{
		{
			name:     "single day window",
			start:    time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
			end:      time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
			expected: 1,
		},
		{
			name:     "full month of may",
			start:    time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
			end:      time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC),
			expected: 31,
		},
		{
			name:     "two full months",
			start:    time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
			end:      time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
			expected: 61,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := ReportFilter{StartDate: tt.start, EndDate: tt.end}
			assert.Equal(t, tt.expected, f.PeriodDays())
		})
	}
}

func TestReportFilter_PeriodMonths(t *testing.T) {
	// ceil(days/30), not calendar months.
	tests := []struct {
		days     int
		expected int
	}{
		{1, 1},
		{30, 1},
		{31, 2},
		{60, 2},
		{61, 3},
	}

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, tt := range tests {
		f := ReportFilter{StartDate: start, EndDate: start.AddDate(0, 0, tt.days-1)}
		assert.Equal(t, tt.days, f.PeriodDays())
		assert.Equal(t, tt.expected, f.PeriodMonths())
	}
}

func TestReportFilter_Validate(t *testing.T) {
	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, ReportFilter{StartDate: start, EndDate: start}.Validate())
	assert.Error(t, ReportFilter{StartDate: start, EndDate: start.AddDate(0, 0, -1)}.Validate())
}
