package profitability

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Summary is the overall revenue/cost picture for one report run. Revenue
// is tracked separately per source; cost is itemized by category. Margins
// are percentages.
type Summary struct {
	MonthlyContractRevenue decimal.Decimal `json:"monthly_contract_revenue"`
	PerVisitRevenue        decimal.Decimal `json:"per_visit_revenue"`
	MaterialSaleRevenue    decimal.Decimal `json:"material_sale_revenue"`
	TotalRevenue           decimal.Decimal `json:"total_revenue"`
	CostBreakdown          CostBreakdown   `json:"cost_breakdown"`
	TotalCost              decimal.Decimal `json:"total_cost"`
	NetProfit              decimal.Decimal `json:"net_profit"`
	ProfitMargin           decimal.Decimal `json:"profit_margin"`
	VisitCount             int             `json:"visit_count"`
}

// OperatorProfitability is the per-operator breakdown: resolved visit
// revenue plus material sales against the operator's period cost.
type OperatorProfitability struct {
	OperatorID      uuid.UUID       `json:"operator_id"`
	OperatorName    string          `json:"operator_name"`
	VisitCount      int             `json:"visit_count"`
	TotalDistanceKm float64         `json:"total_distance_km"`
	Revenue         decimal.Decimal `json:"revenue"`
	Cost            decimal.Decimal `json:"cost"`
	CostBreakdown   CostBreakdown   `json:"cost_breakdown"`
	NetProfit       decimal.Decimal `json:"net_profit"`
	ProfitMargin    decimal.Decimal `json:"profit_margin"`
}

// CustomerRevenue is the per-customer revenue drill-down bucket.
type CustomerRevenue struct {
	CustomerID   uuid.UUID       `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	VisitCount   int             `json:"visit_count"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// BranchRevenue is the per-branch revenue drill-down bucket.
type BranchRevenue struct {
	BranchID   uuid.UUID       `json:"branch_id"`
	BranchName string          `json:"branch_name"`
	VisitCount int             `json:"visit_count"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// VisitAnalysisItem is one row of the per-visit profitability view. Cost is
// the operator's period cost divided evenly across that operator's visits.
type VisitAnalysisItem struct {
	VisitID         uuid.UUID       `json:"visit_id"`
	VisitDate       time.Time       `json:"visit_date"`
	OperatorID      uuid.UUID       `json:"operator_id"`
	OperatorName    string          `json:"operator_name"`
	CustomerName    string          `json:"customer_name"`
	BranchName      string          `json:"branch_name,omitempty"`
	Revenue         decimal.Decimal `json:"revenue"`
	PricingSource   PricingSource   `json:"pricing_source"`
	MaterialRevenue decimal.Decimal `json:"material_revenue"`
	AllocatedCost   decimal.Decimal `json:"allocated_cost"`
	NetProfit       decimal.Decimal `json:"net_profit"`
}

// Report is the assembled profitability report for one run. It is derived,
// ephemeral state: recomputed on every run and never treated as a source of
// truth.
type Report struct {
	PeriodStart time.Time               `json:"period_start"`
	PeriodEnd   time.Time               `json:"period_end"`
	OperatorID  *uuid.UUID              `json:"operator_id,omitempty"`
	GeneratedAt time.Time               `json:"generated_at"`
	Summary     Summary                 `json:"summary"`
	Operators   []OperatorProfitability `json:"operators"`
	Customers   []CustomerRevenue       `json:"customers"`
	Branches    []BranchRevenue         `json:"branches"`
	Visits      []VisitAnalysisItem     `json:"visits"`
}

// profitMargin returns net/revenue as a percentage, or zero when revenue is
// zero so an all-cost period never divides by zero.
func profitMargin(netProfit, revenue decimal.Decimal) decimal.Decimal {
	if revenue.IsZero() {
		return decimal.Zero
	}
	return netProfit.Div(revenue).Mul(decimal.NewFromInt(100))
}
