package handler

import (
	"time"

	"github.com/fieldops/backend/internal/application/profitability"
	domain "github.com/fieldops/backend/internal/domain/profitability"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// dateLayout is the wire format for report period dates.
const dateLayout = "2006-01-02"

// ===================== Request DTOs =====================

// CostParametersRequest carries the per-run cost configuration. Amounts are
// strings so values like "12.50" survive the trip without float rounding.
type CostParametersRequest struct {
	FuelCostPerKm               string `json:"fuel_cost_per_km" binding:"required,money"`
	WagePerDay                  string `json:"wage_per_day" binding:"required,money"`
	MonthlyInsurance            string `json:"monthly_insurance" binding:"required,money"`
	MonthlyVehicleMaintenance   string `json:"monthly_vehicle_maintenance" binding:"required,money"`
	MonthlyOfficeExpenses       string `json:"monthly_office_expenses" binding:"required,money"`
	MonthlyOtherInsuranceAndTax string `json:"monthly_other_insurance_and_tax" binding:"required,money"`
}

// AnalyzeRequest is the request body for report runs and snapshot creation.
type AnalyzeRequest struct {
	StartDate      string                `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate        string                `json:"end_date" binding:"required,datetime=2006-01-02"`
	OperatorID     string                `json:"operator_id" binding:"omitempty,uuid"`
	CostParameters CostParametersRequest `json:"cost_parameters" binding:"required"`
}

// toServiceRequest converts the wire request into the application request.
// Validation tags guarantee the parses below succeed.
func (r AnalyzeRequest) toServiceRequest() profitability.AnalyzeRequest {
	start, _ := time.Parse(dateLayout, r.StartDate)
	end, _ := time.Parse(dateLayout, r.EndDate)

	filter := domain.ReportFilter{StartDate: start, EndDate: end}
	if r.OperatorID != "" {
		operatorID, _ := uuid.Parse(r.OperatorID)
		filter.OperatorID = &operatorID
	}

	return profitability.AnalyzeRequest{
		Filter: filter,
		Params: domain.CostParameters{
			FuelCostPerKm:               mustDecimal(r.CostParameters.FuelCostPerKm),
			WagePerDay:                  mustDecimal(r.CostParameters.WagePerDay),
			MonthlyInsurance:            mustDecimal(r.CostParameters.MonthlyInsurance),
			MonthlyVehicleMaintenance:   mustDecimal(r.CostParameters.MonthlyVehicleMaintenance),
			MonthlyOfficeExpenses:       mustDecimal(r.CostParameters.MonthlyOfficeExpenses),
			MonthlyOtherInsuranceAndTax: mustDecimal(r.CostParameters.MonthlyOtherInsuranceAndTax),
		},
	}
}

func mustDecimal(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// ===================== Response DTOs =====================

// CostBreakdownResponse splits a cost figure into its six components.
type CostBreakdownResponse struct {
	Wages                float64 `json:"wages"`
	Fuel                 float64 `json:"fuel"`
	Insurance            float64 `json:"insurance"`
	VehicleMaintenance   float64 `json:"vehicle_maintenance"`
	OfficeExpenses       float64 `json:"office_expenses"`
	OtherInsuranceAndTax float64 `json:"other_insurance_and_tax"`
}

// SummaryResponse is the headline block of a report.
type SummaryResponse struct {
	MonthlyContractRevenue float64               `json:"monthly_contract_revenue"`
	PerVisitRevenue        float64               `json:"per_visit_revenue"`
	MaterialSaleRevenue    float64               `json:"material_sale_revenue"`
	TotalRevenue           float64               `json:"total_revenue"`
	CostBreakdown          CostBreakdownResponse `json:"cost_breakdown"`
	TotalCost              float64               `json:"total_cost"`
	NetProfit              float64               `json:"net_profit"`
	ProfitMargin           float64               `json:"profit_margin"`
	VisitCount             int                   `json:"visit_count"`
}

// OperatorProfitabilityResponse is one row of the per-operator view.
type OperatorProfitabilityResponse struct {
	OperatorID      string                `json:"operator_id"`
	OperatorName    string                `json:"operator_name"`
	VisitCount      int                   `json:"visit_count"`
	TotalDistanceKm float64               `json:"total_distance_km"`
	Revenue         float64               `json:"revenue"`
	Cost            float64               `json:"cost"`
	CostBreakdown   CostBreakdownResponse `json:"cost_breakdown"`
	NetProfit       float64               `json:"net_profit"`
	ProfitMargin    float64               `json:"profit_margin"`
}

// CustomerRevenueResponse is one row of the per-customer view.
type CustomerRevenueResponse struct {
	CustomerID   string  `json:"customer_id"`
	CustomerName string  `json:"customer_name"`
	VisitCount   int     `json:"visit_count"`
	Revenue      float64 `json:"revenue"`
}

// BranchRevenueResponse is one row of the per-branch view.
type BranchRevenueResponse struct {
	BranchID   string  `json:"branch_id"`
	BranchName string  `json:"branch_name"`
	VisitCount int     `json:"visit_count"`
	Revenue    float64 `json:"revenue"`
}

// VisitAnalysisResponse is one row of the per-visit view.
type VisitAnalysisResponse struct {
	VisitID         string  `json:"visit_id"`
	VisitDate       string  `json:"visit_date"`
	OperatorID      string  `json:"operator_id"`
	OperatorName    string  `json:"operator_name"`
	CustomerName    string  `json:"customer_name"`
	BranchName      string  `json:"branch_name,omitempty"`
	Revenue         float64 `json:"revenue"`
	PricingSource   string  `json:"pricing_source"`
	MaterialRevenue float64 `json:"material_revenue"`
	AllocatedCost   float64 `json:"allocated_cost"`
	NetProfit       float64 `json:"net_profit"`
}

// ReportResponse is the full report payload.
type ReportResponse struct {
	PeriodStart string                          `json:"period_start"`
	PeriodEnd   string                          `json:"period_end"`
	OperatorID  string                          `json:"operator_id,omitempty"`
	GeneratedAt string                          `json:"generated_at"`
	Summary     SummaryResponse                 `json:"summary"`
	Operators   []OperatorProfitabilityResponse `json:"operators"`
	Customers   []CustomerRevenueResponse       `json:"customers"`
	Branches    []BranchRevenueResponse         `json:"branches"`
	Visits      []VisitAnalysisResponse         `json:"visits"`
}

// SnapshotResponse is one persisted snapshot. Report is omitted on listing.
type SnapshotResponse struct {
	ID           string          `json:"id"`
	PeriodStart  string          `json:"period_start"`
	PeriodEnd    string          `json:"period_end"`
	OperatorID   string          `json:"operator_id,omitempty"`
	TotalRevenue float64         `json:"total_revenue"`
	TotalCost    float64         `json:"total_cost"`
	NetProfit    float64         `json:"net_profit"`
	CreatedAt    string          `json:"created_at"`
	Report       *ReportResponse `json:"report,omitempty"`
}

// ===================== Mapping =====================

func toCostBreakdownResponse(cb domain.CostBreakdown) CostBreakdownResponse {
	return CostBreakdownResponse{
		Wages:                cb.Wages.InexactFloat64(),
		Fuel:                 cb.Fuel.InexactFloat64(),
		Insurance:            cb.Insurance.InexactFloat64(),
		VehicleMaintenance:   cb.VehicleMaintenance.InexactFloat64(),
		OfficeExpenses:       cb.OfficeExpenses.InexactFloat64(),
		OtherInsuranceAndTax: cb.OtherInsuranceAndTax.InexactFloat64(),
	}
}

func toReportResponse(report *domain.Report) ReportResponse {
	resp := ReportResponse{
		PeriodStart: report.PeriodStart.Format(dateLayout),
		PeriodEnd:   report.PeriodEnd.Format(dateLayout),
		GeneratedAt: report.GeneratedAt.Format(time.RFC3339),
		Summary: SummaryResponse{
			MonthlyContractRevenue: report.Summary.MonthlyContractRevenue.InexactFloat64(),
			PerVisitRevenue:        report.Summary.PerVisitRevenue.InexactFloat64(),
			MaterialSaleRevenue:    report.Summary.MaterialSaleRevenue.InexactFloat64(),
			TotalRevenue:           report.Summary.TotalRevenue.InexactFloat64(),
			CostBreakdown:          toCostBreakdownResponse(report.Summary.CostBreakdown),
			TotalCost:              report.Summary.TotalCost.InexactFloat64(),
			NetProfit:              report.Summary.NetProfit.InexactFloat64(),
			ProfitMargin:           report.Summary.ProfitMargin.InexactFloat64(),
			VisitCount:             report.Summary.VisitCount,
		},
		Operators: make([]OperatorProfitabilityResponse, 0, len(report.Operators)),
		Customers: make([]CustomerRevenueResponse, 0, len(report.Customers)),
		Branches:  make([]BranchRevenueResponse, 0, len(report.Branches)),
		Visits:    make([]VisitAnalysisResponse, 0, len(report.Visits)),
	}
	if report.OperatorID != nil {
		resp.OperatorID = report.OperatorID.String()
	}

	for _, op := range report.Operators {
		resp.Operators = append(resp.Operators, OperatorProfitabilityResponse{
			OperatorID:      op.OperatorID.String(),
			OperatorName:    op.OperatorName,
			VisitCount:      op.VisitCount,
			TotalDistanceKm: op.TotalDistanceKm,
			Revenue:         op.Revenue.InexactFloat64(),
			Cost:            op.Cost.InexactFloat64(),
			CostBreakdown:   toCostBreakdownResponse(op.CostBreakdown),
			NetProfit:       op.NetProfit.InexactFloat64(),
			ProfitMargin:    op.ProfitMargin.InexactFloat64(),
		})
	}
	for _, cust := range report.Customers {
		resp.Customers = append(resp.Customers, CustomerRevenueResponse{
			CustomerID:   cust.CustomerID.String(),
			CustomerName: cust.CustomerName,
			VisitCount:   cust.VisitCount,
			Revenue:      cust.Revenue.InexactFloat64(),
		})
	}
	for _, branch := range report.Branches {
		resp.Branches = append(resp.Branches, BranchRevenueResponse{
			BranchID:   branch.BranchID.String(),
			BranchName: branch.BranchName,
			VisitCount: branch.VisitCount,
			Revenue:    branch.Revenue.InexactFloat64(),
		})
	}
	for _, visit := range report.Visits {
		resp.Visits = append(resp.Visits, VisitAnalysisResponse{
			VisitID:         visit.VisitID.String(),
			VisitDate:       visit.VisitDate.Format(dateLayout),
			OperatorID:      visit.OperatorID.String(),
			OperatorName:    visit.OperatorName,
			CustomerName:    visit.CustomerName,
			BranchName:      visit.BranchName,
			Revenue:         visit.Revenue.InexactFloat64(),
			PricingSource:   string(visit.PricingSource),
			MaterialRevenue: visit.MaterialRevenue.InexactFloat64(),
			AllocatedCost:   visit.AllocatedCost.InexactFloat64(),
			NetProfit:       visit.NetProfit.InexactFloat64(),
		})
	}
	return resp
}

func toSnapshotResponse(snapshot *domain.Snapshot) SnapshotResponse {
	resp := SnapshotResponse{
		ID:           snapshot.ID.String(),
		PeriodStart:  snapshot.PeriodStart.Format(dateLayout),
		PeriodEnd:    snapshot.PeriodEnd.Format(dateLayout),
		TotalRevenue: snapshot.TotalRevenue.InexactFloat64(),
		TotalCost:    snapshot.TotalCost.InexactFloat64(),
		NetProfit:    snapshot.NetProfit.InexactFloat64(),
		CreatedAt:    snapshot.CreatedAt.Format(time.RFC3339),
	}
	if snapshot.OperatorID != nil {
		resp.OperatorID = snapshot.OperatorID.String()
	}
	if snapshot.Report != nil {
		report := toReportResponse(snapshot.Report)
		resp.Report = &report
	}
	return resp
}
