package profitability

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// entityKind distinguishes the two pricing-owner levels in the visited set.
type entityKind string

const (
	entityKindCustomer entityKind = "customer"
	entityKindBranch   entityKind = "branch"
)

// entityKey is a typed key for the monthly-contract visited set. The set is
// threaded explicitly through the aggregation pass so the monthly fee is
// credited exactly once per owning entity, never once per visit.
type entityKey struct {
	Kind entityKind
	ID   uuid.UUID
}

// AggregationInput carries everything one report run needs. All fields are
// read-only to the aggregator; the output is built in fresh accumulators.
type AggregationInput struct {
	Filter             ReportFilter
	Visits             []Visit
	Pricing            PricingIndex
	Sales              []MaterialSale
	Params             CostParameters
	DistanceByOperator map[uuid.UUID]float64
}

type operatorAccumulator struct {
	id         uuid.UUID
	name       string
	visitCount int
	revenue    decimal.Decimal
}

type revenueBucket struct {
	id         uuid.UUID
	name       string
	visitCount int
	revenue    decimal.Decimal
}

// Aggregate folds the filtered visit set and the material sales into the
// final report in a single pass per source, then derives costs, allocates
// them per visit and sorts the output views. It holds no state between
// invocations.
func Aggregate(in AggregationInput) *Report {
	completed := FilterVisits(in.Filter, in.Visits)
	counts := CountVisitsPerMonth(completed)

	operators := make(map[uuid.UUID]*operatorAccumulator)
	customers := make(map[uuid.UUID]*revenueBucket)
	branches := make(map[uuid.UUID]*revenueBucket)
	visited := make(map[entityKey]struct{})
	items := make([]VisitAnalysisItem, 0, len(completed))

	summary := Summary{
		MonthlyContractRevenue: decimal.Zero,
		PerVisitRevenue:        decimal.Zero,
		MaterialSaleRevenue:    decimal.Zero,
		CostBreakdown:          ZeroCostBreakdown(),
		VisitCount:             len(completed),
	}

	// Revenue pass: resolve each visit and attribute the amount.
	for _, v := range completed {
		resolved := ResolveVisitRevenue(v, in.Pricing, counts)

		op := operatorFor(operators, v)
		op.visitCount++
		op.revenue = op.revenue.Add(resolved.Amount)

		customer := customerBucketFor(customers, v.CustomerID, v.CustomerName)
		customer.visitCount++

		var branch *revenueBucket
		if v.BranchID != nil {
			branch = branchBucketFor(branches, *v.BranchID, v.BranchName)
			branch.visitCount++
		}

		switch {
		case resolved.Source.IsMonthly():
			// The full contract fee goes to the owning entity and the
			// summary once per run; the distributed share stays with the
			// operator and the per-visit view.
			owner := monthlyOwnerKey(resolved.Source, v)
			if _, seen := visited[owner]; !seen {
				visited[owner] = struct{}{}
				summary.MonthlyContractRevenue = summary.MonthlyContractRevenue.Add(resolved.MonthlyFee)
				if owner.Kind == entityKindBranch {
					branch.revenue = branch.revenue.Add(resolved.MonthlyFee)
				} else {
					customer.revenue = customer.revenue.Add(resolved.MonthlyFee)
				}
			}
		case resolved.Source != SourceNone:
			// Per-visit revenue is visible in both drill-down views; the
			// summary sums it independently, so nothing double-counts.
			summary.PerVisitRevenue = summary.PerVisitRevenue.Add(resolved.Amount)
			customer.revenue = customer.revenue.Add(resolved.Amount)
			if branch != nil {
				branch.revenue = branch.revenue.Add(resolved.Amount)
			}
		}

		items = append(items, VisitAnalysisItem{
			VisitID:         v.ID,
			VisitDate:       v.VisitDate,
			OperatorID:      v.OperatorID,
			OperatorName:    op.name,
			CustomerName:    customer.name,
			BranchName:      v.BranchName,
			Revenue:         resolved.Amount,
			PricingSource:   resolved.Source,
			MaterialRevenue: decimal.Zero,
			AllocatedCost:   decimal.Zero,
			NetProfit:       decimal.Zero,
		})
	}

	// Material-sale pass. Sales are tied to a visit; a sale whose visit is
	// outside the filtered set is ignored.
	itemIndex := make(map[uuid.UUID]int, len(items))
	for i, item := range items {
		itemIndex[item.VisitID] = i
	}
	for _, sale := range in.Sales {
		i, ok := itemIndex[sale.VisitID]
		if !ok {
			continue
		}
		summary.MaterialSaleRevenue = summary.MaterialSaleRevenue.Add(sale.TotalAmount)

		op := operators[items[i].OperatorID]
		op.revenue = op.revenue.Add(sale.TotalAmount)

		customer := customerBucketFor(customers, sale.CustomerID, "")
		customer.revenue = customer.revenue.Add(sale.TotalAmount)
		if sale.BranchID != nil {
			branch := branchBucketFor(branches, *sale.BranchID, "")
			branch.revenue = branch.revenue.Add(sale.TotalAmount)
		}

		items[i].MaterialRevenue = items[i].MaterialRevenue.Add(sale.TotalAmount)
	}

	// Cost pass: one cost per operator for the whole window, then equal
	// allocation across that operator's visits.
	periodDays := in.Filter.PeriodDays()
	periodMonths := in.Filter.PeriodMonths()
	operatorCosts := make(map[uuid.UUID]CostBreakdown, len(operators))
	for id := range operators {
		cost := ComputeOperatorCost(periodDays, periodMonths, in.DistanceByOperator[id], in.Params)
		operatorCosts[id] = cost
		summary.CostBreakdown = summary.CostBreakdown.Add(cost)
	}

	for i := range items {
		cost := operatorCosts[items[i].OperatorID]
		visitCount := operators[items[i].OperatorID].visitCount
		allocated := cost.Total().Div(decimal.NewFromInt(int64(visitCount)))
		items[i].AllocatedCost = allocated
		items[i].NetProfit = items[i].Revenue.Add(items[i].MaterialRevenue).Sub(allocated)
	}

	summary.TotalRevenue = summary.MonthlyContractRevenue.
		Add(summary.PerVisitRevenue).
		Add(summary.MaterialSaleRevenue)
	summary.TotalCost = summary.CostBreakdown.Total()
	summary.NetProfit = summary.TotalRevenue.Sub(summary.TotalCost)
	summary.ProfitMargin = profitMargin(summary.NetProfit, summary.TotalRevenue)

	report := &Report{
		PeriodStart: in.Filter.StartDate,
		PeriodEnd:   in.Filter.EndDate,
		OperatorID:  in.Filter.OperatorID,
		GeneratedAt: time.Now().UTC(),
		Summary:     summary,
		Operators:   buildOperatorView(operators, operatorCosts, in.DistanceByOperator),
		Customers:   buildCustomerView(customers),
		Branches:    buildBranchView(branches),
		Visits:      items,
	}

	sortReport(report)
	return report
}

// FilterVisits keeps completed visits inside the inclusive window, honoring
// the optional operator filter. The application layer uses the same filter
// when building operator routes, so distance reflects exactly the visits
// that participate in the report.
func FilterVisits(filter ReportFilter, visits []Visit) []Visit {
	result := make([]Visit, 0, len(visits))
	for _, v := range visits {
		if !v.IsCompleted() || !filter.Contains(v.VisitDate) {
			continue
		}
		if filter.OperatorID != nil && v.OperatorID != *filter.OperatorID {
			continue
		}
		result = append(result, v)
	}
	return result
}

func monthlyOwnerKey(source PricingSource, v Visit) entityKey {
	if source == SourceBranchMonthly {
		return entityKey{Kind: entityKindBranch, ID: *v.BranchID}
	}
	return entityKey{Kind: entityKindCustomer, ID: v.CustomerID}
}

func operatorFor(operators map[uuid.UUID]*operatorAccumulator, v Visit) *operatorAccumulator {
	op, ok := operators[v.OperatorID]
	if !ok {
		op = &operatorAccumulator{id: v.OperatorID, name: nameOrUnknown(v.OperatorName), revenue: decimal.Zero}
		operators[v.OperatorID] = op
	}
	return op
}

func customerBucketFor(customers map[uuid.UUID]*revenueBucket, id uuid.UUID, name string) *revenueBucket {
	b, ok := customers[id]
	if !ok {
		b = &revenueBucket{id: id, name: nameOrUnknown(name), revenue: decimal.Zero}
		customers[id] = b
	}
	if b.name == UnknownEntityName && name != "" {
		b.name = name
	}
	return b
}

func branchBucketFor(branches map[uuid.UUID]*revenueBucket, id uuid.UUID, name string) *revenueBucket {
	b, ok := branches[id]
	if !ok {
		b = &revenueBucket{id: id, name: nameOrUnknown(name), revenue: decimal.Zero}
		branches[id] = b
	}
	if b.name == UnknownEntityName && name != "" {
		b.name = name
	}
	return b
}

func nameOrUnknown(name string) string {
	if name == "" {
		return UnknownEntityName
	}
	return name
}

func buildOperatorView(
	operators map[uuid.UUID]*operatorAccumulator,
	costs map[uuid.UUID]CostBreakdown,
	distances map[uuid.UUID]float64,
) []OperatorProfitability {
	view := make([]OperatorProfitability, 0, len(operators))
	for id, op := range operators {
		cost := costs[id]
		total := cost.Total()
		netProfit := op.revenue.Sub(total)
		view = append(view, OperatorProfitability{
			OperatorID:      id,
			OperatorName:    op.name,
			VisitCount:      op.visitCount,
			TotalDistanceKm: distances[id],
			Revenue:         op.revenue,
			Cost:            total,
			CostBreakdown:   cost,
			NetProfit:       netProfit,
			ProfitMargin:    profitMargin(netProfit, op.revenue),
		})
	}
	return view
}

func buildCustomerView(customers map[uuid.UUID]*revenueBucket) []CustomerRevenue {
	view := make([]CustomerRevenue, 0, len(customers))
	for _, b := range customers {
		view = append(view, CustomerRevenue{
			CustomerID:   b.id,
			CustomerName: b.name,
			VisitCount:   b.visitCount,
			Revenue:      b.revenue,
		})
	}
	return view
}

func buildBranchView(branches map[uuid.UUID]*revenueBucket) []BranchRevenue {
	view := make([]BranchRevenue, 0, len(branches))
	for _, b := range branches {
		view = append(view, BranchRevenue{
			BranchID:   b.id,
			BranchName: b.name,
			VisitCount: b.visitCount,
			Revenue:    b.revenue,
		})
	}
	return view
}

// sortReport orders the views for presentation: operators by net profit
// descending, customer and branch revenue descending, per-visit analysis by
// date descending. Ties fall back to the id so output is deterministic.
func sortReport(r *Report) {
	sort.Slice(r.Operators, func(i, j int) bool {
		if !r.Operators[i].NetProfit.Equal(r.Operators[j].NetProfit) {
			return r.Operators[i].NetProfit.GreaterThan(r.Operators[j].NetProfit)
		}
		return r.Operators[i].OperatorID.String() < r.Operators[j].OperatorID.String()
	})
	sort.Slice(r.Customers, func(i, j int) bool {
		if !r.Customers[i].Revenue.Equal(r.Customers[j].Revenue) {
			return r.Customers[i].Revenue.GreaterThan(r.Customers[j].Revenue)
		}
		return r.Customers[i].CustomerID.String() < r.Customers[j].CustomerID.String()
	})
	sort.Slice(r.Branches, func(i, j int) bool {
		if !r.Branches[i].Revenue.Equal(r.Branches[j].Revenue) {
			return r.Branches[i].Revenue.GreaterThan(r.Branches[j].Revenue)
		}
		return r.Branches[i].BranchID.String() < r.Branches[j].BranchID.String()
	})
	sort.Slice(r.Visits, func(i, j int) bool {
		if !r.Visits[i].VisitDate.Equal(r.Visits[j].VisitDate) {
			return r.Visits[i].VisitDate.After(r.Visits[j].VisitDate)
		}
		return r.Visits[i].VisitID.String() < r.Visits[j].VisitID.String()
	})
}
