package profitability

import (
	"sort"

	"github.com/fieldops/backend/internal/domain/shared/geo"
	"github.com/google/uuid"
)

// OperatorRouteDistances computes each operator's travelled distance over
// the period. Visits are ordered ascending by visit date and only visits
// whose branch carries both coordinates contribute a stop; a visit without
// coordinates is skipped without breaking the chain, so the next located
// visit is measured against the last located one.
func OperatorRouteDistances(visits []Visit) map[uuid.UUID]float64 {
	byOperator := make(map[uuid.UUID][]Visit)
	for _, v := range visits {
		byOperator[v.OperatorID] = append(byOperator[v.OperatorID], v)
	}

	distances := make(map[uuid.UUID]float64, len(byOperator))
	for operatorID, operatorVisits := range byOperator {
		sort.Slice(operatorVisits, func(i, j int) bool {
			return operatorVisits[i].VisitDate.Before(operatorVisits[j].VisitDate)
		})

		stops := make([]geo.Point, 0, len(operatorVisits))
		for _, v := range operatorVisits {
			if !v.HasCoordinates() {
				continue
			}
			stops = append(stops, geo.Point{Lat: *v.BranchLatitude, Lon: *v.BranchLongitude})
		}

		distances[operatorID] = geo.RouteDistance(stops)
	}

	return distances
}
