package safety

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/samirrijal/saferoute/internal/core/domain"
)

var routeNames = []string{"Primary Route", "Alternative Route", "Scenic Route"}

// RouteName returns the display name for the candidate at index i.
func RouteName(i int) string {
	if i >= 0 && i < len(routeNames) {
		return routeNames[i]
	}
	return fmt.Sprintf("Route %d", i+1)
}

// Rank scores every candidate and returns them safest first.
// Names and IDs follow input order, not final rank.
func Rank(candidates []domain.PathCandidate, origin, destination domain.Location) domain.RoutePlan {
	routes := make([]domain.ScoredRoute, 0, len(candidates))
	for i, c := range candidates {
		score := Score(c.Path)
		routes = append(routes, domain.ScoredRoute{
			ID:            fmt.Sprintf("route-%d", i),
			Name:          RouteName(i),
			Profile:       c.Profile,
			Coordinates:   slices.Clone(c.Path),
			TotalDistance: c.Distance,
			EstimatedTime: int(math.Round(c.Duration / 60)),
			SafetyScore:   score,
			SafetyLevel:   Level(score),
		})
	}

	SortByScore(routes)

	plan := domain.RoutePlan{
		Origin:      origin,
		Destination: destination,
		Routes:      routes,
	}
	if len(routes) > 0 {
		plan.Recommended = &plan.Routes[0]
	}
	return plan
}

// SortByScore orders routes by descending safety score. Equal scores keep
// their relative order.
func SortByScore(routes []domain.ScoredRoute) {
	sort.SliceStable(routes, func(i, j int) bool {
		return routes[i].SafetyScore > routes[j].SafetyScore
	})
}
