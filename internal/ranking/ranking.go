// Package ranking orders catalog items by how far they are from the user.
package ranking

import (
	"math"
	"sort"

	"github.com/lazypower/tastequest/internal/taste"
)

// MetersPerDegree scales the longitude delta in Distance.
const MetersPerDegree = 111000.0

// Distance returns the planar approximation |dLat| + |dLon| * 111000, in meters.
//
// This is a planar approximation, not a geodesic distance.
func Distance(a, b taste.Location) float64 {
	return math.Abs(a.Latitude-b.Latitude) + math.Abs(a.Longitude-b.Longitude)*MetersPerDegree
}

// Ranked pairs an item with its distance from the ranking origin.
type Ranked struct {
	Item     taste.Item `json:"item"`
	Distance float64    `json:"distance"`
}

// Rank returns items ordered by ascending distance from origin. Items at equal
// distance keep their input order.
func Rank(items []taste.Item, origin taste.Location) []Ranked {
	out := make([]Ranked, len(items))
	for i, it := range items {
		out[i] = Ranked{Item: it, Distance: Distance(origin, it.Location)}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Distance < out[j].Distance
	})
	return out
}

// Within returns the items no farther than radiusKm from origin, in input order.
func Within(items []taste.Item, origin taste.Location, radiusKm float64) []taste.Item {
	limit := radiusKm * 1000
	out := make([]taste.Item, 0, len(items))
	for _, it := range items {
		if Distance(origin, it.Location) <= limit {
			out = append(out, it)
		}
	}
	return out
}
