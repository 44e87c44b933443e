// Package catalog supplies the items presented to the user.
package catalog

import (
	"context"
	"errors"

	"github.com/lazypower/tastequest/internal/taste"
)

// Radii used when requesting items, in kilometers.
const (
	DeckRadiusKm = 5.0
	MapRadiusKm  = 10.0
)

// ErrInvalidItem is returned when a source yields items that fail the schema.
var ErrInvalidItem = errors.New("invalid catalog item")

// Source returns catalog items near a location.
type Source interface {
	Nearby(ctx context.Context, at taste.Location, radiusKm float64) ([]taste.Item, error)
}

// PopularityDelta returns how much a decision moves an item's popularity.
func PopularityDelta(k taste.DecisionKind) float64 {
	switch k {
	case taste.Like:
		return 2
	case taste.Wishlist:
		return 3
	case taste.Reject:
		return -1
	case taste.Skip:
		return -0.5
	default:
		return 0
	}
}

// AdjustPopularity returns a copy of item with the decision's popularity
// change applied, clamped to [0,100].
func AdjustPopularity(item taste.Item, k taste.DecisionKind) taste.Item {
	p := item.Popularity + PopularityDelta(k)
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	item.Popularity = p
	return item
}
