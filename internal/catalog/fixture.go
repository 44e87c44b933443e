package catalog

import (
	"context"

	"github.com/lazypower/tastequest/internal/taste"
)

// Fixture serves a small fixed catalog placed around the caller's position.
type Fixture struct{}

// Nearby implements Source. radiusKm is ignored; every fixture item is close.
func (Fixture) Nearby(_ context.Context, at taste.Location, _ float64) ([]taste.Item, error) {
	near := func(dLat, dLon float64) taste.Location {
		return taste.Location{Latitude: at.Latitude + dLat, Longitude: at.Longitude + dLon}
	}
	return []taste.Item{
		{
			ID: "1", Name: "McDonald's", Cuisine: "Fast Food", PriceRange: 1,
			Tags: []string{"burgers", "fast-food"}, Location: near(0.001, 0.001),
			Popularity: 85, Mood: 75, IsUnlocked: true,
		},
		{
			ID: "2", Name: "Starbucks", Cuisine: "Coffee", PriceRange: 2,
			Tags: []string{"coffee", "casual"}, Location: near(-0.001, 0.002),
			Popularity: 90, Mood: 80, IsUnlocked: true,
		},
		{
			ID: "3", Name: "Pizza Hut", Cuisine: "Italian", PriceRange: 2,
			Tags: []string{"pizza", "italian"}, Location: near(0.002, -0.001),
			Popularity: 78, Mood: 85, IsUnlocked: true, IsTreasure: true,
		},
		{
			ID: "4", Name: "KFC", Cuisine: "Fast Food", PriceRange: 1,
			Tags: []string{"chicken", "fast-food"}, Location: near(-0.002, -0.002),
			Popularity: 82, Mood: 70, IsUnlocked: true,
		},
		{
			ID: "5", Name: "Subway", Cuisine: "Fast Food", PriceRange: 1,
			Tags: []string{"sandwiches", "healthy"}, Location: near(0.003, 0.003),
			Popularity: 75, Mood: 65, IsUnlocked: true,
		},
	}, nil
}
