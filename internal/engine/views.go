package engine

import (
	"context"

	"github.com/lazypower/tastequest/internal/catalog"
	"github.com/lazypower/tastequest/internal/ranking"
	"github.com/lazypower/tastequest/internal/taste"
	"github.com/lazypower/tastequest/internal/unlock"
)

// Card is one deck entry.
type Card struct {
	Item          taste.Item `json:"item"`
	Distance      float64    `json:"distance"`
	Compatibility int        `json:"compatibility"`
}

// Deck returns the nearby items not yet decided on this session, nearest
// first, each scored against the current profile.
func (e *Engine) Deck(ctx context.Context) []Card {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ensureLoaded(ctx)

	origin := e.locate(ctx)
	items := e.refresh(ctx, origin, catalog.DeckRadiusKm)

	cards := []Card{}
	for _, r := range ranking.Rank(items, origin) {
		if e.decided[r.Item.ID] {
			continue
		}
		cards = append(cards, Card{
			Item:          r.Item,
			Distance:      r.Distance,
			Compatibility: taste.Compatibility(e.profile, r.Item),
		})
	}
	return cards
}

// Pin is one map entry.
type Pin struct {
	Item       taste.Item `json:"item"`
	Distance   float64    `json:"distance"`
	Unlockable bool       `json:"unlockable"`
}

// MapView is the map screen: every item in range plus the origin used.
type MapView struct {
	Origin   taste.Location `json:"origin"`
	Pins     []Pin          `json:"pins"`
	Unlocked int            `json:"unlocked"`
}

// Map returns every item within the map radius, nearest first, with the
// unlock registry applied.
func (e *Engine) Map(ctx context.Context) MapView {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ensureLoaded(ctx)

	origin := e.locate(ctx)
	items := e.refresh(ctx, origin, catalog.MapRadiusKm)

	view := MapView{Origin: origin, Pins: []Pin{}}
	for _, r := range ranking.Rank(items, origin) {
		if r.Item.IsUnlocked {
			view.Unlocked++
		}
		view.Pins = append(view.Pins, Pin{
			Item:       r.Item,
			Distance:   r.Distance,
			Unlockable: unlock.Unlockable(r.Item, r.Distance),
		})
	}
	return view
}

// Summary condenses the profile for display.
type Summary struct {
	Profile     taste.PreferenceProfile `json:"profile"`
	TopCuisines []taste.Preference      `json:"topCuisines"`
	TopTags     []taste.Preference      `json:"topTags"`
}

// Summarize returns the profile together with its strongest preferences.
func (e *Engine) Summarize(ctx context.Context, limit int) Summary {
	p := e.Profile(ctx)
	return Summary{
		Profile:     p,
		TopCuisines: taste.TopPreferences(p.CuisinePreferences, limit),
		TopTags:     taste.TopPreferences(p.TagPreferences, limit),
	}
}
