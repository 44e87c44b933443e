package taste

import (
	"time"

	"github.com/google/uuid"
)

// Neutral is the score assumed for any cuisine or tag the profile has not seen.
const Neutral = 50.0

// DecisionKind is the user's verdict on a presented item.
type DecisionKind string

const (
	Like     DecisionKind = "like"
	Reject   DecisionKind = "reject"
	Wishlist DecisionKind = "wishlist"
	Skip     DecisionKind = "skip"
)

// Valid reports whether k is one of the four known verdicts.
func (k DecisionKind) Valid() bool {
	switch k {
	case Like, Reject, Wishlist, Skip:
		return true
	}
	return false
}

// Location is a latitude/longitude pair in degrees.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Item is a restaurant or dish presented to the user.
type Item struct {
	ID         string   `json:"id"`
	Name       string   `json:"name,omitempty"`
	Cuisine    string   `json:"cuisine"`
	Tags       []string `json:"tags"`
	PriceRange int      `json:"priceRange,omitempty"`
	Price      float64  `json:"price,omitempty"` // raw price, used when PriceRange is absent
	Popularity float64  `json:"popularity"`
	Mood       float64  `json:"mood"`
	IsTreasure bool     `json:"isTreasure"`
	Location   Location `json:"location"`
	IsUnlocked bool     `json:"isUnlocked"`
}

// HasTag reports whether the item carries tag.
func (it Item) HasTag(tag string) bool {
	for _, t := range it.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// uniqueTags returns the item's tags with duplicates removed, in first-seen order.
func (it Item) uniqueTags() []string {
	seen := make(map[string]bool, len(it.Tags))
	out := make([]string, 0, len(it.Tags))
	for _, t := range it.Tags {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// EffectivePriceRange returns the item's price tier in 1..4. A missing tier
// is derived from the raw price.
func (it Item) EffectivePriceRange() int {
	if it.PriceRange == 0 {
		return PriceRangeFor(it.Price)
	}
	return NormalizePriceRange(it.PriceRange)
}

// PriceRangeFor maps a raw price to a tier: <=10 -> 1, <=25 -> 2, <=50 -> 3, else 4.
func PriceRangeFor(price float64) int {
	switch {
	case price <= 10:
		return 1
	case price <= 25:
		return 2
	case price <= 50:
		return 3
	default:
		return 4
	}
}

// NormalizePriceRange clamps a tier into 1..4.
func NormalizePriceRange(r int) int {
	if r < 1 {
		return 1
	}
	if r > 4 {
		return 4
	}
	return r
}

// Decision is one verdict on one item.
type Decision struct {
	ID        string       `json:"id"`
	Kind      DecisionKind `json:"type"`
	Item      Item         `json:"item"`
	Timestamp time.Time    `json:"timestamp"`
}

// NewDecision stamps a decision with a fresh id.
func NewDecision(kind DecisionKind, item Item, at time.Time) Decision {
	return Decision{
		ID:        uuid.NewString(),
		Kind:      kind,
		Item:      item,
		Timestamp: at,
	}
}

// PreferenceProfile is the learned taste vector. All scores live in [0,100].
type PreferenceProfile struct {
	SpicePreference    float64            `json:"spicePreference"`
	BudgetPreference   float64            `json:"budgetPreference"`
	CuisinePreferences map[string]float64 `json:"cuisinePreferences"`
	TagPreferences     map[string]float64 `json:"tagPreferences"`
	LastUpdated        time.Time          `json:"lastUpdated"`
}

// DefaultProfile returns the neutral profile used on first access and on reset.
func DefaultProfile(now time.Time) PreferenceProfile {
	return PreferenceProfile{
		SpicePreference:    Neutral,
		BudgetPreference:   Neutral,
		CuisinePreferences: map[string]float64{},
		TagPreferences:     map[string]float64{},
		LastUpdated:        now,
	}
}

// Clone returns a deep copy so callers can patch it without touching p.
func (p PreferenceProfile) Clone() PreferenceProfile {
	out := p
	out.CuisinePreferences = make(map[string]float64, len(p.CuisinePreferences))
	for k, v := range p.CuisinePreferences {
		out.CuisinePreferences[k] = v
	}
	out.TagPreferences = make(map[string]float64, len(p.TagPreferences))
	for k, v := range p.TagPreferences {
		out.TagPreferences[k] = v
	}
	return out
}

// Cuisine returns the stored score for a cuisine, or Neutral when unseen.
func (p PreferenceProfile) Cuisine(name string) float64 {
	if v, ok := p.CuisinePreferences[name]; ok {
		return v
	}
	return Neutral
}

// Tag returns the stored score for a tag, or Neutral when unseen.
func (p PreferenceProfile) Tag(name string) float64 {
	if v, ok := p.TagPreferences[name]; ok {
		return v
	}
	return Neutral
}

// Sanitize returns a copy with nil maps replaced and every score clamped.
// Used on profiles read back from storage.
func (p PreferenceProfile) Sanitize() PreferenceProfile {
	out := p.Clone()
	out.SpicePreference = clamp(out.SpicePreference)
	out.BudgetPreference = clamp(out.BudgetPreference)
	for k, v := range out.CuisinePreferences {
		out.CuisinePreferences[k] = clamp(v)
	}
	for k, v := range out.TagPreferences {
		out.TagPreferences[k] = clamp(v)
	}
	return out
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
