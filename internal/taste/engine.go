// Package taste learns a preference profile from swipe decisions and scores
// items against it. Every function here is pure: inputs are never mutated.
package taste

import (
	"math"
	"sort"
)

const (
	cuisineStep = 10.0
	tagStep     = 8.0
	spiceStep   = 15.0

	cheapLikeBudget       = 5.0
	expensiveRejectBudget = 8.0

	spicyTag = "spicy"
)

// Weight returns the learning weight for a decision kind. Unknown kinds weigh 0.
func Weight(k DecisionKind) float64 {
	switch k {
	case Like:
		return 1
	case Reject:
		return -1
	case Wishlist:
		return 1.5
	case Skip:
		return -0.3
	default:
		return 0
	}
}

// Update returns the profile that results from applying d to p.
//
// Only a like on a cheap item (tier <= 2) and a reject on an expensive item
// (tier >= 3) move the budget score.
func Update(p PreferenceProfile, d Decision) PreferenceProfile {
	next := p.Clone()
	item := d.Item
	w := Weight(d.Kind)

	next.CuisinePreferences[item.Cuisine] = clamp(p.Cuisine(item.Cuisine) + w*cuisineStep)

	for _, tag := range item.uniqueTags() {
		next.TagPreferences[tag] = clamp(p.Tag(tag) + w*tagStep)
	}

	if item.HasTag(spicyTag) {
		next.SpicePreference = clamp(p.SpicePreference + w*spiceStep)
	}

	tier := item.EffectivePriceRange()
	switch {
	case d.Kind == Like && tier <= 2:
		next.BudgetPreference = clamp(p.BudgetPreference + cheapLikeBudget)
	case d.Kind == Reject && tier >= 3:
		next.BudgetPreference = clamp(p.BudgetPreference + expensiveRejectBudget)
	}

	next.LastUpdated = d.Timestamp
	return next
}

// Compatibility estimates user interest in item as an integer in [0,100].
func Compatibility(p PreferenceProfile, item Item) int {
	score := 50.0

	score += 0.3 * (p.Cuisine(item.Cuisine) - Neutral)

	if tags := item.uniqueTags(); len(tags) > 0 {
		var sum float64
		for _, tag := range tags {
			sum += p.Tag(tag) - Neutral
		}
		score += 0.4 * (sum / float64(len(tags)))
	}

	if item.HasTag(spicyTag) {
		score += 0.2 * (p.SpicePreference - Neutral)
	}

	tier := item.EffectivePriceRange()
	if (tier <= 2 && p.BudgetPreference > 60) || (tier >= 3 && p.BudgetPreference < 40) {
		score += 10
	}

	// Half-way values round up.
	return int(clamp(math.Floor(score + 0.5)))
}

// Preference is one named score, as listed by TopPreferences.
type Preference struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// TopPreferences returns up to limit entries ordered by score descending,
// ties broken by name.
func TopPreferences(scores map[string]float64, limit int) []Preference {
	out := make([]Preference, 0, len(scores))
	for name, score := range scores {
		out = append(out, Preference{Name: name, Score: score})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Name < out[j].Name
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
