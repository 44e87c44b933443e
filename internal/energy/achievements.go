package energy

// Achievement is a milestone unlocked by session counters.
type Achievement struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

var milestones = []struct {
	Achievement
	reached func(SessionStats) bool
}{
	{Achievement{"Swipe Master", "🎯"}, func(s SessionStats) bool { return s.TotalDecisions >= 50 }},
	{Achievement{"Treasure Hunter", "💎"}, func(s SessionStats) bool { return s.TreasuresFound >= 5 }},
	{Achievement{"Food Lover", "❤️"}, func(s SessionStats) bool { return len(s.FavoriteIDs) >= 10 }},
	{Achievement{"Wishlist Collector", "⭐"}, func(s SessionStats) bool { return len(s.WishlistIDs) >= 15 }},
	{Achievement{"Swipe Legend", "🏆"}, func(s SessionStats) bool { return s.TotalDecisions >= 100 }},
}

// Achievements lists every milestone s has reached, in a fixed order.
func Achievements(s SessionStats) []Achievement {
	out := []Achievement{}
	for _, m := range milestones {
		if m.reached(s) {
			out = append(out, m.Achievement)
		}
	}
	return out
}
