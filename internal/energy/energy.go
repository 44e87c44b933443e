// Package energy tracks the session resource that throttles decisions, along
// with the per-session counters that ride alongside it.
package energy

import (
	"github.com/lazypower/tastequest/internal/taste"
)

const (
	Max = 100.0

	DecisionCost = 1.0
	SkipCost     = 0.5

	UnlockGrant         = 10.0
	TreasureUnlockGrant = 15.0
	TreasureLikeBonus   = 5.0
)

// State is the gating state derived from the energy level.
type State int

const (
	Available State = iota
	Exhausted
)

func (s State) String() string {
	if s == Exhausted {
		return "exhausted"
	}
	return "available"
}

// SessionStats is the persisted per-user session state.
type SessionStats struct {
	Energy         float64  `json:"energy"`
	TotalDecisions int      `json:"totalDecisions"`
	TreasuresFound int      `json:"treasuresFound"`
	FavoriteIDs    []string `json:"favoriteIds"`
	WishlistIDs    []string `json:"wishlistIds"`
}

// DefaultStats returns a full energy pool with empty counters.
func DefaultStats() SessionStats {
	return SessionStats{
		Energy:      Max,
		FavoriteIDs: []string{},
		WishlistIDs: []string{},
	}
}

// Clone returns a copy that shares no slices with s.
func (s SessionStats) Clone() SessionStats {
	out := s
	out.FavoriteIDs = append([]string{}, s.FavoriteIDs...)
	out.WishlistIDs = append([]string{}, s.WishlistIDs...)
	return out
}

// State reports whether decisions are currently allowed.
func (s SessionStats) State() State {
	if s.Energy <= 0 {
		return Exhausted
	}
	return Available
}

// Sanitize clamps energy into [0, Max] and drops duplicate ids. Used on stats
// read back from storage.
func (s SessionStats) Sanitize() SessionStats {
	out := s.Clone()
	out.Energy = clamp(out.Energy)
	out.FavoriteIDs = dedupe(out.FavoriteIDs)
	out.WishlistIDs = dedupe(out.WishlistIDs)
	if out.TotalDecisions < 0 {
		out.TotalDecisions = 0
	}
	if out.TreasuresFound < 0 {
		out.TreasuresFound = 0
	}
	return out
}

// Cost returns the energy charged for a decision kind.
func Cost(k taste.DecisionKind) float64 {
	if k == taste.Skip {
		return SkipCost
	}
	return DecisionCost
}

// Apply charges a decision against s and records it. When s is exhausted the
// decision is refused: ok is false and the returned stats equal s.
func Apply(s SessionStats, k taste.DecisionKind, item taste.Item) (next SessionStats, ok bool) {
	if s.State() == Exhausted {
		return s, false
	}

	next = s.Clone()
	next.Energy = clamp(next.Energy - Cost(k))
	next.TotalDecisions++

	switch k {
	case taste.Like:
		next.FavoriteIDs = addID(next.FavoriteIDs, item.ID)
		if item.IsTreasure {
			next.TreasuresFound++
			next.Energy = clamp(next.Energy + TreasureLikeBonus)
		}
	case taste.Wishlist:
		next.WishlistIDs = addID(next.WishlistIDs, item.ID)
	}
	return next, true
}

// Grant credits amount to the pool, capped at Max.
func Grant(s SessionStats, amount float64) SessionStats {
	next := s.Clone()
	next.Energy = clamp(next.Energy + amount)
	return next
}

// UnlockReward returns the energy granted for unlocking an item.
func UnlockReward(treasure bool) float64 {
	if treasure {
		return TreasureUnlockGrant
	}
	return UnlockGrant
}

// AddFavorite records id as a favorite without charging energy.
func AddFavorite(s SessionStats, id string) SessionStats {
	next := s.Clone()
	next.FavoriteIDs = addID(next.FavoriteIDs, id)
	return next
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > Max {
		return Max
	}
	return v
}

func addID(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = addID(out, id)
	}
	return out
}
