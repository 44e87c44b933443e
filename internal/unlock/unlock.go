// Package unlock reveals hidden catalog items once the user is close enough.
package unlock

import (
	"github.com/lazypower/tastequest/internal/energy"
	"github.com/lazypower/tastequest/internal/taste"
)

// Radius is the maximum distance, in meters, at which an item can be unlocked.
const Radius = 500.0

// Status is the outcome of an unlock attempt.
type Status string

const (
	StatusUnlocked        Status = "unlocked"
	StatusAlreadyUnlocked Status = "already_unlocked"
	StatusTooFar          Status = "too_far"
)

// Result carries the post-attempt registry and stats. When Status is not
// StatusUnlocked both equal the inputs.
type Result struct {
	Status   Status              `json:"status"`
	Registry Registry            `json:"registry"`
	Stats    energy.SessionStats `json:"stats"`
	Granted  float64             `json:"granted"`
	Distance float64             `json:"distance"`
}

// Changed reports whether the attempt produced new state to persist.
func (r Result) Changed() bool { return r.Status == StatusUnlocked }

// Attempt tries to unlock item for a user distance meters away.
//
// Unlocking is idempotent: an item already in the registry, or already flagged
// unlocked by its source, yields StatusAlreadyUnlocked with no grant.
func Attempt(reg Registry, stats energy.SessionStats, item taste.Item, distance float64) Result {
	res := Result{
		Registry: reg,
		Stats:    stats,
		Distance: distance,
	}

	switch {
	case item.IsUnlocked || reg.Contains(item.ID):
		res.Status = StatusAlreadyUnlocked
	case distance > Radius:
		res.Status = StatusTooFar
	default:
		res.Status = StatusUnlocked
		res.Registry = reg.Add(item.ID)
		res.Granted = energy.UnlockReward(item.IsTreasure)
		next := energy.Grant(stats, res.Granted)
		if item.IsTreasure {
			next.TreasuresFound++
		}
		res.Stats = next
	}
	return res
}

// Unlockable reports whether a locked item is within reach.
func Unlockable(item taste.Item, distance float64) bool {
	return !item.IsUnlocked && distance <= Radius
}
