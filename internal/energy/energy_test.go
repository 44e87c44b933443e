package energy

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/lazypower/tastequest/internal/taste"
)

func TestDefaultStats(t *testing.T) {
	s := DefaultStats()
	if s.Energy != 100 {
		t.Errorf("Energy = %v, want 100", s.Energy)
	}
	if s.State() != Available {
		t.Errorf("State = %v, want available", s.State())
	}
	if s.FavoriteIDs == nil || s.WishlistIDs == nil {
		t.Error("id sets should be non-nil")
	}
}

func TestApplyCosts(t *testing.T) {
	tests := []struct {
		kind taste.DecisionKind
		want float64
	}{
		{taste.Like, 99},
		{taste.Reject, 99},
		{taste.Wishlist, 99},
		{taste.Skip, 99.5},
	}
	for _, tt := range tests {
		got, ok := Apply(DefaultStats(), tt.kind, taste.Item{ID: "1"})
		if !ok {
			t.Fatalf("%s: refused with full energy", tt.kind)
		}
		if got.Energy != tt.want {
			t.Errorf("%s: Energy = %v, want %v", tt.kind, got.Energy, tt.want)
		}
		if got.TotalDecisions != 1 {
			t.Errorf("%s: TotalDecisions = %d, want 1", tt.kind, got.TotalDecisions)
		}
	}
}

func TestApplyFloorsAtZero(t *testing.T) {
	s := DefaultStats()
	s.Energy = 0.5

	got, ok := Apply(s, taste.Like, taste.Item{ID: "1"})
	if !ok {
		t.Fatal("0.5 energy should still accept a decision")
	}
	if got.Energy != 0 {
		t.Errorf("Energy = %v, want 0", got.Energy)
	}
	if got.State() != Exhausted {
		t.Errorf("State = %v, want exhausted", got.State())
	}
}

func TestApplyExhaustedIsNoOp(t *testing.T) {
	s := DefaultStats()
	s.Energy = 0
	s.TotalDecisions = 7

	for _, k := range []taste.DecisionKind{taste.Like, taste.Reject, taste.Wishlist, taste.Skip} {
		got, ok := Apply(s, k, taste.Item{ID: "x", IsTreasure: true})
		if ok {
			t.Errorf("%s: accepted while exhausted", k)
		}
		if got.TotalDecisions != 7 || got.Energy != 0 || len(got.FavoriteIDs) != 0 || len(got.WishlistIDs) != 0 {
			t.Errorf("%s: stats changed while exhausted: %+v", k, got)
		}
	}
}

func TestApplyBookkeeping(t *testing.T) {
	s := DefaultStats()
	s, _ = Apply(s, taste.Like, taste.Item{ID: "a"})
	s, _ = Apply(s, taste.Like, taste.Item{ID: "a"})
	s, _ = Apply(s, taste.Wishlist, taste.Item{ID: "b"})
	s, _ = Apply(s, taste.Reject, taste.Item{ID: "c"})

	if len(s.FavoriteIDs) != 1 || s.FavoriteIDs[0] != "a" {
		t.Errorf("FavoriteIDs = %v, want [a]", s.FavoriteIDs)
	}
	if len(s.WishlistIDs) != 1 || s.WishlistIDs[0] != "b" {
		t.Errorf("WishlistIDs = %v, want [b]", s.WishlistIDs)
	}
	if s.TotalDecisions != 4 {
		t.Errorf("TotalDecisions = %d, want 4", s.TotalDecisions)
	}
}

func TestApplyTreasureLike(t *testing.T) {
	s := DefaultStats()
	s.Energy = 50

	got, _ := Apply(s, taste.Like, taste.Item{ID: "t", IsTreasure: true})
	if got.Energy != 54 {
		t.Errorf("Energy = %v, want 54 (cost 1, bonus 5)", got.Energy)
	}
	if got.TreasuresFound != 1 {
		t.Errorf("TreasuresFound = %d, want 1", got.TreasuresFound)
	}

	// Treasure bonus is only for likes.
	got, _ = Apply(s, taste.Wishlist, taste.Item{ID: "t", IsTreasure: true})
	if got.TreasuresFound != 0 {
		t.Errorf("wishlist TreasuresFound = %d, want 0", got.TreasuresFound)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	s := DefaultStats()
	s.FavoriteIDs = make([]string, 0, 4)
	_, _ = Apply(s, taste.Like, taste.Item{ID: "a"})
	if len(s.FavoriteIDs) != 0 || s.Energy != 100 {
		t.Errorf("input mutated: %+v", s)
	}
}

func TestGrantCapped(t *testing.T) {
	s := DefaultStats()
	s.Energy = 95
	if got := Grant(s, UnlockReward(true)); got.Energy != 100 {
		t.Errorf("Energy = %v, want 100", got.Energy)
	}

	s.Energy = 0
	got := Grant(s, UnlockReward(false))
	if got.Energy != 10 || got.State() != Available {
		t.Errorf("Energy = %v state %v, want 10 available", got.Energy, got.State())
	}
}

func TestEnergyStaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	kinds := []taste.DecisionKind{taste.Like, taste.Reject, taste.Wishlist, taste.Skip}

	s := DefaultStats()
	for i := 0; i < 5000; i++ {
		if rng.Intn(10) == 0 {
			s = Grant(s, UnlockReward(rng.Intn(2) == 0))
		} else {
			item := taste.Item{ID: fmt.Sprint(rng.Intn(20)), IsTreasure: rng.Intn(5) == 0}
			s, _ = Apply(s, kinds[rng.Intn(len(kinds))], item)
		}
		if s.Energy < 0 || s.Energy > Max {
			t.Fatalf("step %d: energy %v out of range", i, s.Energy)
		}
	}
}

func TestSanitize(t *testing.T) {
	s := SessionStats{Energy: 140, FavoriteIDs: []string{"a", "a", "b"}, TotalDecisions: -2}
	got := s.Sanitize()
	if got.Energy != 100 {
		t.Errorf("Energy = %v, want 100", got.Energy)
	}
	if len(got.FavoriteIDs) != 2 {
		t.Errorf("FavoriteIDs = %v, want 2 unique", got.FavoriteIDs)
	}
	if got.WishlistIDs == nil {
		t.Error("WishlistIDs should be non-nil")
	}
	if got.TotalDecisions != 0 {
		t.Errorf("TotalDecisions = %d, want 0", got.TotalDecisions)
	}
}

func TestAchievements(t *testing.T) {
	s := DefaultStats()
	if got := Achievements(s); len(got) != 0 {
		t.Errorf("fresh stats have achievements: %v", got)
	}

	s.TotalDecisions = 100
	s.TreasuresFound = 5
	got := Achievements(s)
	want := []string{"Swipe Master", "Treasure Hunter", "Swipe Legend"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("[%d] = %s, want %s", i, got[i].Name, name)
		}
	}
}
