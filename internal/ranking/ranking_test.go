package ranking

import (
	"math"
	"testing"

	"github.com/lazypower/tastequest/internal/taste"
)

func TestDistanceFormula(t *testing.T) {
	a := taste.Location{Latitude: 37.7749, Longitude: -122.4194}
	b := taste.Location{Latitude: 37.7759, Longitude: -122.4184}

	// |0.001| + |0.001| * 111000
	want := 0.001 + 111.0
	if got := Distance(a, b); math.Abs(got-want) > 1e-3 {
		t.Errorf("Distance = %v, want %v", got, want)
	}
	if Distance(a, b) != Distance(b, a) {
		t.Error("Distance should be symmetric")
	}
	if Distance(a, a) != 0 {
		t.Error("Distance to self should be 0")
	}
}

func TestRankAscending(t *testing.T) {
	origin := taste.Location{Latitude: 0, Longitude: 0}
	items := []taste.Item{
		{ID: "far", Location: taste.Location{Longitude: 0.003}},
		{ID: "near", Location: taste.Location{Longitude: 0.001}},
		{ID: "mid", Location: taste.Location{Longitude: -0.002}},
	}

	got := Rank(items, origin)
	want := []string{"near", "mid", "far"}
	for i, id := range want {
		if got[i].Item.ID != id {
			t.Errorf("[%d] = %s, want %s", i, got[i].Item.ID, id)
		}
	}
	if items[0].ID != "far" {
		t.Error("Rank should not reorder its input")
	}
}

func TestRankStableOnTies(t *testing.T) {
	origin := taste.Location{}
	items := []taste.Item{
		{ID: "a", Location: taste.Location{Longitude: 0.001}},
		{ID: "b", Location: taste.Location{Longitude: -0.001}},
	}
	got := Rank(items, origin)
	if got[0].Item.ID != "a" || got[1].Item.ID != "b" {
		t.Errorf("tie order = %s,%s, want a,b", got[0].Item.ID, got[1].Item.ID)
	}
}

func TestWithin(t *testing.T) {
	origin := taste.Location{}
	items := []taste.Item{
		{ID: "in", Location: taste.Location{Longitude: 0.01}}, // 1110 m
		{ID: "out", Location: taste.Location{Longitude: 0.1}}, // 11100 m
	}
	got := Within(items, origin, 5)
	if len(got) != 1 || got[0].ID != "in" {
		t.Errorf("Within = %v, want [in]", got)
	}
}
