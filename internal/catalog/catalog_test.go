package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lazypower/tastequest/internal/taste"
)

var sf = taste.Location{Latitude: 37.7749, Longitude: -122.4194}

func TestFixtureOffsetsAroundCaller(t *testing.T) {
	items, err := Fixture{}.Nearby(context.Background(), sf, DeckRadiusKm)
	if err != nil {
		t.Fatalf("Nearby: %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("got %d items, want 5", len(items))
	}

	var treasures int
	for _, it := range items {
		if it.IsTreasure {
			treasures++
		}
		if it.Location.Latitude == sf.Latitude && it.Location.Longitude == sf.Longitude {
			t.Errorf("%s sits exactly on the caller", it.ID)
		}
	}
	if treasures != 1 {
		t.Errorf("treasures = %d, want 1", treasures)
	}
}

func TestAdjustPopularity(t *testing.T) {
	tests := []struct {
		start float64
		kind  taste.DecisionKind
		want  float64
	}{
		{50, taste.Like, 52},
		{50, taste.Wishlist, 53},
		{50, taste.Reject, 49},
		{50, taste.Skip, 49.5},
		{99, taste.Wishlist, 100},
		{0.2, taste.Skip, 0},
	}
	for _, tt := range tests {
		in := taste.Item{Popularity: tt.start}
		got := AdjustPopularity(in, tt.kind)
		if got.Popularity != tt.want {
			t.Errorf("%v %s: popularity = %v, want %v", tt.start, tt.kind, got.Popularity, tt.want)
		}
		if in.Popularity != tt.start {
			t.Error("input mutated")
		}
	}
}

const validItems = `[
  {"id":"a","cuisine":"Thai","tags":["spicy"],"priceRange":2,"popularity":60,"mood":50,
   "location":{"latitude":37.7750,"longitude":-122.4194}},
  {"id":"b","cuisine":"Steak","price":80,
   "location":{"latitude":37.7749,"longitude":-122.1000}}
]`

func TestDecodeItemsValid(t *testing.T) {
	items, err := DecodeItems([]byte(validItems))
	if err != nil {
		t.Fatalf("DecodeItems: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[1].EffectivePriceRange() != 4 {
		t.Errorf("derived tier = %d, want 4", items[1].EffectivePriceRange())
	}
	if items[1].Tags == nil {
		t.Error("missing tags should decode as empty, not nil")
	}
}

func TestDecodeItemsInvalid(t *testing.T) {
	cases := map[string]string{
		"missing id":     `[{"cuisine":"Thai","location":{"latitude":1,"longitude":1}}]`,
		"tier too high":  `[{"id":"x","cuisine":"Thai","priceRange":7,"location":{"latitude":1,"longitude":1}}]`,
		"bad latitude":   `[{"id":"x","cuisine":"Thai","location":{"latitude":91,"longitude":1}}]`,
		"not an array":   `{"id":"x"}`,
		"popularity 101": `[{"id":"x","cuisine":"Thai","popularity":101,"location":{"latitude":1,"longitude":1}}]`,
	}
	for name, doc := range cases {
		_, err := DecodeItems([]byte(doc))
		if !errors.Is(err, ErrInvalidItem) {
			t.Errorf("%s: err = %v, want ErrInvalidItem", name, err)
		}
	}
}

func TestFileSourceFiltersByRadius(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte(validItems), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	items, err := FileSource{Path: path}.Nearby(context.Background(), sf, DeckRadiusKm)
	if err != nil {
		t.Fatalf("Nearby: %v", err)
	}
	// "b" is 0.3194 degrees of longitude away, roughly 35 km by the planar formula.
	if len(items) != 1 || items[0].ID != "a" {
		t.Errorf("items = %+v, want only a", items)
	}
}

func TestFileSourceMissingFile(t *testing.T) {
	_, err := FileSource{Path: filepath.Join(t.TempDir(), "nope.json")}.Nearby(context.Background(), sf, 5)
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestHTTPSource(t *testing.T) {
	var gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(validItems))
	}))
	defer ts.Close()

	src := NewHTTPSource(ts.URL, time.Second)
	items, err := src.Nearby(context.Background(), sf, 10)
	if err != nil {
		t.Fatalf("Nearby: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("got %d items, want 2", len(items))
	}
	if gotQuery != "lat=37.7749&lon=-122.4194&radius_km=10" {
		t.Errorf("query = %q", gotQuery)
	}
}

func TestHTTPSourceErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer ts.Close()

	_, err := NewHTTPSource(ts.URL, time.Second).Nearby(context.Background(), sf, 10)
	if err == nil {
		t.Error("expected error for 502")
	}
}
