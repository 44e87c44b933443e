package catalog

import (
	"context"
	"fmt"
	"os"

	"github.com/lazypower/tastequest/internal/ranking"
	"github.com/lazypower/tastequest/internal/taste"
)

// FileSource reads the catalog from a JSON file on every call.
type FileSource struct {
	Path string
}

// Nearby implements Source, returning the file's items within radiusKm.
func (f FileSource) Nearby(_ context.Context, at taste.Location, radiusKm float64) ([]taste.Item, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	items, err := DecodeItems(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", f.Path, err)
	}
	return ranking.Within(items, at, radiusKm), nil
}
