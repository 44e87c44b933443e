package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lazypower/tastequest/internal/taste"
	"github.com/xeipuuv/gojsonschema"
)

const itemsSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "cuisine", "location"],
    "properties": {
      "id":         {"type": "string", "minLength": 1},
      "name":       {"type": "string"},
      "cuisine":    {"type": "string", "minLength": 1},
      "tags":       {"type": "array", "items": {"type": "string"}},
      "priceRange": {"type": "integer", "minimum": 1, "maximum": 4},
      "price":      {"type": "number", "minimum": 0},
      "popularity": {"type": "number", "minimum": 0, "maximum": 100},
      "mood":       {"type": "number", "minimum": 0, "maximum": 100},
      "isTreasure": {"type": "boolean"},
      "isUnlocked": {"type": "boolean"},
      "location": {
        "type": "object",
        "required": ["latitude", "longitude"],
        "properties": {
          "latitude":  {"type": "number", "minimum": -90,  "maximum": 90},
          "longitude": {"type": "number", "minimum": -180, "maximum": 180}
        }
      }
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(itemsSchema)

// DecodeItems validates a JSON array of items against the catalog schema and
// decodes it.
func DecodeItems(data []byte) ([]taste.Item, error) {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidItem, err)
	}
	if !result.Valid() {
		msgs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			msgs[i] = desc.String()
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidItem, strings.Join(msgs, "; "))
	}

	var items []taste.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	for i := range items {
		if items[i].Tags == nil {
			items[i].Tags = []string{}
		}
	}
	return items, nil
}
