package unlock

import (
	"encoding/json"

	"github.com/lazypower/tastequest/internal/taste"
)

// Registry is the append-only set of unlocked item ids. Values are immutable:
// Add and Union return new registries.
type Registry struct {
	ids []string
}

// NewRegistry builds a registry from ids, dropping duplicates and empties.
func NewRegistry(ids ...string) Registry {
	var r Registry
	for _, id := range ids {
		r = r.Add(id)
	}
	return r
}

// Contains reports whether id has been unlocked.
func (r Registry) Contains(id string) bool {
	for _, existing := range r.ids {
		if existing == id {
			return true
		}
	}
	return false
}

// Len returns the number of unlocked ids.
func (r Registry) Len() int { return len(r.ids) }

// IDs returns the ids in unlock order.
func (r Registry) IDs() []string {
	return append([]string{}, r.ids...)
}

// Add returns a registry that also contains id.
func (r Registry) Add(id string) Registry {
	if id == "" || r.Contains(id) {
		return r
	}
	ids := make([]string, len(r.ids), len(r.ids)+1)
	copy(ids, r.ids)
	return Registry{ids: append(ids, id)}
}

// Union returns every id present in r or other.
func (r Registry) Union(other Registry) Registry {
	out := r
	for _, id := range other.ids {
		out = out.Add(id)
	}
	return out
}

func (r Registry) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.IDs())
}

func (r *Registry) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*r = NewRegistry(ids...)
	return nil
}

// Merge returns copies of items whose IsUnlocked flag is the union of the
// item's own flag and registry membership. A flag is never cleared.
func Merge(items []taste.Item, r Registry) []taste.Item {
	out := make([]taste.Item, len(items))
	for i, it := range items {
		it.IsUnlocked = it.IsUnlocked || r.Contains(it.ID)
		out[i] = it
	}
	return out
}
