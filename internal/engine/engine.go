// Package engine runs one user session: it loads persisted state, feeds
// decisions and unlock attempts through the pure taste, energy and unlock
// rules, and writes every change back before the next request is evaluated.
package engine

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/lazypower/tastequest/internal/catalog"
	"github.com/lazypower/tastequest/internal/energy"
	"github.com/lazypower/tastequest/internal/location"
	"github.com/lazypower/tastequest/internal/logging"
	"github.com/lazypower/tastequest/internal/metrics"
	"github.com/lazypower/tastequest/internal/ranking"
	"github.com/lazypower/tastequest/internal/store"
	"github.com/lazypower/tastequest/internal/taste"
	"github.com/lazypower/tastequest/internal/unlock"
	"go.uber.org/zap"
)

var (
	// ErrUnknownItem is returned when an operation names an item the catalog
	// has not produced.
	ErrUnknownItem = errors.New("unknown item")
	// ErrLocked is returned when favoriting an item that is still hidden.
	ErrLocked = errors.New("item is locked")
	// ErrInvalidDecision is returned for decision kinds outside like, reject,
	// wishlist and skip.
	ErrInvalidDecision = errors.New("invalid decision kind")
)

// DefaultLocationTimeout bounds a single location lookup.
const DefaultLocationTimeout = 5 * time.Second

// Engine owns the state of a single session. All mutating operations are
// serialised, so a write completes before the next decision reads state.
type Engine struct {
	gw      store.Gateway
	source  catalog.Source
	locator location.Provider
	log     *zap.Logger

	metrics    *metrics.Metrics
	history    store.History
	locTimeout time.Duration
	now        func() time.Time

	mu       sync.Mutex
	loaded   bool
	profile  taste.PreferenceProfile
	stats    energy.SessionStats
	registry unlock.Registry
	items    map[string]taste.Item
	decided  map[string]bool
}

// New creates an Engine. State is loaded from gw on first use.
func New(gw store.Gateway, source catalog.Source, locator location.Provider, log *zap.Logger) *Engine {
	return &Engine{
		gw:         gw,
		source:     source,
		locator:    locator,
		log:        logging.OrNop(log),
		locTimeout: DefaultLocationTimeout,
		now:        time.Now,
		items:      map[string]taste.Item{},
		decided:    map[string]bool{},
	}
}

// SetMetrics attaches Prometheus collectors.
func (e *Engine) SetMetrics(m *metrics.Metrics) {
	e.metrics = m
}

// SetHistory attaches a decision log. Logging failures never fail a decision.
func (e *Engine) SetHistory(h store.History) {
	e.history = h
}

// SetLocationTimeout changes the bound on location lookups.
func (e *Engine) SetLocationTimeout(d time.Duration) {
	e.locTimeout = d
}

// SetClock replaces the time source.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// History returns the attached decision log, if any.
func (e *Engine) History() store.History {
	return e.history
}

// Profile returns a copy of the current preference profile.
func (e *Engine) Profile(ctx context.Context) taste.PreferenceProfile {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ensureLoaded(ctx)
	return e.profile.Clone()
}

// Stats returns a copy of the current session stats.
func (e *Engine) Stats(ctx context.Context) energy.SessionStats {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ensureLoaded(ctx)
	return e.stats.Clone()
}

// Unlocked returns the ids in the unlock registry.
func (e *Engine) Unlocked(ctx context.Context) []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ensureLoaded(ctx)
	return e.registry.IDs()
}

// ResetProfile replaces the profile with the neutral default.
func (e *Engine) ResetProfile(ctx context.Context) (taste.PreferenceProfile, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ensureLoaded(ctx)

	p := taste.DefaultProfile(e.now())
	if err := e.save(ctx, store.KeyProfile, p); err != nil {
		return e.profile.Clone(), err
	}
	e.profile = p
	e.log.Info("profile reset")
	return p.Clone(), nil
}

// ResetStats refills energy and clears every session counter. The unlock
// registry is kept.
func (e *Engine) ResetStats(ctx context.Context) (energy.SessionStats, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ensureLoaded(ctx)

	s := energy.DefaultStats()
	if err := e.save(ctx, store.KeyStats, s); err != nil {
		return e.stats.Clone(), err
	}
	e.stats = s
	e.decided = map[string]bool{}
	e.observeEnergy()
	e.log.Info("stats reset")
	return s.Clone(), nil
}

// ensureLoaded reads profile, stats and registry once. Missing keys and read
// failures both fall back to defaults. Caller holds e.mu.
func (e *Engine) ensureLoaded(ctx context.Context) {
	if e.loaded {
		return
	}

	profile := taste.DefaultProfile(e.now())
	if e.load(ctx, store.KeyProfile, &profile) {
		profile = profile.Sanitize()
	} else {
		profile = taste.DefaultProfile(e.now())
	}

	stats := energy.DefaultStats()
	if e.load(ctx, store.KeyStats, &stats) {
		stats = stats.Sanitize()
	} else {
		stats = energy.DefaultStats()
	}

	var reg unlock.Registry
	if !e.load(ctx, store.KeyUnlocked, &reg) {
		reg = unlock.Registry{}
	}

	e.profile = profile
	e.stats = stats
	e.registry = e.registry.Union(reg)
	e.loaded = true
	e.observeEnergy()
}

// load decodes key into v and reports whether it succeeded.
func (e *Engine) load(ctx context.Context, key string, v any) bool {
	err := store.GetJSON(ctx, e.gw, key, v)
	switch {
	case err == nil:
		return true
	case errors.Is(err, store.ErrNotFound):
		return false
	default:
		e.log.Warn("storage read failed, using default", zap.String("key", key), zap.Error(err))
		if e.metrics != nil {
			e.metrics.StoreFailures.WithLabelValues("get").Inc()
		}
		return false
	}
}

func (e *Engine) save(ctx context.Context, key string, v any) error {
	if err := store.SetJSON(ctx, e.gw, key, v); err != nil {
		e.log.Error("storage write failed", zap.String("key", key), zap.Error(err))
		if e.metrics != nil {
			e.metrics.StoreFailures.WithLabelValues("set").Inc()
		}
		return err
	}
	return nil
}

// locate resolves the current position, substituting the fallback on any
// failure.
func (e *Engine) locate(ctx context.Context) taste.Location {
	loc, fallback := location.Resolve(ctx, e.locator, e.locTimeout, e.log)
	if fallback && e.metrics != nil {
		e.metrics.LocationFallbacks.Inc()
	}
	return loc
}

// refresh fetches items near origin and merges them into the session
// catalog. Session-local popularity and unlock flags survive a refresh. On
// source failure the cached catalog is kept. Caller holds e.mu.
func (e *Engine) refresh(ctx context.Context, origin taste.Location, radiusKm float64) []taste.Item {
	fetched, err := e.source.Nearby(ctx, origin, radiusKm)
	if err != nil {
		e.log.Warn("catalog fetch failed, using cached items", zap.Error(err))
		return ranking.Within(e.cachedItems(), origin, radiusKm)
	}

	out := make([]taste.Item, 0, len(fetched))
	for _, it := range unlock.Merge(fetched, e.registry) {
		if prev, ok := e.items[it.ID]; ok {
			it.Popularity = prev.Popularity
			it.IsUnlocked = it.IsUnlocked || prev.IsUnlocked
		}
		e.items[it.ID] = it
		out = append(out, it)
	}
	return out
}

func (e *Engine) cachedItems() []taste.Item {
	out := make([]taste.Item, 0, len(e.items))
	for _, it := range e.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return unlock.Merge(out, e.registry)
}

// lookup finds an item in the session catalog, fetching around the current
// position once if it is not there yet. Caller holds e.mu.
func (e *Engine) lookup(ctx context.Context, id string, radiusKm float64) (taste.Item, error) {
	if it, ok := e.items[id]; ok {
		return it, nil
	}
	return e.lookupNear(ctx, id, e.locate(ctx), radiusKm)
}

// lookupNear is lookup for callers that already resolved their position.
func (e *Engine) lookupNear(ctx context.Context, id string, origin taste.Location, radiusKm float64) (taste.Item, error) {
	if it, ok := e.items[id]; ok {
		return it, nil
	}
	e.refresh(ctx, origin, radiusKm)
	if it, ok := e.items[id]; ok {
		return it, nil
	}
	return taste.Item{}, ErrUnknownItem
}

func (e *Engine) observeEnergy() {
	if e.metrics != nil {
		e.metrics.Energy.Set(e.stats.Energy)
	}
}
