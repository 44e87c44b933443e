package engine

import (
	"context"
	"fmt"

	"github.com/lazypower/tastequest/internal/catalog"
	"github.com/lazypower/tastequest/internal/energy"
	"github.com/lazypower/tastequest/internal/store"
	"github.com/lazypower/tastequest/internal/taste"
	"go.uber.org/zap"
)

// Status reports whether a decision was applied.
type Status string

const (
	StatusAccepted  Status = "accepted"
	StatusExhausted Status = "exhausted"
)

// Outcome is the result of Decide. When Status is StatusExhausted nothing was
// changed and Profile, Stats and Item reflect the unchanged state.
type Outcome struct {
	Status        Status                  `json:"status"`
	Decision      taste.Decision          `json:"decision"`
	Profile       taste.PreferenceProfile `json:"profile"`
	Stats         energy.SessionStats     `json:"stats"`
	Item          taste.Item              `json:"item"`
	TreasureFound bool                    `json:"treasureFound"`
	Achievements  []energy.Achievement    `json:"achievements"`
}

// Decide applies a verdict on the item with the given id.
//
// The profile, stats and item popularity advance together. An exhausted
// energy pool turns the call into a no-op reported as StatusExhausted. A
// failed write returns an error and leaves the in-memory state untouched.
func (e *Engine) Decide(ctx context.Context, itemID string, kind taste.DecisionKind) (Outcome, error) {
	if !kind.Valid() {
		return Outcome{}, fmt.Errorf("%w: %q", ErrInvalidDecision, kind)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.ensureLoaded(ctx)

	item, err := e.lookup(ctx, itemID, catalog.DeckRadiusKm)
	if err != nil {
		return Outcome{}, fmt.Errorf("decide %s: %w", itemID, err)
	}

	d := taste.NewDecision(kind, item, e.now())
	out := Outcome{
		Decision: d,
		Profile:  e.profile.Clone(),
		Stats:    e.stats.Clone(),
		Item:     item,
	}

	stats, ok := energy.Apply(e.stats, kind, item)
	if !ok {
		out.Status = StatusExhausted
		out.Achievements = energy.Achievements(e.stats)
		e.countDecision(kind, StatusExhausted)
		e.recordHistory(ctx, d, StatusExhausted)
		e.log.Debug("decision refused, energy exhausted",
			zap.String("item", item.ID), zap.String("kind", string(kind)))
		return out, nil
	}

	profile := taste.Update(e.profile, d)
	if err := e.save(ctx, store.KeyProfile, profile); err != nil {
		return Outcome{}, fmt.Errorf("save profile: %w", err)
	}
	if err := e.save(ctx, store.KeyStats, stats); err != nil {
		return Outcome{}, fmt.Errorf("save stats: %w", err)
	}

	item = catalog.AdjustPopularity(item, kind)
	e.profile = profile
	e.stats = stats
	e.items[item.ID] = item
	e.decided[item.ID] = true
	e.observeEnergy()

	out.Status = StatusAccepted
	out.Profile = profile.Clone()
	out.Stats = stats.Clone()
	out.Item = item
	out.TreasureFound = kind == taste.Like && item.IsTreasure
	out.Achievements = energy.Achievements(stats)

	e.countDecision(kind, StatusAccepted)
	e.recordHistory(ctx, d, StatusAccepted)
	e.log.Debug("decision applied",
		zap.String("item", item.ID),
		zap.String("kind", string(kind)),
		zap.Float64("energy", stats.Energy))
	if out.TreasureFound {
		e.log.Info("treasure found", zap.String("item", item.ID), zap.String("name", item.Name))
	}
	return out, nil
}

func (e *Engine) countDecision(kind taste.DecisionKind, status Status) {
	if e.metrics != nil {
		e.metrics.Decisions.WithLabelValues(string(kind), string(status)).Inc()
	}
}

func (e *Engine) recordHistory(ctx context.Context, d taste.Decision, status Status) {
	if e.history == nil {
		return
	}
	rec := store.DecisionRecord{
		ID:        d.ID,
		Kind:      string(d.Kind),
		ItemID:    d.Item.ID,
		Cuisine:   d.Item.Cuisine,
		Status:    string(status),
		Energy:    e.stats.Energy,
		CreatedAt: d.Timestamp.UnixMilli(),
	}
	if err := e.history.RecordDecision(ctx, rec); err != nil {
		e.log.Warn("record decision failed", zap.String("id", d.ID), zap.Error(err))
	}
}
