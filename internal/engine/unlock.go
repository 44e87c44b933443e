package engine

import (
	"context"
	"fmt"

	"github.com/lazypower/tastequest/internal/catalog"
	"github.com/lazypower/tastequest/internal/energy"
	"github.com/lazypower/tastequest/internal/ranking"
	"github.com/lazypower/tastequest/internal/store"
	"github.com/lazypower/tastequest/internal/unlock"
	"go.uber.org/zap"
)

// Unlock tries to reveal the item with the given id from the current
// position. Repeated unlocks of the same item are no-ops.
func (e *Engine) Unlock(ctx context.Context, itemID string) (unlock.Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ensureLoaded(ctx)

	origin := e.locate(ctx)
	item, err := e.lookupNear(ctx, itemID, origin, catalog.MapRadiusKm)
	if err != nil {
		return unlock.Result{}, fmt.Errorf("unlock %s: %w", itemID, err)
	}
	item.IsUnlocked = item.IsUnlocked || e.registry.Contains(item.ID)

	res := unlock.Attempt(e.registry, e.stats, item, ranking.Distance(origin, item.Location))
	if res.Changed() {
		if err := e.save(ctx, store.KeyUnlocked, res.Registry); err != nil {
			return unlock.Result{}, fmt.Errorf("save unlocked ids: %w", err)
		}
		if err := e.save(ctx, store.KeyStats, res.Stats); err != nil {
			// Roll the registry back so a retry can still grant the reward.
			if rbErr := e.save(ctx, store.KeyUnlocked, e.registry); rbErr != nil {
				e.log.Error("unlocked ids rollback failed",
					zap.String("item", item.ID), zap.Error(rbErr))
			}
			return unlock.Result{}, fmt.Errorf("save stats: %w", err)
		}
		e.registry = res.Registry
		e.stats = res.Stats
		item.IsUnlocked = true
		e.items[item.ID] = item
		e.observeEnergy()
		e.log.Info("item unlocked",
			zap.String("item", item.ID),
			zap.Bool("treasure", item.IsTreasure),
			zap.Float64("granted", res.Granted))
	}

	if e.metrics != nil {
		e.metrics.Unlocks.WithLabelValues(string(res.Status)).Inc()
	}
	res.Registry = e.registry
	res.Stats = e.stats.Clone()
	return res, nil
}

// Favorite adds an unlocked item to the favorites list without charging
// energy.
func (e *Engine) Favorite(ctx context.Context, itemID string) (energy.SessionStats, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ensureLoaded(ctx)

	item, err := e.lookup(ctx, itemID, catalog.MapRadiusKm)
	if err != nil {
		return e.stats.Clone(), fmt.Errorf("favorite %s: %w", itemID, err)
	}
	if !item.IsUnlocked && !e.registry.Contains(item.ID) {
		return e.stats.Clone(), fmt.Errorf("favorite %s: %w", itemID, ErrLocked)
	}

	next := energy.AddFavorite(e.stats, item.ID)
	if err := e.save(ctx, store.KeyStats, next); err != nil {
		return e.stats.Clone(), fmt.Errorf("save stats: %w", err)
	}
	e.stats = next
	return next.Clone(), nil
}
