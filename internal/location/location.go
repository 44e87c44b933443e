// Package location resolves the user's current position.
package location

import (
	"context"
	"errors"
	"time"

	"github.com/lazypower/tastequest/internal/taste"
	"go.uber.org/zap"
)

// ErrPermissionDenied is returned by providers when the user has not granted
// access to their position.
var ErrPermissionDenied = errors.New("location permission denied")

// Fallback is used whenever the provider cannot produce a position.
var Fallback = taste.Location{Latitude: 37.7749, Longitude: -122.4194}

// Provider returns the current position.
type Provider interface {
	Current(ctx context.Context) (taste.Location, error)
}

// Fixed always reports the same position.
type Fixed taste.Location

// Current implements Provider.
func (f Fixed) Current(context.Context) (taste.Location, error) {
	return taste.Location(f), nil
}

// Resolve asks p for the current position once, bounded by timeout. Any
// failure, including permission denial, yields Fallback with usedFallback set.
func Resolve(ctx context.Context, p Provider, timeout time.Duration, log *zap.Logger) (loc taste.Location, usedFallback bool) {
	if p == nil {
		return Fallback, true
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	loc, err := p.Current(ctx)
	if err != nil {
		if errors.Is(err, ErrPermissionDenied) {
			log.Warn("location permission denied, using fallback")
		} else {
			log.Warn("location lookup failed, using fallback", zap.Error(err))
		}
		return Fallback, true
	}
	return loc, false
}
