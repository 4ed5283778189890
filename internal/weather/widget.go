// Package weather keeps the weather widget current. Overlapping refreshes are
// allowed, but only the most recently issued one may update the display.
package weather

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"shoresquad/internal/domain"
	"shoresquad/internal/render"
)

// DefaultInterval is how often the widget refreshes.
const DefaultInterval = 600 * time.Second

// LocationSource supplies the coordinates to fetch for.
type LocationSource interface {
	WeatherLocation() domain.Location
}

// Widget fetches current conditions and renders them into a Region.
type Widget struct {
	provider domain.WeatherProvider
	source   LocationSource
	region   *render.Region
	logger   *slog.Logger

	issued atomic.Uint64
	mu     sync.Mutex
	shown  uint64
}

func NewWidget(provider domain.WeatherProvider, source LocationSource, region *render.Region, logger *slog.Logger) *Widget {
	return &Widget{provider: provider, source: source, region: region, logger: logger}
}

// Refresh fetches and renders the current weather. A failed fetch renders the
// unavailable state. It reports whether this call's result was displayed; a
// result is dropped when a later refresh was issued before it resolved.
func (w *Widget) Refresh(ctx context.Context) bool {
	gen := w.issued.Add(1)
	loc := w.source.WeatherLocation()

	var card *render.WeatherCard
	current, err := w.provider.FetchCurrent(ctx, loc.Lat, loc.Lng)
	if err != nil {
		w.logger.WarnContext(ctx, "weather fetch error", "lat", loc.Lat, "lng", loc.Lng, "err", err)
	} else {
		card = render.NewWeatherCard(current)
	}

	html, err := render.RenderWeather(card)
	if err != nil {
		w.logger.ErrorContext(ctx, "weather render error", "err", err)
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if gen != w.issued.Load() || gen <= w.shown {
		w.logger.DebugContext(ctx, "dropping stale weather result", "generation", gen)
		return false
	}
	w.shown = gen
	w.region.Replace(html)
	return true
}

// Run refreshes immediately and then every interval until ctx is done. Ticks
// do not wait for an outstanding refresh.
func (w *Widget) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	var wg sync.WaitGroup
	defer wg.Wait()

	refresh := func() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					w.logger.Error("weather refresh panicked", "panic", r)
				}
			}()
			w.Refresh(ctx)
		}()
	}

	refresh()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			refresh()
		}
	}
}
