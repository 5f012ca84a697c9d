package market

import (
	"context"
	"log/slog"
	"time"

	"eft-overlay/internal/catalog"
)

// Synchronizer keeps the catalog store fresh. Two independent flows
// share the store: a fixed-interval full refresh, and fire-and-forget
// live fetches for single items. Both run off the UI thread; failures
// degrade to "no change" and are retried on the next opportunity.
type Synchronizer struct {
	client   *Client
	store    *catalog.Store
	interval time.Duration

	// OnCatalogReady is notified with the item count after each
	// successful full refresh.
	OnCatalogReady func(count int)
	// OnLiveUpdate is notified with the merged item after a successful
	// live fetch.
	OnLiveUpdate func(name string, item catalog.Item)
}

// NewSynchronizer creates a synchronizer refreshing every interval.
func NewSynchronizer(client *Client, store *catalog.Store, interval time.Duration) *Synchronizer {
	return &Synchronizer{
		client:   client,
		store:    store,
		interval: interval,
	}
}

// Run refreshes the full catalog immediately and then on every tick
// until ctx is cancelled. A failed refresh leaves the current snapshot
// untouched; there is no backoff, the next tick simply tries again.
func (s *Synchronizer) Run(ctx context.Context) {
	slog.Info("starting catalog refresh loop", "interval", s.interval)

	s.refresh(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			slog.Info("catalog refresh loop stopped")
			return
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

func (s *Synchronizer) refresh(ctx context.Context) {
	items, err := s.client.AllItems(ctx)
	if err != nil {
		slog.Warn("catalog refresh failed", "error", err)
		return
	}

	count := s.store.Load(items)
	slog.Info("catalog refreshed", "items", count)
	if s.OnCatalogReady != nil {
		s.OnCatalogReady(count)
	}
}

// FetchLive starts a background fetch of one item's live record and
// merges the result into the store. Failures are dropped silently; the
// cached market data stays authoritative until the next opportunity.
func (s *Synchronizer) FetchLive(name, uid string) {
	if uid == "" {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), liveTimeout)
		defer cancel()

		live, ok, err := s.client.Item(ctx, uid)
		if err != nil {
			slog.Debug("live price fetch failed", "item", name, "error", err)
			return
		}
		if !ok {
			slog.Debug("live price fetch returned nothing", "item", name)
			return
		}

		if !s.store.MergeLive(name, live) {
			// Superseded by a concurrent full refresh; nothing to show.
			return
		}
		slog.Debug("live price updated", "item", name)

		if s.OnLiveUpdate != nil {
			if merged, found := s.store.Snapshot().LookupByName(name); found {
				s.OnLiveUpdate(name, merged)
			}
		}
	}()
}
