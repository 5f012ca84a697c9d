// Package main provides the entry point for the EFT price overlay.
package main

import (
	"context"
	"image"
	"log/slog"
	"os"

	"fyne.io/fyne/v2/app"

	"eft-overlay/internal/capture"
	"eft-overlay/internal/catalog"
	"eft-overlay/internal/config"
	"eft-overlay/internal/detect"
	"eft-overlay/internal/input"
	"eft-overlay/internal/market"
	"eft-overlay/internal/match"
	"eft-overlay/internal/ocr"
	"eft-overlay/internal/storage"
	"eft-overlay/internal/version"
	"eft-overlay/ui/overlay"
)

const appTitle = "EFT Price Overlay"

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	slog.Info("starting", "app", appTitle, "version", version.String())

	dir, err := config.Dir()
	if err != nil {
		slog.Error("failed to resolve config directory", "error", err)
		os.Exit(1)
	}
	cfg, err := config.Load(dir)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	slog.Info("config loaded", "dir", dir, "api_key", cfg.MaskedAPIKey())

	files := storage.New(dir)
	store := catalog.NewStore(func(items []catalog.Item) {
		if err := files.WriteCatalog(items); err != nil {
			slog.Warn("cache persist failed", "error", err)
		}
	})

	trader, err := files.ReadTraderPrices()
	if err != nil {
		slog.Warn("trader dataset unavailable", "error", err)
		trader = catalog.TraderPrices{}
	} else {
		slog.Info("trader prices loaded", "count", len(trader))
	}

	engine, err := ocr.NewEngine()
	if err != nil {
		slog.Error("failed to initialize recognition engine", "error", err)
		os.Exit(1)
	}
	defer engine.Close()

	grabber := capture.New(cfg.Detection.CaptureWidth, cfg.Detection.CaptureHeight)
	matcher := match.New(match.DefaultThresholds())
	coord := detect.NewCoordinator(grabber, engine, store, matcher)

	client := market.NewClient(cfg.API.URL, cfg.API.Key)
	syncer := market.NewSynchronizer(client, store, cfg.RefreshInterval())
	syncer.OnCatalogReady = coord.AnnounceCatalog
	syncer.OnLiveUpdate = coord.OfferLive
	coord.LiveFetch = func(it catalog.Item) {
		syncer.FetchLive(it.DisplayName(), it.ExternalID())
	}

	// Warm start from the local cache so detection can work before the
	// first remote refresh lands.
	if cached, err := files.ReadCatalog(); err != nil {
		slog.Warn("catalog cache unreadable", "error", err)
	} else if len(cached) > 0 {
		count := store.Load(cached)
		slog.Info("catalog cache loaded", "items", count)
		coord.AnnounceCatalog(count)
	}

	scheduler := detect.NewScheduler(cfg.Cooldown(), store.Ready, func(pos image.Point) {
		go coord.Detect(pos)
	})
	scheduler.SetEnabled(cfg.Detection.ActiveOnStart)

	fyneApp := app.New()
	win := overlay.New(fyneApp, cfg, trader)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go coord.Run(ctx)
	go syncer.Run(ctx)
	go win.HandleEvents(coord.Events())
	go input.Run(ctx, input.Bindings{
		OnMove: func(pos image.Point) {
			scheduler.OnPointerMove(pos)
		},
		Hotkeys: map[string]func(){
			cfg.Hotkeys.ToggleDetection: func() {
				on := scheduler.Toggle()
				slog.Info("detection toggled", "active", on)
				if !on {
					coord.Reset()
				}
				win.SetDetectionActive(on)
			},
			cfg.Hotkeys.ToggleOverlay: win.ToggleVisible,
		},
	})

	win.Show()
	fyneApp.Run()
	slog.Info("shutting down")
}
