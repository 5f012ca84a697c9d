// Package input installs global mouse and hotkey hooks.
package input

import (
	"context"
	"image"
	"log/slog"

	hook "github.com/robotn/gohook"
)

// Bindings describes the global input callbacks. Callbacks run on the
// hook goroutine and must hand any real work off; the poll scheduler's
// gate is cheap enough to call inline.
type Bindings struct {
	// OnMove fires for every pointer movement with the new position.
	OnMove func(pos image.Point)
	// Hotkeys maps key names (e.g. "f9") to actions.
	Hotkeys map[string]func()
}

// Run installs the hooks and blocks until ctx is cancelled or the hook
// stream ends. Hook installation can fail silently on platforms that
// deny input capture; the overlay then simply never detects anything,
// which matches the fail-soft posture of the rest of the pipeline.
func Run(ctx context.Context, b Bindings) {
	if b.OnMove != nil {
		hook.Register(hook.MouseMove, nil, func(e hook.Event) {
			b.OnMove(image.Pt(int(e.X), int(e.Y)))
		})
	}
	for key, fn := range b.Hotkeys {
		fn := fn
		hook.Register(hook.KeyDown, []string{key}, func(hook.Event) {
			fn()
		})
		slog.Info("hotkey registered", "key", key)
	}

	events := hook.Start()
	defer hook.End()

	done := hook.Process(events)
	select {
	case <-ctx.Done():
	case <-done:
	}
}
