// Package detect runs the capture, recognition and matching pipeline and
// owns the "currently displayed item" state machine.
package detect

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"sync/atomic"

	"eft-overlay/internal/catalog"
	"eft-overlay/internal/match"
	"eft-overlay/internal/ocr"
)

// Capturer provides screen regions centered on a point.
type Capturer interface {
	Region(center image.Point) (image.Image, error)
}

// Recognizer extracts raw text from a captured frame, one string per
// recognition attempt.
type Recognizer interface {
	Recognize(img image.Image) ([]string, error)
}

// Coordinator drives detection cycles and serializes all display-state
// transitions through its Run loop: workers and the price synchronizer
// only send messages, the loop alone mutates state and emits events.
type Coordinator struct {
	capture Capturer
	rec     Recognizer
	store   *catalog.Store
	matcher *match.Matcher

	// LiveFetch, when set, is invoked from the Run loop after each item
	// transition so a live price refresh can start in the background.
	LiveFetch func(item catalog.Item)

	current atomic.Value // string: displayed item key, "" when idle

	results chan catalog.Item
	live    chan liveUpdate
	events  chan Event
}

type liveUpdate struct {
	name string
	item catalog.Item
}

// NewCoordinator wires a coordinator over its collaborators.
func NewCoordinator(capture Capturer, rec Recognizer, store *catalog.Store, matcher *match.Matcher) *Coordinator {
	c := &Coordinator{
		capture: capture,
		rec:     rec,
		store:   store,
		matcher: matcher,
		results: make(chan catalog.Item, 4),
		live:    make(chan liveUpdate, 4),
		events:  make(chan Event, 16),
	}
	c.current.Store("")
	return c
}

// Events returns the notification stream for the presentation layer.
func (c *Coordinator) Events() <-chan Event {
	return c.events
}

// CurrentKey returns the displayed item key, or "" when idle.
func (c *Coordinator) CurrentKey() string {
	return c.current.Load().(string)
}

// Reset returns the state machine to idle, so the next detection of the
// same item emits again. Used when detection is toggled off and on.
func (c *Coordinator) Reset() {
	c.current.Store("")
}

// AnnounceCatalog forwards a catalog-ready notification to the UI.
func (c *Coordinator) AnnounceCatalog(count int) {
	c.events <- Event{Type: EventCatalogReady, Count: count}
}

// OfferLive hands a completed live-price fetch to the Run loop. Results
// for items no longer on display are dropped there, so a stale fetch can
// never overwrite what the user is looking at.
func (c *Coordinator) OfferLive(name string, item catalog.Item) {
	c.live <- liveUpdate{name: name, item: item}
}

// Run consumes worker results and live updates until ctx is cancelled.
// It is the only goroutine that mutates the displayed-item key.
func (c *Coordinator) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case item := <-c.results:
			key := item.DisplayName()
			if key == c.CurrentKey() {
				continue
			}
			c.current.Store(key)
			c.events <- Event{Type: EventItemDetected, Item: item}
			if c.LiveFetch != nil {
				c.LiveFetch(item)
			}
		case lu := <-c.live:
			if lu.name != c.CurrentKey() {
				slog.Debug("dropping stale live price", "item", lu.name)
				continue
			}
			c.events <- Event{Type: EventLivePriceUpdated, Item: lu.item}
		}
	}
}

// Detect runs one full detection cycle for the given pointer position.
// It is dispatched by the poll scheduler on its own goroutine; a failed
// stage aborts the cycle silently, leaving state untouched.
func (c *Coordinator) Detect(pos image.Point) {
	item, err := c.cycle(pos)
	if err != nil {
		slog.Debug("detection cycle aborted", "reason", err)
		return
	}
	c.results <- item
}

// cycle is the capture -> recognize -> normalize -> match pipeline.
func (c *Coordinator) cycle(pos image.Point) (catalog.Item, error) {
	snap := c.store.Snapshot()
	if snap.Len() == 0 {
		return catalog.Item{}, ErrCatalogNotReady
	}

	img, err := c.capture.Region(pos)
	if err != nil {
		return catalog.Item{}, fmt.Errorf("%w: %v", ErrCaptureUnavailable, err)
	}

	texts, err := c.rec.Recognize(img)
	if err != nil {
		return catalog.Item{}, fmt.Errorf("%w: %v", ErrRecognition, err)
	}

	candidates := ocr.Candidates(texts, ocr.DefaultMinLineLen)
	if len(candidates) == 0 {
		return catalog.Item{}, ErrNoCandidates
	}

	item, ok := c.matcher.Match(snap, candidates)
	if !ok {
		return catalog.Item{}, ErrNoMatch
	}

	// Cheap early exit; the Run loop re-checks before emitting.
	if item.DisplayName() == c.CurrentKey() {
		return catalog.Item{}, ErrNoChange
	}
	return item, nil
}
