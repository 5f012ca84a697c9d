package detect

import (
	"context"
	"errors"
	"image"
	"testing"
	"time"

	"eft-overlay/internal/catalog"
	"eft-overlay/internal/match"
)

type stubCapture struct {
	err error
}

func (s stubCapture) Region(image.Point) (image.Image, error) {
	if s.err != nil {
		return nil, s.err
	}
	return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
}

type stubRecognizer struct {
	texts []string
	err   error
}

func (s stubRecognizer) Recognize(image.Image) ([]string, error) {
	return s.texts, s.err
}

func loadedStore(items ...catalog.Item) *catalog.Store {
	st := catalog.NewStore(nil)
	st.Load(items)
	return st
}

func newTestCoordinator(rec Recognizer, store *catalog.Store) *Coordinator {
	return NewCoordinator(stubCapture{}, rec, store, match.New(match.DefaultThresholds()))
}

func waitEvent(t *testing.T, c *Coordinator) Event {
	t.Helper()
	select {
	case ev := <-c.Events():
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for an event")
		return Event{}
	}
}

func assertNoEvent(t *testing.T, c *Coordinator) {
	t.Helper()
	select {
	case ev := <-c.Events():
		t.Fatalf("unexpected event %+v", ev)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDetectEmitsOncePerTransition(t *testing.T) {
	store := loadedStore(catalog.Item{Name: "Bitcoin", UID: "bc1", FleaPrice: 500000})
	c := newTestCoordinator(stubRecognizer{texts: []string{"bitcoin"}}, store)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Run(ctx)

	c.Detect(image.Pt(0, 0))
	ev := waitEvent(t, c)
	if ev.Type != EventItemDetected || ev.Item.Name != "Bitcoin" {
		t.Fatalf("event = %+v, want ItemDetected(Bitcoin)", ev)
	}

	// Re-detecting the same item must not emit again.
	c.Detect(image.Pt(0, 0))
	c.Detect(image.Pt(0, 0))
	assertNoEvent(t, c)

	if c.CurrentKey() != "Bitcoin" {
		t.Errorf("CurrentKey = %q", c.CurrentKey())
	}
}

func TestDetectTransitionsBetweenItems(t *testing.T) {
	store := loadedStore(
		catalog.Item{Name: "Bitcoin", UID: "bc1"},
		catalog.Item{Name: "Tushonka", UID: "tu1"},
	)
	c := newTestCoordinator(stubRecognizer{texts: []string{"bitcoin"}}, store)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Run(ctx)

	c.Detect(image.Pt(0, 0))
	if ev := waitEvent(t, c); ev.Item.Name != "Bitcoin" {
		t.Fatalf("first detection = %+v", ev)
	}

	c.rec = stubRecognizer{texts: []string{"tushonka"}}
	c.Detect(image.Pt(0, 0))
	if ev := waitEvent(t, c); ev.Item.Name != "Tushonka" {
		t.Fatalf("second detection = %+v", ev)
	}
}

func TestCycleErrors(t *testing.T) {
	item := catalog.Item{Name: "Bitcoin", UID: "bc1"}

	tests := []struct {
		name    string
		capture Capturer
		rec     Recognizer
		store   *catalog.Store
		want    error
	}{
		{
			name:    "catalog not ready",
			capture: stubCapture{},
			rec:     stubRecognizer{texts: []string{"bitcoin"}},
			store:   catalog.NewStore(nil),
			want:    ErrCatalogNotReady,
		},
		{
			name:    "capture unavailable",
			capture: stubCapture{err: errors.New("denied")},
			rec:     stubRecognizer{texts: []string{"bitcoin"}},
			store:   loadedStore(item),
			want:    ErrCaptureUnavailable,
		},
		{
			name:    "recognition failure",
			capture: stubCapture{},
			rec:     stubRecognizer{err: errors.New("tesseract crashed")},
			store:   loadedStore(item),
			want:    ErrRecognition,
		},
		{
			name:    "no candidates",
			capture: stubCapture{},
			rec:     stubRecognizer{texts: []string{"ab\n x"}},
			store:   loadedStore(item),
			want:    ErrNoCandidates,
		},
		{
			name:    "no match",
			capture: stubCapture{},
			rec:     stubRecognizer{texts: []string{"nothing in catalog"}},
			store:   loadedStore(item),
			want:    ErrNoMatch,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCoordinator(tc.capture, tc.rec, tc.store, match.New(match.DefaultThresholds()))
			_, err := c.cycle(image.Pt(0, 0))
			if !errors.Is(err, tc.want) {
				t.Errorf("cycle error = %v, want %v", err, tc.want)
			}
			if c.CurrentKey() != "" {
				t.Error("failed cycles must not alter state")
			}
		})
	}
}

func TestStaleLivePriceSuppressed(t *testing.T) {
	store := loadedStore(
		catalog.Item{Name: "Bitcoin", UID: "bc1"},
		catalog.Item{Name: "Tushonka", UID: "tu1"},
	)
	c := newTestCoordinator(stubRecognizer{texts: []string{"bitcoin"}}, store)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Run(ctx)

	c.Detect(image.Pt(0, 0))
	waitEvent(t, c)

	// A live fetch for an item no longer on display must be dropped.
	c.OfferLive("Tushonka", catalog.Item{Name: "Tushonka", FleaPrice: 1})
	assertNoEvent(t, c)

	// One for the displayed item goes through.
	c.OfferLive("Bitcoin", catalog.Item{Name: "Bitcoin", FleaPrice: 2})
	ev := waitEvent(t, c)
	if ev.Type != EventLivePriceUpdated || ev.Item.FleaPrice != 2 {
		t.Errorf("event = %+v, want LivePriceUpdated(FleaPrice 2)", ev)
	}
}

func TestLiveFetchHookFiresOnTransition(t *testing.T) {
	store := loadedStore(catalog.Item{Name: "Bitcoin", UID: "bc1"})
	c := newTestCoordinator(stubRecognizer{texts: []string{"bitcoin"}}, store)

	fetched := make(chan string, 1)
	c.LiveFetch = func(it catalog.Item) {
		fetched <- it.ExternalID()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Run(ctx)

	c.Detect(image.Pt(0, 0))
	waitEvent(t, c)

	select {
	case uid := <-fetched:
		if uid != "bc1" {
			t.Errorf("live fetch for %q, want bc1", uid)
		}
	case <-time.After(time.Second):
		t.Fatal("live fetch hook never fired")
	}
}

func TestResetReturnsToIdle(t *testing.T) {
	store := loadedStore(catalog.Item{Name: "Bitcoin", UID: "bc1"})
	c := newTestCoordinator(stubRecognizer{texts: []string{"bitcoin"}}, store)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Run(ctx)

	c.Detect(image.Pt(0, 0))
	waitEvent(t, c)

	c.Reset()
	c.Detect(image.Pt(0, 0))
	if ev := waitEvent(t, c); ev.Type != EventItemDetected {
		t.Errorf("after Reset the same item should emit again, got %+v", ev)
	}
}
