package detect

import "errors"

// Stage errors for a detection cycle. All of them abort the cycle
// without touching display state; they exist so the abort decision is
// explicit and testable rather than hidden behind blanket recovery.
var (
	// ErrCatalogNotReady means no catalog snapshot has been loaded yet.
	ErrCatalogNotReady = errors.New("catalog not loaded")

	// ErrCaptureUnavailable means the platform denied or failed the
	// screen capture.
	ErrCaptureUnavailable = errors.New("capture unavailable")

	// ErrRecognition means every recognition attempt failed.
	ErrRecognition = errors.New("recognition failed")

	// ErrNoCandidates means recognition produced no usable text lines.
	ErrNoCandidates = errors.New("no candidates")

	// ErrNoMatch means no candidate resolved to a catalog item.
	ErrNoMatch = errors.New("no match")

	// ErrNoChange means the match equals the currently displayed item.
	ErrNoChange = errors.New("item unchanged")
)
