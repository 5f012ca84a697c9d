package detect

import "eft-overlay/internal/catalog"

// EventType identifies notifications sent to the presentation layer.
type EventType int

const (
	// EventItemDetected carries a newly resolved item.
	EventItemDetected EventType = iota
	// EventCatalogReady reports the item count after a catalog load.
	EventCatalogReady
	// EventLivePriceUpdated carries fresher market data for the item
	// currently on display.
	EventLivePriceUpdated
)

// Event is the single message type crossing into the presentation layer.
// Background work never touches UI state directly; it hands events over
// and lets the UI loop apply them.
type Event struct {
	Type  EventType
	Item  catalog.Item // ItemDetected, LivePriceUpdated
	Count int          // CatalogReady
}
