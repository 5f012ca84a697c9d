package catalog

import "encoding/json"

// TraderPrices maps external ids to trader prices from the secondary
// dataset. It is loaded once at startup and consulted at display time; it
// never mutates the catalog itself.
type TraderPrices map[string]int

type traderEntry struct {
	BsgID string `json:"bsgID"`
	Price int    `json:"price"`
}

// ParseTraderPrices decodes the trader dataset. The file ships either as
// {"items": [...]} or as a bare array; both shapes are accepted.
func ParseTraderPrices(data []byte) (TraderPrices, error) {
	var wrapped struct {
		Items []traderEntry `json:"items"`
	}
	entries := wrapped.Items
	if err := json.Unmarshal(data, &wrapped); err == nil {
		entries = wrapped.Items
	} else {
		var bare []traderEntry
		if err := json.Unmarshal(data, &bare); err != nil {
			return nil, err
		}
		entries = bare
	}

	prices := make(TraderPrices, len(entries))
	for _, e := range entries {
		if e.BsgID != "" && e.Price != 0 {
			prices[e.BsgID] = e.Price
		}
	}
	return prices, nil
}

// PriceFor returns the overlay trader price for an item, falling back to
// the item's own trader price when no override exists. The overlay is
// keyed by the game-internal id, so BsgID is preferred.
func (t TraderPrices) PriceFor(it Item) int {
	key := it.BsgID
	if key == "" {
		key = it.UID
	}
	if key != "" {
		if price, ok := t[key]; ok {
			return price
		}
	}
	return it.TraderPrice
}
