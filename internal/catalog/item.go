// Package catalog holds the item dataset and its lookup indices.
package catalog

import "strings"

// Item is one catalog entry as served by the market API.
// Identity fields (name, ids) are immutable once indexed; market fields
// are replaced wholesale whenever a fresher record arrives.
type Item struct {
	Name      string `json:"name,omitempty"`
	ShortName string `json:"shortName,omitempty"`
	UID       string `json:"uid,omitempty"`
	BsgID     string `json:"bsgId,omitempty"`

	TraderName     string `json:"traderName,omitempty"`
	TraderPrice    int    `json:"traderPrice,omitempty"`
	TraderPriceCur string `json:"traderPriceCur,omitempty"`

	FleaPrice     int     `json:"price,omitempty"`
	Avg24hPrice   int     `json:"avg24hPrice,omitempty"`
	Diff24h       float64 `json:"diff24h,omitempty"`
	Avg7daysPrice int     `json:"avg7daysPrice,omitempty"`
	Diff7days     float64 `json:"diff7days,omitempty"`
	BannedOnFlea  bool    `json:"bannedOnFlea,omitempty"`

	// RFC3339 timestamp of the last market update, as sent by the API.
	Updated string `json:"updated,omitempty"`
}

// DisplayName returns the canonical display name, falling back to the
// short name for records that lack a full one.
func (it Item) DisplayName() string {
	if it.Name != "" {
		return it.Name
	}
	return it.ShortName
}

// ExternalID returns the item's external identifier, preferring the
// market UID over the game-internal id.
func (it Item) ExternalID() string {
	if it.UID != "" {
		return it.UID
	}
	return it.BsgID
}

// AlternateKeys returns the lookup keys this item is reachable by: the
// lower-cased display name plus a separator-normalized variant. The
// variant is omitted when normalization changes nothing.
func (it Item) AlternateKeys() []string {
	lower := strings.ToLower(it.DisplayName())
	keys := []string{lower}
	if clean := normalizeSeparators(lower); clean != lower {
		keys = append(keys, clean)
	}
	return keys
}

// normalizeSeparators maps dashes and underscores to spaces so that
// "AK-74" is reachable as "ak 74".
func normalizeSeparators(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	return strings.ReplaceAll(s, "_", " ")
}

// mergeMarket replaces the market fields of it with those of live,
// leaving identity fields untouched.
func (it Item) mergeMarket(live Item) Item {
	it.TraderName = live.TraderName
	it.TraderPrice = live.TraderPrice
	it.TraderPriceCur = live.TraderPriceCur
	it.FleaPrice = live.FleaPrice
	it.Avg24hPrice = live.Avg24hPrice
	it.Diff24h = live.Diff24h
	it.Avg7daysPrice = live.Avg7daysPrice
	it.Diff7days = live.Diff7days
	it.BannedOnFlea = live.BannedOnFlea
	it.Updated = live.Updated
	return it
}
