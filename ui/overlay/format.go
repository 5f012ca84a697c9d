// Package overlay renders the always-on-top price window.
package overlay

import (
	"fmt"
	"strconv"
	"time"

	"eft-overlay/internal/catalog"
)

// maxNameLen is the display-name length before truncation.
const maxNameLen = 28

// Tone is a semantic color for a row value; the widget layer maps it to
// an actual color.
type Tone int

const (
	ToneNeutral Tone = iota
	ToneAccent
	TonePositive
	ToneNegative
	ToneGold
	ToneDim
)

// Row is one label/value line of the item view.
type Row struct {
	Label string
	Value string
	Tone  Tone
}

// Model is everything the item view displays for one item.
type Model struct {
	Name       string
	Rows       []Row
	Banned     bool
	UpdatedAgo string // empty when no timestamp is known
}

// BuildModel assembles the displayable view of an item. The trader-price
// overlay takes precedence over the item's own trader price, and items
// banned from the flea market show no flea-derived rows at all,
// whatever their raw values say.
func BuildModel(it catalog.Item, trader catalog.TraderPrices, now time.Time) Model {
	m := Model{
		Name:   truncateName(it.DisplayName()),
		Banned: it.BannedOnFlea,
	}

	traderName := it.TraderName
	if traderName == "" {
		traderName = "Unknown"
	}
	currency := it.TraderPriceCur
	if currency == "" {
		currency = "RUB"
	}
	traderPrice := trader.PriceFor(it)

	m.Rows = append(m.Rows,
		Row{Label: "Trader", Value: traderName, Tone: ToneAccent},
		Row{Label: "Trade Price", Value: groupDigits(traderPrice) + " " + currency, Tone: ToneNeutral},
	)

	if it.BannedOnFlea {
		return m
	}

	m.Rows = append(m.Rows,
		Row{Label: "Flea Price", Value: groupDigits(it.FleaPrice) + " RUB", Tone: ToneGold},
		trendRow("24h Avg", it.Avg24hPrice, it.Diff24h),
		trendRow("7d Avg", it.Avg7daysPrice, it.Diff7days),
		profitRow(it.FleaPrice, traderPrice),
	)
	m.UpdatedAgo = timeAgo(it.Updated, now)
	return m
}

// trendRow renders an average price with its signed percentage change.
func trendRow(label string, price int, diff float64) Row {
	tone := TonePositive
	if diff < 0 {
		tone = ToneNegative
	}
	return Row{
		Label: label,
		Value: fmt.Sprintf("%s RUB (%+.1f%%)", groupDigits(price), diff),
		Tone:  tone,
	}
}

// profitRow renders flea price minus trader price, labelled with the
// side that wins.
func profitRow(fleaPrice, traderPrice int) Row {
	profit := fleaPrice - traderPrice
	switch {
	case profit > 0:
		return Row{Label: "Profit", Value: "+" + groupDigits(profit) + " RUB (flea)", Tone: TonePositive}
	case profit < 0:
		return Row{Label: "Profit", Value: groupDigits(-profit) + " RUB (trader)", Tone: ToneNegative}
	default:
		return Row{Label: "Profit", Value: "0 RUB", Tone: ToneDim}
	}
}

// truncateName shortens long item names for the fixed-width window.
func truncateName(name string) string {
	if len(name) <= maxNameLen {
		return name
	}
	return name[:maxNameLen] + "..."
}

// groupDigits formats n with comma thousands separators.
func groupDigits(n int) string {
	s := strconv.Itoa(n)
	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}

	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}

// timeAgo renders the market timestamp as a coarse age, evaluated in the
// API's GMT+8 reference zone. Empty input yields an empty string; an
// unparseable timestamp yields "?", matching the fail-soft display.
func timeAgo(updated string, now time.Time) string {
	if updated == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339, updated)
	if err != nil {
		return "?"
	}

	gmt8 := time.FixedZone("GMT+8", 8*3600)
	elapsed := now.In(gmt8).Sub(t.In(gmt8))
	seconds := int(elapsed.Seconds())
	switch {
	case seconds < 60:
		return "just now"
	case seconds < 3600:
		return fmt.Sprintf("%dm ago", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%dh ago", seconds/3600)
	default:
		return fmt.Sprintf("%dd ago", seconds/86400)
	}
}
