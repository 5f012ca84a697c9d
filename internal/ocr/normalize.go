package ocr

import "strings"

// DefaultMinLineLen is the minimum candidate length kept after cleanup.
const DefaultMinLineLen = 3

// confusions maps glyphs Tesseract reliably mistakes for one another in
// the game's inventory font. The set is narrow, ordered and deliberately
// non-reversible: the visual confusions are asymmetric for this font.
var confusions = [...]struct{ from, to string }{
	{"|", "I"},
	{"0", "O"},
	{"1", "l"},
}

// Candidates turns raw recognition output into a deduplicated list of
// candidate lines. Each line is trimmed, run through the confusion table,
// whitespace-collapsed, and dropped if shorter than minLen. The result
// preserves first-seen order, so identical raw input always yields the
// identical candidate list.
func Candidates(raw []string, minLen int) []string {
	if minLen <= 0 {
		minLen = DefaultMinLineLen
	}

	seen := make(map[string]struct{})
	var out []string
	for _, text := range raw {
		for _, line := range strings.Split(text, "\n") {
			line = normalizeLine(line)
			if len(line) < minLen {
				continue
			}
			if _, dup := seen[line]; dup {
				continue
			}
			seen[line] = struct{}{}
			out = append(out, line)
		}
	}
	return out
}

func normalizeLine(line string) string {
	line = strings.TrimSpace(line)
	for _, c := range confusions {
		line = strings.ReplaceAll(line, c.from, c.to)
	}
	// Collapse internal whitespace runs to single spaces.
	return strings.Join(strings.Fields(line), " ")
}
