package export

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// palette cycles through token colors.
var palette = []string{
	"#00ffff", "#ff00ff", "#00ff88", "#ffaa00", "#ff4444", "#4488ff",
	"#ffff44", "#aa66ff", "#44ffcc", "#ff8866", "#88ff44", "#ff66aa",
	"#66ccff", "#ccaa44", "#aaaaaa", "#ffffff",
}

// BraidSVG draws each token's position across recorded line-ups as a
// polyline, one column per round. Every line-up must be a permutation of
// the first one, one token per rune.
func BraidSVG(lineups []string, cell float64) (string, error) {
	if len(lineups) == 0 {
		return "", fmt.Errorf("no line-ups to draw")
	}

	tokens := []rune(lineups[0])
	n := len(tokens)
	paths := make(map[rune][]string, n)

	for round, lineup := range lineups {
		if utf8.RuneCountInString(lineup) != n {
			return "", fmt.Errorf("round %d: line-up %q has %d tokens, want %d", round, lineup, utf8.RuneCountInString(lineup), n)
		}
		for pos, tok := range []rune(lineup) {
			x := cell/2 + float64(round)*cell
			y := cell/2 + float64(pos)*cell
			paths[tok] = append(paths[tok], fmt.Sprintf("%.1f,%.1f", x, y))
		}
	}

	width := float64(len(lineups))*cell + cell
	height := float64(n) * cell

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for i, tok := range tokens {
		pts, ok := paths[tok]
		if !ok || len(pts) != len(lineups) {
			return "", fmt.Errorf("token %q missing from a line-up", tok)
		}
		color := palette[i%len(palette)]
		sb.WriteString(fmt.Sprintf(`<polyline points="%s" fill="none" stroke="%s" stroke-width="%.1f"/>
`, strings.Join(pts, " "), color, cell/8))
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s" font-family="monospace" font-size="%.0f">%c</text>
`, width-cell*0.75, cell/2+float64(positionOf(lineups[len(lineups)-1], tok))*cell+cell/4, color, cell*0.6, tok))
	}

	sb.WriteString("</svg>")
	return sb.String(), nil
}

func positionOf(lineup string, tok rune) int {
	for i, r := range []rune(lineup) {
		if r == tok {
			return i
		}
	}
	return -1
}
