package textlayout

import "strings"

// Wrap breaks text into lines no wider than maxWidth, breaking only at
// single spaces. A word that is wider than maxWidth on its own is kept
// whole on its own line. Empty text yields no lines.
func Wrap(m Measurer, text string, maxWidth float64, f Font) []string {
	var lines []string
	current := ""
	for _, word := range strings.Split(text, " ") {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if current != "" && m.MeasureText(candidate, f) > maxWidth {
			lines = append(lines, current)
			current = word
			continue
		}
		current = candidate
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
