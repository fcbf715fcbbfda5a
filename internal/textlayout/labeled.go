package textlayout

import (
	"strings"

	"github.com/youruser/cardmaker/internal/cards"
)

// DrawLabeledField paints a zone's small-caps label followed by body text,
// wrapped to the zone width. The label and the start of the body share the
// first line; later lines hold body text only. If wrapping did not keep the
// label intact at the start of the first line, that line is painted as plain
// body text. The number of lines painted is returned.
func DrawLabeledField(s Surface, z cards.TextZone, body string) int {
	labelFont := Font{Size: z.FontSize, Weight: z.Weight, Style: z.Style}
	bodyFont := Font{Size: z.FontSize, Weight: z.BodyWeight, Style: z.Style}

	text := joinLabel(z.Label, body)
	lines := Wrap(s, text, z.MaxWidth, labelFont)

	for i, line := range lines {
		y := z.Y + float64(i)*z.LineAdvance()
		if i == 0 && z.Label != "" && strings.HasPrefix(line, z.Label) {
			var labelWidth float64
			if z.SmallCaps {
				DrawSmallCaps(s, z.Label, z.X, y, labelFont, z.Color, z.MaxWidth)
				labelWidth = MeasureSmallCapsWidth(s, z.Label, labelFont)
			} else {
				s.DrawText(z.Label, z.X, y, labelFont, z.Color)
				labelWidth = s.MeasureText(z.Label, labelFont)
			}
			if rest := line[len(z.Label):]; rest != "" {
				s.DrawText(rest, z.X+labelWidth, y, bodyFont, z.Color)
			}
			continue
		}
		s.DrawText(line, z.X, y, bodyFont, z.Color)
	}
	return len(lines)
}

func joinLabel(label, body string) string {
	switch {
	case label == "":
		return body
	case body == "":
		return label
	}
	return label + " " + body
}
