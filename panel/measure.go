package panel

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// LabelFace approximates the axis label font when measuring tick labels.
var LabelFace font.Face = basicfont.Face7x13

// TextWidth returns the advance width of s in LabelFace, in pixels.
func TextWidth(s string) int {
	return font.MeasureString(LabelFace, s).Ceil()
}

func maxTextWidth(labels []string) int {
	max := 0
	for _, l := range labels {
		if w := TextWidth(l); w > max {
			max = w
		}
	}
	return max
}
