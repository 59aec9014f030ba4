package components

import (
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// upperHalf shows the top pixel as foreground and the bottom as background.
const upperHalf = "▀"

// RenderImage draws img as terminal cells, two pixel rows per line. Runs of
// identical cells share one styled segment.
func RenderImage(img image.Image) string {
	b := img.Bounds()
	var sb strings.Builder

	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		if y > b.Min.Y {
			sb.WriteString("\n")
		}

		run := 0
		var runTop, runBottom string
		flush := func() {
			if run == 0 {
				return
			}
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(runTop)).
				Background(lipgloss.Color(runBottom))
			sb.WriteString(style.Render(strings.Repeat(upperHalf, run)))
			run = 0
		}

		for x := b.Min.X; x < b.Max.X; x++ {
			top := hexAt(img, x, y)
			bottom := "#000000"
			if y+1 < b.Max.Y {
				bottom = hexAt(img, x, y+1)
			}
			if run > 0 && (top != runTop || bottom != runBottom) {
				flush()
			}
			runTop, runBottom = top, bottom
			run++
		}
		flush()
	}
	return sb.String()
}

func hexAt(img image.Image, x, y int) string {
	c, ok := colorful.MakeColor(img.At(x, y))
	if !ok {
		return "#000000"
	}
	return c.Hex()
}
