// Package render draws the player's vinyl visualization onto an explicit
// immediate-mode drawing context.
//
// A Canvas carries its own transform and style. Push saves both and Pop
// restores them, so a rotation never leaks past the block that set it.
package render

import "image/color"

// Canvas is the drawing surface the visualizer renders to.
type Canvas interface {
	Width() float64
	Height() float64

	// Background paints the whole surface, ignoring the transform.
	// A translucent colour fades the previous frame.
	Background(c color.Color)

	Fill(c color.Color)
	NoFill()
	Stroke(c color.Color, weight float64)
	NoStroke()

	// Ellipse is centred on (x, y) with the given width and height.
	Ellipse(x, y, w, h float64)
	// Rect has its top-left corner at (x, y).
	Rect(x, y, w, h float64)
	// Text is centred on (x, y) in the current fill colour.
	Text(s string, x, y float64)

	Push()
	Pop()
	Translate(x, y float64)
	Rotate(angle float64)
}

// Gray is an opaque gray level, like a single-argument canvas colour.
func Gray(v uint8) color.NRGBA {
	return color.NRGBA{R: v, G: v, B: v, A: 0xff}
}

// style is the part of the drawing state that Push saves.
type style struct {
	fill        color.Color
	stroke      color.Color
	strokeWidth float64
}

func defaultStyle() style {
	return style{fill: color.White, stroke: color.Black, strokeWidth: 1}
}
