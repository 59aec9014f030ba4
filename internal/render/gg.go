package render

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

var _ Canvas = (*GG)(nil)

// GG rasterizes onto an RGBA image.
type GG struct {
	dc    *gg.Context
	cur   style
	stack []style
}

// NewGG creates a transparent canvas of the given size in pixels.
func NewGG(width, height int) *GG {
	return &GG{dc: gg.NewContext(width, height), cur: defaultStyle()}
}

func (g *GG) Width() float64  { return float64(g.dc.Width()) }
func (g *GG) Height() float64 { return float64(g.dc.Height()) }

// Image returns the backing image. It is reused across frames.
func (g *GG) Image() image.Image {
	return g.dc.Image()
}

// SavePNG writes the current frame to path.
func (g *GG) SavePNG(path string) error {
	return g.dc.SavePNG(path)
}

func (g *GG) Background(c color.Color) {
	g.dc.Push()
	g.dc.Identity()
	g.dc.SetColor(c)
	g.dc.DrawRectangle(0, 0, g.Width(), g.Height())
	g.dc.Fill()
	g.dc.Pop()
}

func (g *GG) Fill(c color.Color) { g.cur.fill = c }
func (g *GG) NoFill()            { g.cur.fill = nil }

func (g *GG) Stroke(c color.Color, weight float64) {
	g.cur.stroke = c
	g.cur.strokeWidth = weight
}

func (g *GG) NoStroke() { g.cur.stroke = nil }

func (g *GG) Ellipse(x, y, w, h float64) {
	g.dc.DrawEllipse(x, y, w/2, h/2)
	g.paint()
}

func (g *GG) Rect(x, y, w, h float64) {
	g.dc.DrawRectangle(x, y, w, h)
	g.paint()
}

func (g *GG) Text(s string, x, y float64) {
	if g.cur.fill == nil {
		return
	}
	g.dc.SetColor(g.cur.fill)
	g.dc.DrawStringAnchored(s, x, y, 0.5, 0.5)
}

func (g *GG) Push() {
	g.dc.Push()
	g.stack = append(g.stack, g.cur)
}

func (g *GG) Pop() {
	g.dc.Pop()
	if n := len(g.stack); n > 0 {
		g.cur = g.stack[n-1]
		g.stack = g.stack[:n-1]
	}
}

func (g *GG) Translate(x, y float64) { g.dc.Translate(x, y) }
func (g *GG) Rotate(angle float64)   { g.dc.Rotate(angle) }

// paint fills and strokes the pending path with the current style.
func (g *GG) paint() {
	switch {
	case g.cur.fill != nil && g.cur.stroke != nil:
		g.dc.SetColor(g.cur.fill)
		g.dc.FillPreserve()
		g.strokePath()
	case g.cur.fill != nil:
		g.dc.SetColor(g.cur.fill)
		g.dc.Fill()
	case g.cur.stroke != nil:
		g.strokePath()
	default:
		g.dc.ClearPath()
	}
}

func (g *GG) strokePath() {
	g.dc.SetColor(g.cur.stroke)
	g.dc.SetLineWidth(g.cur.strokeWidth)
	g.dc.Stroke()
}
