package render

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Params are the visualizer's tuning constants. Lengths are fractions of the
// canvas width.
type Params struct {
	Bars             int
	Amplification    float64 // applied to each spectrum sample before mapping
	SpectrumFraction float64 // share of the spectrum the bars sweep, from bin 0
	RotationSpeed    float64 // radians per frame

	BarRadius    float64
	MaxBarLength float64
	BarThickness float64
	Saturation   float64
	Brightness   float64

	GlowMinRadius float64
	GlowMaxRadius float64
	GlowLayers    int
	GlowStep      float64
	Accent        color.NRGBA

	FadeAlpha uint8
	IdleLabel string
}

// DefaultParams returns the record layout used when nothing is configured.
func DefaultParams() Params {
	return Params{
		Bars:             180,
		Amplification:    2,
		SpectrumFraction: 0.5,
		RotationSpeed:    0.01,
		BarRadius:        0.45,
		MaxBarLength:     0.15,
		BarThickness:     0.01,
		Saturation:       0.8,
		Brightness:       0.9,
		GlowMinRadius:    0.1,
		GlowMaxRadius:    0.25,
		GlowLayers:       5,
		GlowStep:         0.0125,
		Accent:           color.NRGBA{R: 29, G: 185, B: 84, A: 255},
		FadeAlpha:        30,
		IdleLabel:        "Click Play to Start",
	}
}

// grooves are the record groove radii, as fractions of the canvas size.
var grooves = []float64{0.15, 0.2, 0.25, 0.3, 0.35, 0.4, 0.45}

// Vinyl draws the spinning record: idle artwork, or grooves, frequency
// bars and a level glow while a track plays.
type Vinyl struct {
	p    Params
	hues []color.Color
}

// NewVinyl precomputes the bar colours for p.
func NewVinyl(p Params) *Vinyl {
	if p.Bars <= 0 {
		p.Bars = DefaultParams().Bars
	}
	hues := make([]color.Color, p.Bars)
	for i := range hues {
		hue := Map(float64(i), 0, float64(p.Bars), 0, 360)
		hues[i] = colorful.Hsv(hue, p.Saturation, p.Brightness).Clamped()
	}
	return &Vinyl{p: p, hues: hues}
}

// BarColor is the fixed rainbow colour of bar i.
func (v *Vinyl) BarColor(i int) color.Color {
	return v.hues[i]
}

// Fade darkens the previous frame.
func (v *Vinyl) Fade(c Canvas) {
	c.Background(color.NRGBA{A: v.p.FadeAlpha})
}

// DrawIdle draws the static record and the start prompt.
func (v *Vinyl) DrawIdle(c Canvas) {
	w, h := c.Width(), c.Height()
	cx, cy := w/2, h/2

	c.Background(Gray(20))

	c.NoStroke()
	c.Fill(Gray(40))
	c.Ellipse(cx, cy, w*0.9, h*0.9)
	c.Fill(Gray(30))
	c.Ellipse(cx, cy, w*0.6, h*0.6)
	c.Fill(Gray(20))
	c.Ellipse(cx, cy, w*0.1, h*0.1)

	c.NoFill()
	c.Stroke(Gray(25), 1)
	for _, r := range grooves {
		c.Ellipse(cx, cy, w*r*2, h*r*2)
	}

	c.Fill(Gray(150))
	c.NoStroke()
	c.Text(v.p.IdleLabel, cx, cy+w*0.35)
}

// DrawActive draws one frame of the playing record. An empty spectrum skips
// the bars; the record and the glow are always drawn.
func (v *Vinyl) DrawActive(c Canvas, frame int, spectrum []float64, level float64) {
	w, h := c.Width(), c.Height()
	cx, cy := w/2, h/2

	c.Background(Gray(20))
	c.NoStroke()
	c.Fill(Gray(40))
	c.Ellipse(cx, cy, w*0.9, h*0.9)

	c.Push()
	c.Translate(cx, cy)
	c.Rotate(float64(frame) * v.p.RotationSpeed)

	c.NoFill()
	c.Stroke(Gray(30), 1)
	for _, r := range grooves {
		c.Ellipse(0, 0, w*r*2, h*r*2)
	}

	c.NoStroke()
	c.Fill(Gray(60))
	c.Ellipse(0, 0, w*0.3, h*0.3)

	v.drawBars(c, spectrum)
	c.Pop()

	c.NoStroke()
	c.Fill(Gray(20))
	c.Ellipse(cx, cy, w*0.08, h*0.08)

	v.drawGlow(c, level)
}

// drawBars expects the origin at the record centre.
func (v *Vinyl) drawBars(c Canvas, spectrum []float64) {
	if len(spectrum) == 0 {
		return
	}

	w := c.Width()
	radius := w * v.p.BarRadius
	maxLen := w * v.p.MaxBarLength
	thickness := math.Max(w*v.p.BarThickness, 1)
	bars := float64(v.p.Bars)

	c.NoStroke()
	for i := 0; i < v.p.Bars; i++ {
		idx := BarIndex(i, v.p.Bars, len(spectrum), v.p.SpectrumFraction)
		value := spectrum[idx] * v.p.Amplification
		length := Map(value, 0, 1, 0, maxLen)
		angle := Map(float64(i), 0, bars, 0, 2*math.Pi)

		c.Fill(v.hues[i])
		c.Push()
		c.Rotate(angle)
		c.Rect(radius, -thickness/2, length, thickness)
		c.Pop()
	}
}

func (v *Vinyl) drawGlow(c Canvas, level float64) {
	w, h := c.Width(), c.Height()
	cx, cy := w/2, h/2
	level = math.Max(0, math.Min(1, level))
	radius := Map(level, 0, 1, w*v.p.GlowMinRadius, w*v.p.GlowMaxRadius)
	accent := v.p.Accent

	c.NoStroke()
	for i := v.p.GlowLayers; i > 0; i-- {
		alpha := Map(float64(i), 0, float64(v.p.GlowLayers), 255, 0) * 0.7
		c.Fill(color.NRGBA{R: accent.R, G: accent.G, B: accent.B, A: uint8(alpha)})
		d := 2 * (radius + float64(i)*v.p.GlowStep*w)
		c.Ellipse(cx, cy, d, d)
	}

	c.Fill(accent)
	c.Ellipse(cx, cy, radius*2, radius*2)
}
