package render

import "image/color"

type Op string

const (
	OpBackground Op = "background"
	OpEllipse    Op = "ellipse"
	OpRect       Op = "rect"
	OpText       Op = "text"
	OpPush       Op = "push"
	OpPop        Op = "pop"
	OpTranslate  Op = "translate"
	OpRotate     Op = "rotate"
)

// Command is one recorded drawing call with the style it was drawn in.
// Fill and Stroke are nil when disabled.
type Command struct {
	Op     Op
	Args   []float64
	Fill   color.Color
	Stroke color.Color
	Text   string
}

var _ Canvas = (*Recorder)(nil)

// Recorder is a Canvas that keeps the draw calls instead of rasterizing them.
type Recorder struct {
	Commands []Command

	w, h  float64
	cur   style
	stack []style
}

// NewRecorder returns an empty recorder for a w by h canvas.
func NewRecorder(w, h float64) *Recorder {
	return &Recorder{w: w, h: h, cur: defaultStyle()}
}

func (r *Recorder) Width() float64  { return r.w }
func (r *Recorder) Height() float64 { return r.h }

func (r *Recorder) Background(c color.Color) {
	r.Commands = append(r.Commands, Command{Op: OpBackground, Fill: c})
}

func (r *Recorder) Fill(c color.Color) { r.cur.fill = c }
func (r *Recorder) NoFill()            { r.cur.fill = nil }

func (r *Recorder) Stroke(c color.Color, weight float64) {
	r.cur.stroke = c
	r.cur.strokeWidth = weight
}

func (r *Recorder) NoStroke() { r.cur.stroke = nil }

func (r *Recorder) Ellipse(x, y, w, h float64) { r.shape(OpEllipse, x, y, w, h) }
func (r *Recorder) Rect(x, y, w, h float64)    { r.shape(OpRect, x, y, w, h) }

func (r *Recorder) Text(s string, x, y float64) {
	r.Commands = append(r.Commands, Command{Op: OpText, Args: []float64{x, y}, Fill: r.cur.fill, Text: s})
}

func (r *Recorder) Push() {
	r.stack = append(r.stack, r.cur)
	r.Commands = append(r.Commands, Command{Op: OpPush})
}

func (r *Recorder) Pop() {
	if n := len(r.stack); n > 0 {
		r.cur = r.stack[n-1]
		r.stack = r.stack[:n-1]
	}
	r.Commands = append(r.Commands, Command{Op: OpPop})
}

func (r *Recorder) Translate(x, y float64) {
	r.Commands = append(r.Commands, Command{Op: OpTranslate, Args: []float64{x, y}})
}

func (r *Recorder) Rotate(angle float64) {
	r.Commands = append(r.Commands, Command{Op: OpRotate, Args: []float64{angle}})
}

func (r *Recorder) shape(op Op, x, y, w, h float64) {
	r.Commands = append(r.Commands, Command{
		Op:     op,
		Args:   []float64{x, y, w, h},
		Fill:   r.cur.fill,
		Stroke: r.cur.stroke,
	})
}

// Count returns how many commands of op were recorded.
func (r *Recorder) Count(op Op) int {
	n := 0
	for _, c := range r.Commands {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Depth returns the current Push nesting.
func (r *Recorder) Depth() int {
	return len(r.stack)
}

// Reset drops the recorded commands and the drawing state.
func (r *Recorder) Reset() {
	r.Commands = r.Commands[:0]
	r.cur = defaultStyle()
	r.stack = r.stack[:0]
}
