package audio

import (
	"testing"

	"github.com/go-test/deep"
	"github.com/gopxl/beep/v2"
)

func counter() beep.Streamer {
	n := 0.0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			n++
			samples[i] = [2]float64{n, n}
		}
		return len(samples), true
	})
}

func TestTapKeepsMostRecentSamples(t *testing.T) {
	tap := NewTap(counter(), 4)
	tap.Stream(make([][2]float64, 6))

	if diff := deep.Equal(tap.Samples(4), []float64{3, 4, 5, 6}); diff != nil {
		t.Errorf("Samples(4): %v", diff)
	}
	if diff := deep.Equal(tap.Samples(6), []float64{0, 0, 3, 4, 5, 6}); diff != nil {
		t.Errorf("Samples beyond the ring should pad with silence: %v", diff)
	}
	if got := tap.Samples(0); got != nil {
		t.Errorf("Samples(0) = %v, want nil", got)
	}
}

func TestTapWrapsAcrossChunks(t *testing.T) {
	tap := NewTap(counter(), 4)
	tap.Stream(make([][2]float64, 3))
	tap.Stream(make([][2]float64, 3))

	tests := []struct {
		n    int
		want []float64
	}{
		{1, []float64{6}},
		{3, []float64{4, 5, 6}},
		{4, []float64{3, 4, 5, 6}},
	}
	for _, tt := range tests {
		if diff := deep.Equal(tap.Samples(tt.n), tt.want); diff != nil {
			t.Errorf("Samples(%d): %v", tt.n, diff)
		}
	}
}

func TestHoldAtEndPadsWithSilence(t *testing.T) {
	h := &holdAtEnd{s: beep.Take(3, counter())}

	buf := make([][2]float64, 5)
	n, ok := h.Stream(buf)
	if n != 5 || !ok {
		t.Fatalf("Stream = (%d, %v), want (5, true)", n, ok)
	}
	if buf[2][0] != 3 || buf[3][0] != 0 || buf[4][1] != 0 {
		t.Errorf("unexpected samples %v", buf)
	}

	n, ok = h.Stream(buf)
	if n != 5 || !ok {
		t.Errorf("drained hold should keep streaming silence, got (%d, %v)", n, ok)
	}
}
