package timefmt

import (
	"testing"
	"time"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		in   time.Duration
		want string
	}{
		{"zero", 0, "0:00"},
		{"one minute five", 65 * time.Second, "1:05"},
		{"floors fractional seconds", Seconds(59.9), "0:59"},
		{"exact minute", time.Minute, "1:00"},
		{"long track", 12*time.Minute + 3*time.Second, "12:03"},
		{"over an hour stays in minutes", 61*time.Minute + 1500*time.Millisecond, "61:01"},
		{"negative clamps", -3 * time.Second, "0:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.in); got != tt.want {
				t.Errorf("Format(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSeconds(t *testing.T) {
	if got := Seconds(1.5); got != 1500*time.Millisecond {
		t.Errorf("Seconds(1.5) = %v", got)
	}
}
