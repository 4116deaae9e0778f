// Package timing measures the phases of a completion request.
package timing

import (
	"fmt"
	"strings"
	"time"
)

// Phase is one measured step
type Phase struct {
	Label    string
	Duration time.Duration // Time since the previous mark
}

// Timer records consecutive phases
type Timer struct {
	start  time.Time
	last   time.Time
	phases []Phase
}

// NewTimer creates a timer starting now
func NewTimer() *Timer {
	now := time.Now()
	return &Timer{start: now, last: now}
}

// Mark closes the current phase under label and returns its duration
func (t *Timer) Mark(label string) time.Duration {
	now := time.Now()
	d := now.Sub(t.last)
	t.last = now
	t.phases = append(t.phases, Phase{Label: label, Duration: d})
	return d
}

// Elapsed returns the time since the timer started
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// Phases returns the recorded phases in order
func (t *Timer) Phases() []Phase {
	return append([]Phase(nil), t.phases...)
}

// Summary formats the total and every phase in milliseconds
func (t *Timer) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "total=%.3fms", ms(t.Elapsed()))
	for _, p := range t.phases {
		fmt.Fprintf(&b, " %s=%.3fms", p.Label, ms(p.Duration))
	}
	return b.String()
}

func ms(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}
