// Package stats provides training telemetry: sliding-window accuracy over
// exploit episodes and summary reports over population snapshots.
package stats

// Window tracks the success rate of the most recent results in a fixed-size
// ring. It answers "what fraction of the last n exploit episodes were
// correct", the standard performance curve for online rule learners.
type Window struct {
	results []bool
	next    int
	filled  int
}

// NewWindow creates a ring of the given capacity; sizes below 1 are clamped
// to 1.
func NewWindow(size int) *Window {
	if size < 1 {
		size = 1
	}
	return &Window{results: make([]bool, size)}
}

// Add records one outcome.
func (w *Window) Add(correct bool) {
	w.results[w.next] = correct
	w.next = (w.next + 1) % len(w.results)
	if w.filled < len(w.results) {
		w.filled++
	}
}

// Accuracy returns the success fraction over the recorded outcomes, zero when
// empty.
func (w *Window) Accuracy() float64 {
	if w.filled == 0 {
		return 0
	}
	correct := 0
	for i := 0; i < w.filled; i++ {
		if w.results[i] {
			correct++
		}
	}
	return float64(correct) / float64(w.filled)
}

// Count returns how many outcomes have been recorded, capped at the window
// size.
func (w *Window) Count() int { return w.filled }
