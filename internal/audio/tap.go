// Package audio decodes and plays tracks and exposes the most recently played
// samples to the analyzer.
package audio

import (
	"sync"

	"github.com/faiface/beep"
)

// Tap wraps a beep.Streamer and records the last N samples into a ring buffer
// so the renderer can analyze recently played audio. The speaker goroutine
// writes, the render tick reads.
type Tap struct {
	Source    beep.Streamer
	buffer    [][2]float64
	nextIndex int
	mu        sync.RWMutex
}

func NewTap(src beep.Streamer, ringSize int) *Tap {
	if ringSize <= 0 {
		ringSize = 1
	}
	return &Tap{
		Source: src,
		buffer: make([][2]float64, ringSize),
	}
}

func (t *Tap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Source.Stream(samples)
	if n > 0 {
		t.mu.Lock()
		for i := 0; i < n; i++ {
			t.buffer[t.nextIndex] = samples[i]
			t.nextIndex++
			if t.nextIndex >= len(t.buffer) {
				t.nextIndex = 0
			}
		}
		t.mu.Unlock()
	}
	return n, ok
}

func (t *Tap) Err() error { return t.Source.Err() }

// Snapshot returns up to the last n stereo samples, oldest first.
func (t *Tap) Snapshot(n int) [][2]float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if n > len(t.buffer) {
		n = len(t.buffer)
	}
	if n <= 0 {
		return nil
	}
	out := make([][2]float64, n)
	start := t.nextIndex - n
	if start < 0 {
		start += len(t.buffer)
	}
	for i := range out {
		out[i] = t.buffer[(start+i)%len(t.buffer)]
	}
	return out
}

// Mono appends the last n samples averaged across channels to dst, oldest
// first, and returns the extended slice.
func (t *Tap) Mono(dst []float64, n int) []float64 {
	for _, s := range t.Snapshot(n) {
		dst = append(dst, (s[0]+s[1])*0.5)
	}
	return dst
}

// Clear zeroes the ring, e.g. after a seek so stale audio is not analyzed.
func (t *Tap) Clear() {
	t.mu.Lock()
	for i := range t.buffer {
		t.buffer[i] = [2]float64{}
	}
	t.nextIndex = 0
	t.mu.Unlock()
}
