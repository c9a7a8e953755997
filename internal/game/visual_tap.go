package game

import (
	"math"
	"sync"

	"github.com/faiface/beep"
)

// audioTap wraps a beep.Streamer and keeps the most recent samples in a ring buffer
// so the frame loop can measure loudness without touching the speaker goroutine.
type audioTap struct {
	Source    beep.Streamer
	buffer    [][2]float64
	nextIndex int
	filled    int
	mu        sync.RWMutex
}

func newAudioTap(src beep.Streamer, ringSize int) *audioTap {
	return &audioTap{
		Source: src,
		buffer: make([][2]float64, ringSize),
	}
}

func (t *audioTap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Source.Stream(samples)
	if n > 0 {
		t.mu.Lock()
		for i := 0; i < n; i++ {
			t.buffer[t.nextIndex] = samples[i]
			t.nextIndex = (t.nextIndex + 1) % len(t.buffer)
		}
		t.filled = min(t.filled+n, len(t.buffer))
		t.mu.Unlock()
	}
	return n, ok
}

func (t *audioTap) Err() error { return t.Source.Err() }

// rms returns the mono root-mean-square level of the last n samples written.
func (t *audioTap) rms(n int) float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n = min(n, t.filled)
	if n == 0 {
		return 0
	}

	var sumSquares float64
	idx := t.nextIndex
	for i := 0; i < n; i++ {
		idx--
		if idx < 0 {
			idx = len(t.buffer) - 1
		}
		mono := (t.buffer[idx][0] + t.buffer[idx][1]) * 0.5
		sumSquares += mono * mono
	}
	return math.Sqrt(sumSquares / float64(n))
}
