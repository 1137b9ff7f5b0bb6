package usecase

import "time"

// Delay simulates latency. It must block for roughly d or return immediately.
type Delay func(d time.Duration)

// Sleep blocks the calling goroutine for d.
func Sleep(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

// NoDelay returns immediately.
func NoDelay(time.Duration) {}
