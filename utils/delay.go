package utils

import (
	"math/rand"
	"time"
)

// Throttle sleeps for base plus a random jitter in [0, jitter). A fixed
// interval is an easily detected pattern; the jitter makes successive
// page loads look closer to human browsing.
func Throttle(base, jitter time.Duration) {
	sleep := base
	if jitter > 0 {
		sleep += time.Duration(rand.Int63n(int64(jitter)))
	}
	time.Sleep(sleep)
}
