package domain

import "time"

// RunStats holds statistics about one scheduler pass over pending episodes.
type RunStats struct {
	Claimed   int
	Ready     int
	Failed    int
	Adventure int
	Duration  time.Duration
}
