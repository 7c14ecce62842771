package handler

import "sync/atomic"

// Stats tracks per-handler delivery counters.
type Stats struct {
	processed atomic.Uint64
	failed    atomic.Uint64
}

// StatsSnapshot is a point-in-time copy of the counters.
type StatsSnapshot struct {
	Processed uint64
	Failed    uint64
}

func (s *Stats) snapshot() StatsSnapshot {
	return StatsSnapshot{
		Processed: s.processed.Load(),
		Failed:    s.failed.Load(),
	}
}
