package observability

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

// Stats is one heartbeat snapshot of the relay.
type Stats struct {
	Rooms       int
	Connections int
	AllocMemMb  uint64
	NumGC       uint32
}

// Monitor periodically logs a heartbeat with room/connection counts and
// Go memory stats. It only observes: the counters are read through
// callbacks so the monitor holds no reference to registry internals.
type Monitor struct {
	log         *slog.Logger
	interval    time.Duration
	rooms       func() int
	connections func() int
}

func NewMonitor(log *slog.Logger, interval time.Duration, rooms, connections func() int) *Monitor {
	return &Monitor{log: log, interval: interval, rooms: rooms, connections: connections}
}

func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.log.Info("Monitor stopped")
			return
		case <-ticker.C:
			stats := m.snapshot()
			m.log.Info("Heartbeat",
				"rooms", stats.Rooms,
				"connections", stats.Connections,
				"alloc_mem_mb", stats.AllocMemMb,
				"num_gc", stats.NumGC,
			)
		}
	}
}

func (m *Monitor) snapshot() Stats {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return Stats{
		Rooms:       m.rooms(),
		Connections: m.connections(),
		AllocMemMb:  memStats.Alloc / 1024 / 1024,
		NumGC:       memStats.NumGC,
	}
}
