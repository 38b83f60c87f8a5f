// FilePath: internal/monitoring/monitoring.go
package monitoring

import (
	"sync"

	nuts "github.com/vaudience/go-nuts"
)

// Service records operational events (ingestion, cleanup) and keeps
// per-event counters for the health surface.
type Service struct {
	mu       sync.Mutex
	counters map[string]int64
}

// NewService creates a new monitoring service
func NewService() *Service {
	return &Service{
		counters: make(map[string]int64),
	}
}

// RecordEvent records a monitored event with labels
func (s *Service) RecordEvent(eventName string, labels map[string]string) {
	s.mu.Lock()
	s.counters[eventName]++
	s.mu.Unlock()

	nuts.L.Infof("[Monitoring] Event %s recorded with labels: %v", eventName, labels)
}

// EventCount returns how often an event was recorded since startup.
func (s *Service) EventCount(eventName string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counters[eventName]
}

// Counters returns a snapshot of all event counters.
func (s *Service) Counters() map[string]int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make(map[string]int64, len(s.counters))
	for name, count := range s.counters {
		snapshot[name] = count
	}
	return snapshot
}
