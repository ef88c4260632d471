package progrock

import (
	"sync"

	"github.com/vito/progrock"
	"go.smelt.dev/smelt/internal/core/ports"
	"go.trai.ch/zerr"
)

// Sink implements progrock.Writer, bridging vertex updates to a Logger.
// The recorder publishes a status update for every vertex transition, so
// the sink reports each recorded phase as it starts and completes.
type Sink struct {
	logger ports.Logger

	mu       sync.Mutex
	started  map[string]struct{}
	finished map[string]struct{}
}

// NewSink returns a new Sink.
func NewSink(logger ports.Logger) *Sink {
	return &Sink{
		logger:   logger,
		started:  make(map[string]struct{}),
		finished: make(map[string]struct{}),
	}
}

// WriteStatus forwards vertex transitions to the logger. An update may carry
// the same vertex more than once; each transition is reported only once.
func (s *Sink) WriteStatus(update *progrock.StatusUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range update.Vertexes {
		if _, seen := s.started[v.Id]; !seen {
			s.started[v.Id] = struct{}{}
			s.logger.Info("started " + v.Name)
		}

		if v.Completed == nil {
			continue
		}
		if _, seen := s.finished[v.Id]; seen {
			continue
		}
		s.finished[v.Id] = struct{}{}

		if v.Error != nil {
			s.logger.Error(zerr.With(zerr.New("failed "+v.Name), "cause", *v.Error))
			continue
		}
		s.logger.Info("finished " + v.Name)
	}
	return nil
}

// Close does nothing. The sink holds no resources beyond the logger.
func (s *Sink) Close() error {
	return nil
}
