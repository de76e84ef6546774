package boundary

import (
	"sync"

	"github.com/boundary-tiler/internal/domain"
)

// sinkRecorder - тестовый сток фич.
type sinkRecorder struct {
	mu       sync.Mutex
	features []domain.BoundaryFeature
}

func (s *sinkRecorder) Emit(f domain.BoundaryFeature) {
	s.mu.Lock()
	s.features = append(s.features, f)
	s.mu.Unlock()
}

func (s *sinkRecorder) all() []domain.BoundaryFeature {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.BoundaryFeature(nil), s.features...)
}
