package repository

import "github.com/boundary-tiler/internal/domain"

// FeatureSink принимает готовые фичи границ. Emit может вызываться
// конкурентно из нескольких воркеров фазы сбора.
type FeatureSink interface {
	Emit(feature domain.BoundaryFeature)
}
