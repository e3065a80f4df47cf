package webapi

//go:generate go tool mockgen -source=source.go -destination=mock_source_test.go -package=webapi

import (
	"context"

	"github.com/afmlabs/evaldash/internal/metrics"
	"github.com/afmlabs/evaldash/internal/observability"
)

// DatasetSource produces the generated datasets served by the API.
type DatasetSource interface {
	// Snapshot generates every dataset in one pass.
	Snapshot(ctx context.Context) (*metrics.Snapshot, error)
	// Anchors returns the table the snapshots are generated from.
	Anchors() *metrics.Anchors
}

// GeneratorSource builds a fresh generator for every snapshot, so no
// generator state is shared between requests.
type GeneratorSource struct {
	anchors *metrics.Anchors
	seed    *uint64
	metrics *observability.Metrics
}

// NewGeneratorSource creates a source over anchors. With a non-nil seed
// every snapshot is identical.
func NewGeneratorSource(anchors *metrics.Anchors, seed *uint64, m *observability.Metrics) *GeneratorSource {
	if anchors == nil {
		anchors = metrics.DefaultAnchors()
	}
	return &GeneratorSource{anchors: anchors, seed: seed, metrics: m}
}

// Snapshot implements DatasetSource.
func (s *GeneratorSource) Snapshot(ctx context.Context) (*metrics.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts := []metrics.Option{metrics.WithAnchors(s.anchors)}
	if s.seed != nil {
		opts = append(opts, metrics.WithSeed(*s.seed))
	}
	snap := metrics.New(opts...).Snapshot()
	s.metrics.SnapshotGenerated()
	return snap, nil
}

// Anchors implements DatasetSource.
func (s *GeneratorSource) Anchors() *metrics.Anchors {
	return s.anchors
}

var _ DatasetSource = (*GeneratorSource)(nil)
