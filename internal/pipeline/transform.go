package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/quake-scenario-etl/internal/dialect"
	"github.com/couchcryptid/quake-scenario-etl/internal/domain"
	"github.com/couchcryptid/quake-scenario-etl/internal/observability"
)

// ScenarioTransformer implements Transformer by detecting the document's
// dialect and building one scenario per selected catalog event.
type ScenarioTransformer struct {
	opts    domain.Options
	region  *domain.StableRegion
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewTransformer creates a ScenarioTransformer. Pass a nil region to skip
// map extent computation.
func NewTransformer(opts domain.Options, region *domain.StableRegion, metrics *observability.Metrics, logger *slog.Logger) *ScenarioTransformer {
	return &ScenarioTransformer{
		opts:    opts,
		region:  region,
		metrics: metrics,
		logger:  logger,
	}
}

// Transform fails the whole document if any selected event cannot be
// built, so a partially converted catalog is never published.
func (t *ScenarioTransformer) Transform(_ context.Context, raw domain.RawEvent) ([]domain.Scenario, error) {
	sources, err := dialect.Parse(raw.Value, t.opts.Index)
	if err != nil {
		return nil, fmt.Errorf("parse raw event: %w", err)
	}

	scenarios := make([]domain.Scenario, 0, len(sources))
	for _, src := range sources {
		sc, err := domain.BuildScenario(src, t.opts, t.region)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, sc)
	}

	label := observability.DirectivityLabel(t.opts.Directivity.Enabled, int(t.opts.Directivity.Index))
	for _, sc := range scenarios {
		t.metrics.ScenariosBuilt.WithLabelValues(sc.Dialect, label).Inc()
		if sc.Rupture != nil {
			t.metrics.RuptureQuads.Observe(float64(len(sc.Rupture.Quads())))
		}
		t.logger.Debug("scenario built",
			"event_id", sc.Event.ID,
			"dialect", sc.Dialect,
			"magnitude", sc.Event.Magnitude,
			"offset", raw.Offset,
		)
	}
	return scenarios, nil
}
