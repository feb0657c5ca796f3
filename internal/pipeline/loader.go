package pipeline

import (
	"context"
	"fmt"

	"github.com/couchcryptid/quake-scenario-etl/internal/domain"
)

// MultiLoader fans a batch out to several loaders in order. The first
// failure aborts the batch so the source offsets stay uncommitted.
type MultiLoader []BatchLoader

// LoadBatch implements BatchLoader.
func (m MultiLoader) LoadBatch(ctx context.Context, scenarios []domain.Scenario) error {
	for i, l := range m {
		if err := l.LoadBatch(ctx, scenarios); err != nil {
			return fmt.Errorf("loader %d: %w", i, err)
		}
	}
	return nil
}
