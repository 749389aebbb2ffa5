package interfaces

import (
	"context"

	"github.com/m-mizutani/shiplog/pkg/domain/model"
)

// ChangelogUseCase defines the commit-to-category resolution pipeline.
type ChangelogUseCase interface {
	// Generate walks the from..to commit range and returns the ordered,
	// categorized releases ready for rendering.
	Generate(ctx context.Context, from, to string) ([]*model.Release, error)
}
