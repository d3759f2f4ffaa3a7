package ports

import (
	"context"

	"berth-planner-service/internal/domain"
)

// ConfigStore persists the single active problem configuration document.
type ConfigStore interface {
	Load(ctx context.Context) (domain.ProblemConfig, error)
	Save(ctx context.Context, cfg domain.ProblemConfig) error
}
