package repositories

import (
	"context"
	"errors"
	"sync"

	"berth-planner-service/internal/domain"
)

// In-memory implementation of the ConfigStore port, for tests and local
// experiments that do not need a database.
type MemoryConfigStore struct {
	mu  sync.Mutex
	cfg *domain.ProblemConfig
}

func NewMemoryConfigStore(cfg *domain.ProblemConfig) *MemoryConfigStore {
	return &MemoryConfigStore{cfg: cfg}
}

func (s *MemoryConfigStore) Load(ctx context.Context) (domain.ProblemConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cfg == nil {
		return domain.ProblemConfig{}, errors.New("memory config store: no configuration stored")
	}
	return *s.cfg, nil
}

func (s *MemoryConfigStore) Save(ctx context.Context, cfg domain.ProblemConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = &cfg
	return nil
}
