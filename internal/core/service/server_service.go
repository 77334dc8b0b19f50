package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/thumbtack/onlineshop/internal/core/ports"
)

// ServerService exposes the configured limits and the debug wipe.
type ServerService struct {
	settings ports.Settings
	stores   []ports.Maintenance
	log      zerolog.Logger
}

func NewServerService(settings ports.Settings, log zerolog.Logger, stores ...ports.Maintenance) *ServerService {
	return &ServerService{settings: settings, stores: stores, log: log}
}

func (s *ServerService) Settings() ports.Settings {
	return s.settings
}

// Clear wipes every backing store in registration order and stops at the
// first failure.
func (s *ServerService) Clear(ctx context.Context) error {
	for i, store := range s.stores {
		if err := store.Clear(ctx); err != nil {
			return fmt.Errorf("clear store %d: %w", i, err)
		}
	}
	s.log.Warn().Int("stores", len(s.stores)).Msg("all data cleared")
	return nil
}
