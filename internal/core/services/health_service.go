package services

import (
	"context"

	portsrepo "github.com/SscSPs/fx_rate_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fx_rate_service/internal/core/ports/services"
)

type healthService struct {
	store portsrepo.HealthChecker
}

// NewHealthService reports the store's availability.
func NewHealthService(store portsrepo.HealthChecker) portssvc.HealthSvc {
	return &healthService{store: store}
}

func (s *healthService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
