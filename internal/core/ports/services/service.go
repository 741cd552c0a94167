package services

import "context"

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	ExchangeRate ExchangeRateSvcFacade
	Health       HealthSvc
}

// HealthSvc reports whether the service's dependencies are reachable.
type HealthSvc interface {
	Ping(ctx context.Context) error
}
