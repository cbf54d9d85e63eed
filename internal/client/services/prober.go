// Package services contains the client's application services: the
// availability prober, the seed manager, the two backends and the UserService
// facade the CLI talks to.
package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/racfadmin/internal/client/client"
)

// DefaultProbeTimeout bounds a health check when none is configured.
const DefaultProbeTimeout = 1500 * time.Millisecond

// Prober decides, per call, whether the remote service should be used.
type Prober interface {
	Available(ctx context.Context) bool
}

// HealthProber asks the remote service's health endpoint. Results are never
// cached; every call pays one round trip.
type HealthProber struct {
	client  client.Client
	timeout time.Duration
}

func NewHealthProber(c client.Client, timeout time.Duration) *HealthProber {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	return &HealthProber{client: c, timeout: timeout}
}

// Available reports true only for a successful health answer within the
// timeout. Transport errors, non-2xx statuses and deadlines all mean false.
func (p *HealthProber) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.client.Health(ctx) == nil
}
