package service

import (
	"context"

	"github.com/techmidia/painel/internal/apiclient"
	"github.com/techmidia/painel/internal/domain/dashboard"
	"github.com/techmidia/painel/internal/ports"
)

// DashboardServiceOptions groups dependencies for DashboardService.
type DashboardServiceOptions struct {
	Backend ports.BackendAPI
}

// DashboardService loads the consolidated dashboard payload.
type DashboardService struct {
	backend ports.BackendAPI
}

// NewDashboardService constructs a new DashboardService.
func NewDashboardService(opts DashboardServiceOptions) *DashboardService {
	if opts.Backend == nil {
		panic("DashboardService requires a backend")
	}
	return &DashboardService{backend: opts.Backend}
}

// Load fetches GET /dashboard. Both charts are built from this single payload.
func (s *DashboardService) Load(ctx context.Context, creds apiclient.Credentials) (*dashboard.Dashboard, error) {
	var out dashboard.Dashboard
	if err := s.backend.Get(ctx, creds, "/dashboard", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
