// Package store persists scenarios and account snapshots between runs.
// The projection engine never touches a store; callers materialize slices
// from it and pass them in.
package store

import (
	"context"

	"github.com/finsight/scenario-engine/internal/domain"
)

// ScenarioFilter narrows ListScenarios results. The zero value matches all.
type ScenarioFilter struct {
	ActiveOnly bool
	Template   domain.TemplateType
}

// Store is the collaborator contract consumed by the CLI layer. GetScenario
// returns (nil, nil) when the id is unknown; callers must tolerate
// scenarios disappearing between calls.
type Store interface {
	ListScenarios(ctx context.Context, filter ScenarioFilter) ([]domain.Scenario, error)
	GetScenario(ctx context.Context, id string) (*domain.Scenario, error)
	SaveScenario(ctx context.Context, s *domain.Scenario) error
	SetScenarioActive(ctx context.Context, id string, active bool) error
	DeleteScenario(ctx context.Context, id string) error

	ListAccounts(ctx context.Context) ([]domain.Account, error)
	SaveAccount(ctx context.Context, a domain.Account) error

	Close() error
}
