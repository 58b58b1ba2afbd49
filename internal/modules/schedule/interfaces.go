package schedule

import (
	"context"

	"clubdesk/internal/domain"
)

// ShiftRepository stores per-week overrides. Get returns nil for weeks that
// still run on the implicit default rotation.
type ShiftRepository interface {
	Get(ctx context.Context, weekID string) (*domain.ShiftAssignment, error)
	Save(ctx context.Context, a *domain.ShiftAssignment) error
	Delete(ctx context.Context, weekID string) error
}

// EventRepository is the slice of the events store the aggregation needs.
type EventRepository interface {
	ListOverlapping(ctx context.Context, from, to string) ([]domain.SpecialEvent, error)
	GetByID(ctx context.Context, id string) (*domain.SpecialEvent, error)
	Update(ctx context.Context, e *domain.SpecialEvent) error
}

// VacationRepository stores one document per calendar year.
type VacationRepository interface {
	Get(ctx context.Context, year string) (*domain.VacationYear, error)
	Save(ctx context.Context, v *domain.VacationYear) error
}
