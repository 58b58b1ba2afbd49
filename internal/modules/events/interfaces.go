package events

import (
	"context"

	"clubdesk/internal/domain"
)

type EventRepository interface {
	Create(ctx context.Context, e *domain.SpecialEvent) error
	Update(ctx context.Context, e *domain.SpecialEvent) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.SpecialEvent, error)
	List(ctx context.Context) ([]domain.SpecialEvent, error)
}
