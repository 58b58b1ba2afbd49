package booking

import (
	"context"

	"clubdesk/internal/domain"
)

// SlotRepository is the store adapter the booking core drives. Batch
// operations are atomic: either every key is written/removed or none.
type SlotRepository interface {
	Get(ctx context.Context, key string) (*domain.SlotDetails, error)
	Snapshot(ctx context.Context) (map[string]domain.SlotDetails, error)
	CreateIfAbsentAll(ctx context.Context, keys []string, details domain.SlotDetails) error
	DeleteAll(ctx context.Context, keys []string) error
}

// ChangeNotifier is told after every committed mutation so subscribers can
// pull a fresh snapshot.
type ChangeNotifier interface {
	BookingsChanged(ctx context.Context)
}
