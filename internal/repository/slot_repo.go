package repository

import (
	"context"
	"errors"

	"clubdesk/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrDuplicateKey reports that at least one key of a batch already existed.
// The batch is transactional, so on this error nothing was written.
var ErrDuplicateKey = errors.New("slot key already exists")

type SlotRepository struct {
	db *gorm.DB
}

func NewSlotRepository(db *gorm.DB) *SlotRepository {
	return &SlotRepository{db: db}
}

type slotModel struct {
	SlotKey      string `gorm:"column:slot_key;primaryKey"`
	Name         string `gorm:"column:name"`
	Observations string `gorm:"column:observations;type:text"`
}

func (slotModel) TableName() string { return "booking_slots" }

func (r *SlotRepository) Get(ctx context.Context, key string) (*domain.SlotDetails, error) {
	var m slotModel
	tx := r.db.WithContext(ctx).First(&m, "slot_key = ?", key)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return &domain.SlotDetails{Name: m.Name, Observations: m.Observations}, nil
}

// Snapshot returns the full slot map. Callers treat it as immutable and
// always replace a held snapshot with a newer one, never merge.
func (r *SlotRepository) Snapshot(ctx context.Context) (map[string]domain.SlotDetails, error) {
	var rows []slotModel
	if tx := r.db.WithContext(ctx).Find(&rows); tx.Error != nil {
		return nil, tx.Error
	}
	out := make(map[string]domain.SlotDetails, len(rows))
	for _, m := range rows {
		out[m.SlotKey] = domain.SlotDetails{Name: m.Name, Observations: m.Observations}
	}
	return out, nil
}

// CreateIfAbsentAll writes every key or none. The whole batch runs in one
// transaction; any already-existing key rolls it back with ErrDuplicateKey.
// This is the sole mechanism preventing double-booking under concurrent
// writers, there is no client-side locking.
func (r *SlotRepository) CreateIfAbsentAll(ctx context.Context, keys []string, details domain.SlotDetails) error {
	if len(keys) == 0 {
		return nil
	}
	models := make([]slotModel, 0, len(keys))
	for _, k := range keys {
		models = append(models, slotModel{SlotKey: k, Name: details.Name, Observations: details.Observations})
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&models).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateKey
		}
		return err
	}
	return nil
}

// DeleteAll removes the given keys in one transaction. Missing keys are not
// an error.
func (r *SlotRepository) DeleteAll(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Delete(&slotModel{}, "slot_key IN ?", keys).Error
	})
}
