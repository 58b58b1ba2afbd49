package repository

import (
	"context"
	"encoding/json"
	"errors"

	"clubdesk/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ShiftRepository struct {
	db *gorm.DB
}

func NewShiftRepository(db *gorm.DB) *ShiftRepository {
	return &ShiftRepository{db: db}
}

type shiftModel struct {
	WeekID         string `gorm:"column:week_id;primaryKey"`
	Morning        string `gorm:"column:morning"`
	Evening        string `gorm:"column:evening"`
	Observations   string `gorm:"column:observations;type:text"`
	DailyOverrides string `gorm:"column:daily_overrides;type:text"`
	Tasks          string `gorm:"column:tasks;type:text"`
}

func (shiftModel) TableName() string { return "shift_assignments" }

func toDomainShift(m shiftModel) (*domain.ShiftAssignment, error) {
	out := &domain.ShiftAssignment{
		WeekID:       m.WeekID,
		Morning:      m.Morning,
		Evening:      m.Evening,
		Observations: m.Observations,
	}
	if m.DailyOverrides != "" {
		if err := json.Unmarshal([]byte(m.DailyOverrides), &out.DailyOverrides); err != nil {
			return nil, err
		}
	}
	if m.Tasks != "" {
		if err := json.Unmarshal([]byte(m.Tasks), &out.Tasks); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func toShiftModel(a *domain.ShiftAssignment) (shiftModel, error) {
	m := shiftModel{
		WeekID:       a.WeekID,
		Morning:      a.Morning,
		Evening:      a.Evening,
		Observations: a.Observations,
	}
	// An empty override container is never persisted, the column stays empty
	// so the week reads back without a daily_overrides map at all.
	if len(a.DailyOverrides) > 0 {
		raw, err := json.Marshal(a.DailyOverrides)
		if err != nil {
			return m, err
		}
		m.DailyOverrides = string(raw)
	}
	if len(a.Tasks) > 0 {
		raw, err := json.Marshal(a.Tasks)
		if err != nil {
			return m, err
		}
		m.Tasks = string(raw)
	}
	return m, nil
}

// Get returns nil without error when the week has no stored override.
func (r *ShiftRepository) Get(ctx context.Context, weekID string) (*domain.ShiftAssignment, error) {
	var m shiftModel
	tx := r.db.WithContext(ctx).First(&m, "week_id = ?", weekID)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return toDomainShift(m)
}

func (r *ShiftRepository) Save(ctx context.Context, a *domain.ShiftAssignment) error {
	m, err := toShiftModel(a)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&m).Error
}

func (r *ShiftRepository) Delete(ctx context.Context, weekID string) error {
	return r.db.WithContext(ctx).Delete(&shiftModel{}, "week_id = ?", weekID).Error
}
