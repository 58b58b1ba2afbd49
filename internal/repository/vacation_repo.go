package repository

import (
	"context"
	"encoding/json"
	"errors"

	"clubdesk/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VacationRepository struct {
	db *gorm.DB
}

func NewVacationRepository(db *gorm.DB) *VacationRepository {
	return &VacationRepository{db: db}
}

type vacationModel struct {
	Year  string `gorm:"column:year;primaryKey"`
	Dates string `gorm:"column:dates;type:text"`
}

func (vacationModel) TableName() string { return "vacations" }

// Get returns nil without error when the year has no document yet.
func (r *VacationRepository) Get(ctx context.Context, year string) (*domain.VacationYear, error) {
	var m vacationModel
	tx := r.db.WithContext(ctx).First(&m, "year = ?", year)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	out := &domain.VacationYear{Year: m.Year, Dates: map[string]string{}}
	if m.Dates != "" {
		if err := json.Unmarshal([]byte(m.Dates), &out.Dates); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *VacationRepository) Save(ctx context.Context, v *domain.VacationYear) error {
	m := vacationModel{Year: v.Year}
	if len(v.Dates) > 0 {
		raw, err := json.Marshal(v.Dates)
		if err != nil {
			return err
		}
		m.Dates = string(raw)
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&m).Error
}
