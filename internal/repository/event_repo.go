package repository

import (
	"context"
	"encoding/json"
	"errors"

	"clubdesk/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

type eventModel struct {
	ID        string `gorm:"column:id;primaryKey"`
	Name      string `gorm:"column:name"`
	StartDate string `gorm:"column:start_date"`
	EndDate   string `gorm:"column:end_date"`
	StartTime string `gorm:"column:start_time"`
	EndTime   string `gorm:"column:end_time"`
	SpaceIDs  string `gorm:"column:space_ids;type:text"`
	Tasks     string `gorm:"column:tasks;type:text"`
}

func (eventModel) TableName() string { return "special_events" }

func toDomainEvent(m eventModel) (*domain.SpecialEvent, error) {
	out := &domain.SpecialEvent{
		ID:        m.ID,
		Name:      m.Name,
		StartDate: m.StartDate,
		EndDate:   m.EndDate,
		StartTime: m.StartTime,
		EndTime:   m.EndTime,
	}
	if m.SpaceIDs != "" {
		if err := json.Unmarshal([]byte(m.SpaceIDs), &out.SpaceIDs); err != nil {
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

func toEventModel(e *domain.SpecialEvent) (eventModel, error) {
	m := eventModel{
		ID:        e.ID,
		Name:      e.Name,
		StartDate: e.StartDate,
		EndDate:   e.EndDate,
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
	}
	if len(e.SpaceIDs) > 0 {
		raw, err := json.Marshal(e.SpaceIDs)
		if err != nil {
			return m, err
		}
		m.SpaceIDs = string(raw)
	}
	if len(e.Tasks) > 0 {
		raw, err := json.Marshal(e.Tasks)
		if err != nil {
			return m, err
		}
		m.Tasks = string(raw)
	}
	return m, nil
}

func (r *EventRepository) Create(ctx context.Context, e *domain.SpecialEvent) error {
	m, err := toEventModel(e)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *EventRepository) Update(ctx context.Context, e *domain.SpecialEvent) error {
	m, err := toEventModel(e)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&m).Error
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&eventModel{}, "id = ?", id).Error
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*domain.SpecialEvent, error) {
	var m eventModel
	tx := r.db.WithContext(ctx).First(&m, "id = ?", id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return toDomainEvent(m)
}

func (r *EventRepository) List(ctx context.Context) ([]domain.SpecialEvent, error) {
	var rows []eventModel
	if tx := r.db.WithContext(ctx).Order("start_date").Find(&rows); tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.SpecialEvent, 0, len(rows))
	for _, m := range rows {
		e, err := toDomainEvent(m)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, nil
}

// ListOverlapping returns events whose [start_date, end_date] range
// intersects [from, to]. YYYY-MM-DD strings order correctly as text.
func (r *EventRepository) ListOverlapping(ctx context.Context, from, to string) ([]domain.SpecialEvent, error) {
	var rows []eventModel
	tx := r.db.WithContext(ctx).
		Where("end_date >= ? AND start_date <= ?", from, to).
		Order("start_date").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.SpecialEvent, 0, len(rows))
	for _, m := range rows {
		e, err := toDomainEvent(m)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, nil
}
