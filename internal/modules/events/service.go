package events

import (
	"context"
	"strings"
	"time"

	"clubdesk/internal/domain"

	"github.com/google/uuid"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

type Service struct {
	events EventRepository
	spaces []domain.Space
}

func NewService(events EventRepository, spaces []domain.Space) *Service {
	return &Service{events: events, spaces: spaces}
}

func (s *Service) Create(ctx context.Context, req EventRequest) (*domain.SpecialEvent, error) {
	ev, err := s.fromRequest(req)
	if err != nil {
		return nil, err
	}
	ev.ID = uuid.NewString()
	if err := s.events.Create(ctx, ev); err != nil {
		return nil, err
	}
	return ev, nil
}

func (s *Service) Update(ctx context.Context, id string, req EventRequest) (*domain.SpecialEvent, error) {
	existing, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}
	ev, err := s.fromRequest(req)
	if err != nil {
		return nil, err
	}
	ev.ID = id
	if err := s.events.Update(ctx, ev); err != nil {
		return nil, err
	}
	return ev, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	existing, err := s.events.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return s.events.Delete(ctx, id)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.SpecialEvent, error) {
	ev, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ev == nil {
		return nil, ErrNotFound
	}
	return ev, nil
}

func (s *Service) List(ctx context.Context) ([]domain.SpecialEvent, error) {
	return s.events.List(ctx)
}

func (s *Service) fromRequest(req EventRequest) (*domain.SpecialEvent, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrValidation
	}
	start, err := time.ParseInLocation(dateLayout, req.StartDate, time.Local)
	if err != nil {
		return nil, ErrValidation
	}
	end, err := time.ParseInLocation(dateLayout, req.EndDate, time.Local)
	if err != nil {
		return nil, ErrValidation
	}
	if end.Before(start) {
		return nil, ErrValidation
	}
	if req.StartTime != "" {
		if _, err := time.Parse(clockLayout, req.StartTime); err != nil {
			return nil, ErrValidation
		}
	}
	if req.EndTime != "" {
		if _, err := time.Parse(clockLayout, req.EndTime); err != nil {
			return nil, ErrValidation
		}
	}
	for _, id := range req.SpaceIDs {
		if !s.knownSpace(id) {
			return nil, ErrValidation
		}
	}

	tasks := make([]domain.Task, 0, len(req.Tasks))
	for _, t := range req.Tasks {
		if strings.TrimSpace(t.Text) == "" {
			continue
		}
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		tasks = append(tasks, t)
	}

	return &domain.SpecialEvent{
		Name:      name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		SpaceIDs:  req.SpaceIDs,
		Tasks:     tasks,
	}, nil
}

func (s *Service) knownSpace(id string) bool {
	for _, sp := range s.spaces {
		if sp.ID == id {
			return true
		}
	}
	return false
}
