package booking

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"clubdesk/internal/domain"
	"clubdesk/internal/repository"
)

type Service struct {
	slots  SlotRepository
	grid   *Grid
	spaces []domain.Space
	groups []domain.SpaceGroup
	notifs ChangeNotifier
}

func NewService(slots SlotRepository, grid *Grid, spaces []domain.Space, groups []domain.SpaceGroup, notifs ChangeNotifier) *Service {
	return &Service{
		slots:  slots,
		grid:   grid,
		spaces: spaces,
		groups: groups,
		notifs: notifs,
	}
}

// List returns the consolidated calendar entries for one day, recomputed
// from the current full snapshot.
func (s *Service) List(ctx context.Context, date string) ([]domain.ConsolidatedBooking, error) {
	if _, err := time.ParseInLocation(dateLayout, date, time.Local); err != nil {
		return nil, ErrValidation
	}
	snap, err := s.slots.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return Consolidate(snap, date, s.spaces, s.groups), nil
}

// Snapshot exposes the raw slot map for the realtime feed.
func (s *Service) Snapshot(ctx context.Context) (map[string]domain.SlotDetails, error) {
	return s.slots.Snapshot(ctx)
}

// Create expands spaces x recurrence dates x half-hour slots into the full
// key set and writes it atomically. The pre-write validation never touches
// the store; the authoritative double-booking rejection is the atomic
// create's conflict.
func (s *Service) Create(ctx context.Context, req CreateBookingRequest) ([]string, error) {
	details := domain.SlotDetails{
		Name:         strings.TrimSpace(req.Name),
		Observations: strings.TrimSpace(req.Observations),
	}
	if details.Name == "" {
		return nil, ErrValidation
	}
	if len(req.SpaceIDs) == 0 {
		return nil, ErrValidation
	}
	for _, id := range req.SpaceIDs {
		if !s.knownSpace(id) {
			return nil, ErrValidation
		}
	}

	slots := s.slotsForRange(req.StartTime, req.EndTime)
	if len(slots) == 0 {
		return nil, ErrValidation
	}

	startDate, err := time.ParseInLocation(dateLayout, req.Date, time.Local)
	if err != nil {
		return nil, ErrValidation
	}

	rule := RuleNone
	endDate := startDate
	var weekdays []time.Weekday
	if req.Repeat != nil && req.Repeat.Rule != "" {
		rule = Rule(req.Repeat.Rule)
		if !ValidRule(rule) {
			return nil, ErrValidation
		}
		if rule != RuleNone {
			endDate, err = time.ParseInLocation(dateLayout, req.Repeat.EndDate, time.Local)
			if err != nil {
				return nil, ErrValidation
			}
			for _, wd := range req.Repeat.Weekdays {
				if wd < 0 || wd > 6 {
					return nil, ErrValidation
				}
				weekdays = append(weekdays, time.Weekday(wd))
			}
		}
	}

	var dates []time.Time
	for d := range Dates(startDate, rule, endDate, weekdays) {
		dates = append(dates, d)
	}
	if len(dates) == 0 {
		return nil, ErrValidation
	}

	keys := make([]string, 0, len(req.SpaceIDs)*len(dates)*len(slots))
	for _, spaceID := range req.SpaceIDs {
		for _, d := range dates {
			for _, slot := range slots {
				keys = append(keys, EncodeSlotKey(spaceID, d, slot))
			}
		}
	}

	if err := s.slots.CreateIfAbsentAll(ctx, keys, details); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrConflict
		}
		return nil, err
	}

	s.changed(ctx)
	return keys, nil
}

// Delete removes a consolidated entry by deleting all its slot keys in one
// transaction.
func (s *Service) Delete(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return ErrValidation
	}
	if err := s.slots.DeleteAll(ctx, keys); err != nil {
		return err
	}
	s.changed(ctx)
	return nil
}

// Duplicate copies a consolidated entry to another day, keeping the spaces
// and time range. Dropping onto the source day is a no-op. Occupancy of
// every destination key is checked against the live snapshot before the
// atomic write, which remains the final arbiter under races.
func (s *Service) Duplicate(ctx context.Context, keys []string, targetDate string) ([]string, error) {
	if len(keys) == 0 {
		return nil, ErrValidation
	}
	target, err := time.ParseInLocation(dateLayout, targetDate, time.Local)
	if err != nil {
		return nil, ErrValidation
	}

	sameDay := true
	dest := make([]string, 0, len(keys))
	for _, k := range keys {
		spaceID, d, slot, err := DecodeSlotKey(k)
		if err != nil {
			return nil, ErrValidation
		}
		if d != targetDate {
			sameDay = false
		}
		dest = append(dest, EncodeSlotKey(spaceID, target, slot))
	}
	if sameDay {
		return nil, nil
	}

	details, err := s.slots.Get(ctx, keys[0])
	if err != nil {
		return nil, err
	}
	if details == nil {
		return nil, ErrNotFound
	}

	snap, err := s.slots.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	for _, k := range dest {
		if _, occupied := snap[k]; occupied {
			return nil, ErrConflict
		}
	}

	if err := s.slots.CreateIfAbsentAll(ctx, dest, *details); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrConflict
		}
		return nil, err
	}

	s.changed(ctx)
	return dest, nil
}

// Update rewrites a booking as an explicit two-phase operation: the new keys
// are conflict-checked ignoring the slots being vacated, the delete of the
// old slots is awaited and its outcome logged, then the new slots are
// written atomically.
func (s *Service) Update(ctx context.Context, req UpdateBookingRequest) ([]string, error) {
	if len(req.Keys) == 0 {
		return nil, ErrValidation
	}
	details := domain.SlotDetails{
		Name:         strings.TrimSpace(req.Name),
		Observations: strings.TrimSpace(req.Observations),
	}
	if details.Name == "" || len(req.SpaceIDs) == 0 {
		return nil, ErrValidation
	}
	for _, id := range req.SpaceIDs {
		if !s.knownSpace(id) {
			return nil, ErrValidation
		}
	}
	date, err := time.ParseInLocation(dateLayout, req.Date, time.Local)
	if err != nil {
		return nil, ErrValidation
	}
	slots := s.slotsForRange(req.StartTime, req.EndTime)
	if len(slots) == 0 {
		return nil, ErrValidation
	}

	newKeys := make([]string, 0, len(req.SpaceIDs)*len(slots))
	for _, spaceID := range req.SpaceIDs {
		for _, slot := range slots {
			newKeys = append(newKeys, EncodeSlotKey(spaceID, date, slot))
		}
	}

	vacated := make(map[string]bool, len(req.Keys))
	for _, k := range req.Keys {
		vacated[k] = true
	}

	snap, err := s.slots.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	for _, k := range newKeys {
		if _, occupied := snap[k]; occupied && !vacated[k] {
			return nil, ErrConflict
		}
	}

	if err := s.slots.DeleteAll(ctx, req.Keys); err != nil {
		log.Printf("booking update: deleting %d old slots failed: %v", len(req.Keys), err)
		return nil, err
	}

	if err := s.slots.CreateIfAbsentAll(ctx, newKeys, details); err != nil {
		// the old slots are already gone; surface the failure instead of
		// leaving a silently half-applied edit
		log.Printf("booking update: rewrite of %d slots failed after delete: %v", len(newKeys), err)
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrConflict
		}
		return nil, err
	}

	s.changed(ctx)
	return newKeys, nil
}

func (s *Service) knownSpace(id string) bool {
	for _, sp := range s.spaces {
		if sp.ID == id {
			return true
		}
	}
	return false
}

func (s *Service) slotsForRange(start, end string) []string {
	if !ValidClock(start) || !ValidClock(end) || end <= start {
		return nil
	}
	return s.grid.Relevant(start, end)
}

func (s *Service) changed(ctx context.Context) {
	if s.notifs != nil {
		s.notifs.BookingsChanged(ctx)
	}
}
