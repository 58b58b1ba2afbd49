package schedule

import (
	"context"
	"strconv"
	"strings"
	"time"

	"clubdesk/internal/domain"

	"github.com/google/uuid"
)

// Default period times; a daily override carries its own.
const (
	morningStart = "09:00"
	morningEnd   = "14:00"
	eveningStart = "16:00"
	eveningEnd   = "23:00"
)

type Service struct {
	shifts      ShiftRepository
	events      EventRepository
	vacations   VacationRepository
	workers     []string
	vacationCap int
}

func NewService(shifts ShiftRepository, events EventRepository, vacations VacationRepository, workers []string, vacationCap int) *Service {
	return &Service{
		shifts:      shifts,
		events:      events,
		vacations:   vacations,
		workers:     workers,
		vacationCap: vacationCap,
	}
}

// defaultWorkers is the implicit rotation: morning and evening alternate
// between the two pool workers on ISO week parity.
func (s *Service) defaultWorkers(week int) (morning, evening string) {
	if week%2 == 0 {
		return s.workers[0], s.workers[1]
	}
	return s.workers[1], s.workers[0]
}

func (s *Service) otherWorker(w string) string {
	if w == s.workers[0] {
		return s.workers[1]
	}
	return s.workers[0]
}

func (s *Service) inPool(w string) bool {
	return w == s.workers[0] || w == s.workers[1]
}

// Week returns the effective schedule of one ISO week: defaults, the stored
// override if any, daily overrides on top, the vacation overlay and the
// combined task list.
func (s *Service) Week(ctx context.Context, weekID string) (*WeekView, error) {
	year, week, err := ParseWeekID(weekID)
	if err != nil {
		return nil, ErrValidation
	}

	doc, err := s.shifts.Get(ctx, weekID)
	if err != nil {
		return nil, err
	}

	morning, evening := s.defaultWorkers(week)
	view := &WeekView{WeekID: weekID, Morning: morning, Evening: evening}
	if doc != nil {
		view.Overridden = true
		view.Observations = doc.Observations
		if doc.Morning != "" {
			view.Morning = doc.Morning
		}
		if doc.Evening != "" {
			view.Evening = doc.Evening
		}
	}

	dates := WeekDates(year, week)
	vacByDate, err := s.vacationTakers(ctx, dates)
	if err != nil {
		return nil, err
	}

	view.Days = make([]DayView, len(dates))
	for i, d := range dates {
		date := d.Format(dateLayout)
		day := DayView{
			Date:    date,
			Morning: PeriodView{Worker: view.Morning, Start: morningStart, End: morningEnd, Active: true},
			Evening: PeriodView{Worker: view.Evening, Start: eveningStart, End: eveningEnd, Active: true},
		}
		if doc != nil {
			if ov, ok := doc.DailyOverrides[i]; ok {
				day.Morning = periodView(ov.Morning)
				day.Evening = periodView(ov.Evening)
			}
		}
		// a worker on vacation that day is shown as such, the stored
		// schedule is untouched
		if taker := vacByDate[date]; taker != "" {
			if day.Morning.Worker == taker {
				day.Morning.OnVacation = true
			}
			if day.Evening.Worker == taker {
				day.Evening.OnVacation = true
			}
		}
		view.Days[i] = day
	}

	view.Tasks, err = s.combinedTasks(ctx, doc, weekID, dates, view.Morning, view.Evening)
	if err != nil {
		return nil, err
	}
	return view, nil
}

func periodView(p domain.ShiftPeriod) PeriodView {
	return PeriodView{
		Worker:     p.Worker,
		Start:      p.Start,
		End:        p.End,
		Active:     p.Active,
		Overridden: true,
	}
}

// vacationTakers loads the vacation documents covering the given dates.
// A week spanning a year boundary needs both years.
func (s *Service) vacationTakers(ctx context.Context, dates []time.Time) (map[string]string, error) {
	out := make(map[string]string)
	loaded := make(map[string]bool)
	for _, d := range dates {
		year := strconv.Itoa(d.Year())
		if loaded[year] {
			continue
		}
		loaded[year] = true
		doc, err := s.vacations.Get(ctx, year)
		if err != nil {
			return nil, err
		}
		if doc == nil {
			continue
		}
		for date, worker := range doc.Dates {
			out[date] = worker
		}
	}
	return out, nil
}

// SetWeek stores a week-level override, keeping any daily overrides and
// tasks already attached to the week.
func (s *Service) SetWeek(ctx context.Context, weekID string, req SetWeekRequest) error {
	if _, _, err := ParseWeekID(weekID); err != nil {
		return ErrValidation
	}
	if !s.inPool(req.Morning) || !s.inPool(req.Evening) {
		return ErrValidation
	}
	doc, err := s.loadOrInit(ctx, weekID)
	if err != nil {
		return err
	}
	doc.Morning = req.Morning
	doc.Evening = req.Evening
	doc.Observations = strings.TrimSpace(req.Observations)
	return s.shifts.Save(ctx, doc)
}

// DeleteWeek drops the stored override; the week falls back to the implicit
// default rotation.
func (s *Service) DeleteWeek(ctx context.Context, weekID string) error {
	if _, _, err := ParseWeekID(weekID); err != nil {
		return ErrValidation
	}
	return s.shifts.Delete(ctx, weekID)
}

// Swap exchanges the morning and evening workers of a week.
func (s *Service) Swap(ctx context.Context, weekID string) error {
	if _, _, err := ParseWeekID(weekID); err != nil {
		return ErrValidation
	}
	doc, err := s.loadOrInit(ctx, weekID)
	if err != nil {
		return err
	}
	doc.Morning, doc.Evening = doc.Evening, doc.Morning
	return s.shifts.Save(ctx, doc)
}

// SetRole assigns one role; giving a worker the role they already hold on
// the other shift hands that shift to the remaining pool worker.
func (s *Service) SetRole(ctx context.Context, weekID string, role domain.ShiftRole, worker string) error {
	if _, _, err := ParseWeekID(weekID); err != nil {
		return ErrValidation
	}
	if !s.inPool(worker) {
		return ErrValidation
	}
	doc, err := s.loadOrInit(ctx, weekID)
	if err != nil {
		return err
	}
	switch role {
	case domain.RoleMorning:
		if doc.Evening == worker {
			doc.Evening = s.otherWorker(worker)
		}
		doc.Morning = worker
	case domain.RoleEvening:
		if doc.Morning == worker {
			doc.Morning = s.otherWorker(worker)
		}
		doc.Evening = worker
	default:
		return ErrValidation
	}
	return s.shifts.Save(ctx, doc)
}

// SetDayOverride replaces the schedule of a single day (0 = Monday).
func (s *Service) SetDayOverride(ctx context.Context, weekID string, day int, ov domain.DayOverride) error {
	if _, _, err := ParseWeekID(weekID); err != nil {
		return ErrValidation
	}
	if day < 0 || day > 6 {
		return ErrValidation
	}
	doc, err := s.loadOrInit(ctx, weekID)
	if err != nil {
		return err
	}
	if doc.DailyOverrides == nil {
		doc.DailyOverrides = make(map[int]domain.DayOverride)
	}
	doc.DailyOverrides[day] = ov
	return s.shifts.Save(ctx, doc)
}

// ClearDayOverride removes one day's override; clearing the last one drops
// the whole container so no empty map is persisted.
func (s *Service) ClearDayOverride(ctx context.Context, weekID string, day int) error {
	if _, _, err := ParseWeekID(weekID); err != nil {
		return ErrValidation
	}
	if day < 0 || day > 6 {
		return ErrValidation
	}
	doc, err := s.shifts.Get(ctx, weekID)
	if err != nil {
		return err
	}
	if doc == nil {
		return ErrNotFound
	}
	if _, ok := doc.DailyOverrides[day]; !ok {
		return ErrNotFound
	}
	delete(doc.DailyOverrides, day)
	if len(doc.DailyOverrides) == 0 {
		doc.DailyOverrides = nil
	}
	return s.shifts.Save(ctx, doc)
}

// AddTask appends a task to the week document.
func (s *Service) AddTask(ctx context.Context, weekID string, req AddTaskRequest) (*domain.Task, error) {
	if _, _, err := ParseWeekID(weekID); err != nil {
		return nil, ErrValidation
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, ErrValidation
	}
	doc, err := s.loadOrInit(ctx, weekID)
	if err != nil {
		return nil, err
	}
	task := domain.Task{
		ID:         uuid.NewString(),
		Text:       text,
		AssignedTo: req.AssignedTo,
	}
	doc.Tasks = append(doc.Tasks, task)
	if err := s.shifts.Save(ctx, doc); err != nil {
		return nil, err
	}
	return &task, nil
}

// ToggleTask flips completion of a task, routed by the collection
// discriminator to the document that owns it.
func (s *Service) ToggleTask(ctx context.Context, req ToggleTaskRequest) error {
	switch req.Collection {
	case domain.CollectionShifts:
		doc, err := s.shifts.Get(ctx, req.ParentID)
		if err != nil {
			return err
		}
		if doc == nil {
			return ErrNotFound
		}
		if !toggleIn(doc.Tasks, req.TaskID) {
			return ErrNotFound
		}
		return s.shifts.Save(ctx, doc)

	case domain.CollectionEvents:
		ev, err := s.events.GetByID(ctx, req.ParentID)
		if err != nil {
			return err
		}
		if ev == nil {
			return ErrNotFound
		}
		if !toggleIn(ev.Tasks, req.TaskID) {
			return ErrNotFound
		}
		return s.events.Update(ctx, ev)

	default:
		return ErrValidation
	}
}

func toggleIn(tasks []domain.Task, id string) bool {
	for i := range tasks {
		if tasks[i].ID == id {
			tasks[i].Completed = !tasks[i].Completed
			return true
		}
	}
	return false
}

// combinedTasks merges the week's own tasks with tasks of special events
// overlapping the week, resolving symbolic assignees on shift tasks.
func (s *Service) combinedTasks(ctx context.Context, doc *domain.ShiftAssignment, weekID string, dates []time.Time, morning, evening string) ([]domain.CombinedTask, error) {
	out := []domain.CombinedTask{}
	if doc != nil {
		for _, t := range doc.Tasks {
			t.AssignedTo = ResolveAssignees(t.AssignedTo, morning, evening)
			out = append(out, domain.CombinedTask{
				Task:     t,
				Source:   domain.TaskSourceShift,
				ParentID: weekID,
			})
		}
	}

	from := dates[0].Format(dateLayout)
	to := dates[len(dates)-1].Format(dateLayout)
	events, err := s.events.ListOverlapping(ctx, from, to)
	if err != nil {
		return nil, err
	}
	for _, ev := range events {
		for _, t := range ev.Tasks {
			out = append(out, domain.CombinedTask{
				Task:      t,
				Source:    domain.TaskSourceEvent,
				ParentID:  ev.ID,
				EventName: ev.Name,
			})
		}
	}
	return out, nil
}

// ResolveAssignees maps the symbolic MORNING/EVENING tokens to the effective
// workers, passes any other token through and collapses duplicates while
// keeping order.
func ResolveAssignees(tokens []string, morning, evening string) []string {
	if len(tokens) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		name := tok
		switch tok {
		case domain.AssigneeMorning:
			name = morning
		case domain.AssigneeEvening:
			name = evening
		}
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// loadOrInit returns the stored week document or a fresh one carrying the
// current effective workers, so a partial mutation never loses the rotation.
func (s *Service) loadOrInit(ctx context.Context, weekID string) (*domain.ShiftAssignment, error) {
	doc, err := s.shifts.Get(ctx, weekID)
	if err != nil {
		return nil, err
	}
	if doc != nil {
		return doc, nil
	}
	_, week, err := ParseWeekID(weekID)
	if err != nil {
		return nil, ErrValidation
	}
	morning, evening := s.defaultWorkers(week)
	return &domain.ShiftAssignment{WeekID: weekID, Morning: morning, Evening: evening}, nil
}

// Vacations returns the year document, empty when nothing is stored yet.
func (s *Service) Vacations(ctx context.Context, year string) (*domain.VacationYear, error) {
	if _, err := strconv.Atoi(year); err != nil {
		return nil, ErrValidation
	}
	doc, err := s.vacations.Get(ctx, year)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		doc = &domain.VacationYear{Year: year, Dates: map[string]string{}}
	}
	return doc, nil
}

// SetVacation records a vacation day. One worker per date, and no worker
// exceeds the yearly cap; both are checked before the write.
func (s *Service) SetVacation(ctx context.Context, year, date, worker string) error {
	if _, err := strconv.Atoi(year); err != nil {
		return ErrValidation
	}
	d, err := time.ParseInLocation(dateLayout, date, time.Local)
	if err != nil || strconv.Itoa(d.Year()) != year {
		return ErrValidation
	}
	if !s.inPool(worker) {
		return ErrValidation
	}

	doc, err := s.Vacations(ctx, year)
	if err != nil {
		return err
	}
	if existing, ok := doc.Dates[date]; ok {
		if existing == worker {
			return nil
		}
		return ErrDateTaken
	}

	count := 0
	for _, w := range doc.Dates {
		if w == worker {
			count++
		}
	}
	if count >= s.vacationCap {
		return ErrVacationLimit
	}

	doc.Dates[date] = worker
	return s.vacations.Save(ctx, doc)
}

// RemoveVacation frees a recorded vacation day.
func (s *Service) RemoveVacation(ctx context.Context, year, date string) error {
	if _, err := strconv.Atoi(year); err != nil {
		return ErrValidation
	}
	doc, err := s.vacations.Get(ctx, year)
	if err != nil {
		return err
	}
	if doc == nil {
		return ErrNotFound
	}
	if _, ok := doc.Dates[date]; !ok {
		return ErrNotFound
	}
	delete(doc.Dates, date)
	return s.vacations.Save(ctx, doc)
}
