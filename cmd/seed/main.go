package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"clubdesk/internal/config"
	"clubdesk/internal/database"
	"clubdesk/internal/domain"
	"clubdesk/internal/modules/booking"
	"clubdesk/internal/modules/schedule"
	"clubdesk/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM booking_slots")
	db.Exec("DELETE FROM shift_assignments")
	db.Exec("DELETE FROM special_events")
	db.Exec("DELETE FROM vacations")

	ctx := context.Background()
	slotRepo := repository.NewSlotRepository(db)
	shiftRepo := repository.NewShiftRepository(db)
	eventRepo := repository.NewEventRepository(db)
	vacationRepo := repository.NewVacationRepository(db)

	today := time.Now()
	monday := today.AddDate(0, 0, -int((today.Weekday()+6)%7))
	date := func(offset int) time.Time {
		return monday.AddDate(0, 0, offset)
	}

	// ================== BOOKINGS ==================
	log.Println("Creating bookings...")

	seedBooking := func(spaceID string, day time.Time, start, end, name string) {
		keys := []string{}
		for clock := start; clock < end; clock = addHalfHour(clock) {
			keys = append(keys, booking.EncodeSlotKey(spaceID, day, clock))
		}
		if err := slotRepo.CreateIfAbsentAll(ctx, keys, domain.SlotDetails{Name: name}); err != nil {
			log.Fatalf("seed booking %s %s: %v", spaceID, day.Format("2006-01-02"), err)
		}
	}

	seedBooking("court-1", date(0), "09:00", "10:30", "Alvarez")
	seedBooking("court-2", date(0), "09:00", "10:30", "Alvarez")
	seedBooking("padel", date(1), "17:00", "18:00", "Padel League")
	seedBooking("multi-room", date(2), "10:00", "12:00", "Yoga Class")
	seedBooking("court-1", date(4), "19:00", "21:00", "Friday Social")

	// ================== SCHEDULE ==================
	log.Println("Creating schedule override...")

	weekID := schedule.WeekID(monday)
	assignment := &domain.ShiftAssignment{
		WeekID:  weekID,
		Morning: cfg.Workers[0],
		Evening: cfg.Workers[1],
		DailyOverrides: map[int]domain.DayOverride{
			2: { // Wednesday: single full-day shift
				Morning: domain.ShiftPeriod{Active: true, Worker: cfg.Workers[0], Start: "09:00", End: "23:00"},
				Evening: domain.ShiftPeriod{Active: false},
			},
		},
		Observations: "Boiler maintenance visit on Thursday morning",
		Tasks: []domain.Task{
			{ID: uuid.NewString(), Text: "Restock vending machines", AssignedTo: []string{domain.AssigneeMorning}},
			{ID: uuid.NewString(), Text: "Lock equipment room", AssignedTo: []string{domain.AssigneeEvening}},
		},
	}
	if err := shiftRepo.Save(ctx, assignment); err != nil {
		log.Fatal("seed schedule: ", err)
	}

	// ================== SPECIAL EVENTS ==================
	log.Println("Creating special event...")

	event := &domain.SpecialEvent{
		ID:        uuid.NewString(),
		Name:      "Summer Tournament",
		StartDate: date(5).Format("2006-01-02"),
		EndDate:   date(6).Format("2006-01-02"),
		StartTime: "10:00",
		EndTime:   "18:00",
		SpaceIDs:  []string{"court-1", "court-2"},
		Tasks: []domain.Task{
			{ID: uuid.NewString(), Text: "Set up scoreboards", AssignedTo: []string{cfg.Workers[0]}},
			{ID: uuid.NewString(), Text: "Prepare trophies", AssignedTo: []string{domain.AssigneeEvening}},
		},
	}
	if err := eventRepo.Create(ctx, event); err != nil {
		log.Fatal("seed event: ", err)
	}

	// ================== VACATIONS ==================
	log.Println("Creating vacations...")

	year := today.Year()
	vac := &domain.VacationYear{
		Year: fmt.Sprintf("%d", year),
		Dates: map[string]string{
			fmt.Sprintf("%d-08-03", year): cfg.Workers[0],
			fmt.Sprintf("%d-08-04", year): cfg.Workers[0],
			fmt.Sprintf("%d-08-05", year): cfg.Workers[1],
		},
	}
	if err := vacationRepo.Save(ctx, vac); err != nil {
		log.Fatal("seed vacations: ", err)
	}

	log.Println("Seed completed!")
	log.Printf("Week seeded: %s (workers %s / %s)", weekID, cfg.Workers[0], cfg.Workers[1])
}

func addHalfHour(clock string) string {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		log.Fatalf("bad clock %q: %v", clock, err)
	}
	return t.Add(30 * time.Minute).Format("15:04")
}
