package booking

import (
	"fmt"
	"strings"
	"time"
)

// Slots are fixed at half-hour granularity across the operating window.
const SlotMinutes = 30

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// EncodeSlotKey builds the identity of one reservation slot:
// {spaceId}-{YYYY-MM-DD}-{HH:mm}. The date is formatted in the date's own
// location so an evening booking never shifts to the next day through a UTC
// conversion.
func EncodeSlotKey(spaceID string, date time.Time, slot string) string {
	return fmt.Sprintf("%s-%s-%s", spaceID, date.Format(dateLayout), slot)
}

// DecodeSlotKey splits a slot key back into its parts. The time is the last
// hyphen segment, the date the previous three joined; everything before
// belongs to the space id, which may itself contain hyphens.
func DecodeSlotKey(key string) (spaceID, date, slot string, err error) {
	parts := strings.Split(key, "-")
	if len(parts) < 4 {
		return "", "", "", fmt.Errorf("malformed slot key %q", key)
	}
	slot = parts[len(parts)-1]
	date = strings.Join(parts[len(parts)-4:len(parts)-1], "-")
	spaceID = strings.Join(parts[:len(parts)-4], "-")
	return spaceID, date, slot, nil
}

// Grid holds the bookable half-hour slots of one operating day.
type Grid struct {
	slots []string
}

func NewGrid(dayStart, dayEnd string) (*Grid, error) {
	start, err := clockMinutes(dayStart)
	if err != nil {
		return nil, fmt.Errorf("invalid day start %q: %w", dayStart, err)
	}
	end, err := clockMinutes(dayEnd)
	if err != nil {
		return nil, fmt.Errorf("invalid day end %q: %w", dayEnd, err)
	}
	if end <= start {
		return nil, fmt.Errorf("day end %q must be after day start %q", dayEnd, dayStart)
	}

	var slots []string
	for m := start; m < end; m += SlotMinutes {
		slots = append(slots, minutesClock(m))
	}
	return &Grid{slots: slots}, nil
}

// Slots returns every configured slot in order.
func (g *Grid) Slots() []string {
	out := make([]string, len(g.slots))
	copy(out, g.slots)
	return out
}

// Relevant returns the configured slots s with start <= s < end.
// Zero-padded HH:mm strings order correctly as text.
func (g *Grid) Relevant(start, end string) []string {
	var out []string
	for _, s := range g.slots {
		if s >= start && s < end {
			out = append(out, s)
		}
	}
	return out
}

// ValidClock reports whether s is a well-formed HH:mm time.
func ValidClock(s string) bool {
	_, err := clockMinutes(s)
	return err == nil
}

func clockMinutes(s string) (int, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func minutesClock(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// nextSlot returns the slot half an hour after s.
func nextSlot(s string) string {
	m, _ := clockMinutes(s)
	return minutesClock(m + SlotMinutes)
}
