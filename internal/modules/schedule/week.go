package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// WeekID formats the ISO week of t as YYYY-WW.
func WeekID(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-%02d", year, week)
}

// ParseWeekID validates a YYYY-WW id and returns the ISO year and week.
func ParseWeekID(id string) (year, week int, err error) {
	parts := strings.Split(id, "-")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed week id %q", id)
	}
	year, err = strconv.Atoi(parts[0])
	if err != nil || year < 1 {
		return 0, 0, fmt.Errorf("malformed week id %q", id)
	}
	week, err = strconv.Atoi(parts[1])
	if err != nil || week < 1 || week > 53 {
		return 0, 0, fmt.Errorf("malformed week id %q", id)
	}
	// week 53 only exists in long ISO years
	monday := mondayOf(year, week)
	if y, w := monday.ISOWeek(); y != year || w != week {
		return 0, 0, fmt.Errorf("no such ISO week %q", id)
	}
	return year, week, nil
}

// WeekDates returns the seven dates of an ISO week, Monday first.
func WeekDates(year, week int) []time.Time {
	monday := mondayOf(year, week)
	out := make([]time.Time, 7)
	for i := range out {
		out[i] = monday.AddDate(0, 0, i)
	}
	return out
}

func mondayOf(year, week int) time.Time {
	// January 4th is always inside ISO week 1
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.Local)
	monday := jan4.AddDate(0, 0, -((int(jan4.Weekday()) + 6) % 7))
	return monday.AddDate(0, 0, (week-1)*7)
}
