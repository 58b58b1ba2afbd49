package booking

import (
	"iter"
	"time"
)

// Rule is the repeat vocabulary exposed by the booking form.
type Rule string

const (
	RuleNone     Rule = "none"
	RuleDaily    Rule = "daily"
	RuleWeekdays Rule = "weekdays"
	RuleWeekly   Rule = "weekly"
	RuleMonthly  Rule = "monthly"
)

func ValidRule(r Rule) bool {
	switch r {
	case RuleNone, RuleDaily, RuleWeekdays, RuleWeekly, RuleMonthly:
		return true
	}
	return false
}

// Dates yields the calendar dates a repeat rule expands to, never past end
// (inclusive). The sequence is lazy and single-pass; collect it into a slice
// before iterating twice. start > end yields nothing, whatever the rule.
func Dates(start time.Time, rule Rule, end time.Time, weekdays []time.Weekday) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		start = truncateDay(start)
		end = truncateDay(end)
		if start.After(end) {
			return
		}

		switch rule {
		case RuleNone:
			yield(start)

		case RuleDaily:
			for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
				if !yield(d) {
					return
				}
			}

		case RuleWeekdays:
			for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
				if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
					continue
				}
				if !yield(d) {
					return
				}
			}

		case RuleWeekly:
			mask := make(map[time.Weekday]bool, len(weekdays))
			for _, wd := range weekdays {
				mask[wd] = true
			}
			if len(mask) == 0 {
				mask[start.Weekday()] = true
			}
			for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
				if !mask[d.Weekday()] {
					continue
				}
				if !yield(d) {
					return
				}
			}

		case RuleMonthly:
			year, month, dom := start.Date()
			for i := 0; ; i++ {
				first := time.Date(year, month+time.Month(i), 1, 0, 0, 0, 0, start.Location())
				if first.After(end) {
					return
				}
				d := time.Date(year, month+time.Month(i), dom, 0, 0, 0, 0, start.Location())
				// time.Date normalizes Feb 31 into March; such a month has
				// no matching day and is skipped, never clamped.
				if d.Month() != first.Month() {
					continue
				}
				if d.After(end) {
					return
				}
				if !yield(d) {
					return
				}
			}
		}
	}
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
