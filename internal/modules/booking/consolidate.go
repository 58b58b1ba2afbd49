package booking

import (
	"sort"
	"strings"

	"clubdesk/internal/domain"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type slotRef struct {
	slot    string
	key     string
	details domain.SlotDetails
}

// run is one contiguous [start, end) stretch of slots for a single space and
// booking name.
type run struct {
	spaceID string
	start   string
	end     string
	keys    []string
	details domain.SlotDetails
}

// Consolidate turns the flat slot snapshot into merged calendar entries for
// one day. Every snapshot key belonging to the date ends up in exactly one
// entry's Keys, with no duplication.
func Consolidate(snapshot map[string]domain.SlotDetails, date string, spaces []domain.Space, groups []domain.SpaceGroup) []domain.ConsolidatedBooking {
	names := make(map[string]string, len(spaces))
	for _, s := range spaces {
		names[s.ID] = s.Name
	}

	// 1. slots of the target date, bucketed by space and booking name
	type bucketKey struct {
		spaceID string
		name    string
	}
	buckets := make(map[bucketKey][]slotRef)
	for key, det := range snapshot {
		spaceID, d, slot, err := DecodeSlotKey(key)
		if err != nil || d != date {
			continue
		}
		bk := bucketKey{spaceID: spaceID, name: det.Name}
		buckets[bk] = append(buckets[bk], slotRef{slot: slot, key: key, details: det})
	}

	// 2. consecutive half hours merge into runs
	var runs []run
	for bk, refs := range buckets {
		sort.Slice(refs, func(i, j int) bool { return refs[i].slot < refs[j].slot })

		var cur run
		for _, ref := range refs {
			if len(cur.keys) > 0 && ref.slot == cur.end {
				cur.end = nextSlot(ref.slot)
				cur.keys = append(cur.keys, ref.key)
				continue
			}
			if len(cur.keys) > 0 {
				runs = append(runs, cur)
			}
			cur = run{
				spaceID: bk.spaceID,
				start:   ref.slot,
				end:     nextSlot(ref.slot),
				keys:    []string{ref.key},
				details: ref.details,
			}
		}
		if len(cur.keys) > 0 {
			runs = append(runs, cur)
		}
	}

	// 3. same time range and name across spaces folds into space groups
	type rangeKey struct {
		start string
		end   string
		name  string
	}
	byRange := make(map[rangeKey][]run)
	for _, r := range runs {
		rk := rangeKey{start: r.start, end: r.end, name: r.details.Name}
		byRange[rk] = append(byRange[rk], r)
	}

	coll := collate.New(language.Und)

	out := make([]domain.ConsolidatedBooking, 0, len(byRange))
	for rk, rs := range byRange {
		sort.Slice(rs, func(i, j int) bool { return rs[i].spaceID < rs[j].spaceID })

		remaining := make(map[string]bool, len(rs))
		var keys []string
		for _, r := range rs {
			remaining[r.spaceID] = true
			keys = append(keys, r.keys...)
		}

		// group definitions consume space ids in priority order
		var labels []string
		for _, g := range groups {
			if !containsAll(remaining, g.SpaceIDs) {
				continue
			}
			for _, id := range g.SpaceIDs {
				delete(remaining, id)
			}
			labels = append(labels, g.Label)
		}

		leftover := make([]string, 0, len(remaining))
		for id := range remaining {
			if n, ok := names[id]; ok {
				leftover = append(leftover, n)
			} else {
				leftover = append(leftover, id)
			}
		}
		sort.Strings(leftover)
		labels = append(labels, leftover...)
		sort.Strings(keys)

		out = append(out, domain.ConsolidatedBooking{
			Date:      date,
			StartTime: rk.start,
			EndTime:   rk.end,
			Space:     strings.Join(labels, ", "),
			Details:   rs[0].details,
			Keys:      keys,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].StartTime != out[j].StartTime {
			return out[i].StartTime < out[j].StartTime
		}
		return coll.CompareString(out[i].Space, out[j].Space) < 0
	})
	return out
}

func containsAll(set map[string]bool, ids []string) bool {
	if len(ids) == 0 {
		return false
	}
	for _, id := range ids {
		if !set[id] {
			return false
		}
	}
	return true
}
