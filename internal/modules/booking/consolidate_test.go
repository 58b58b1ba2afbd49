package booking

import (
	"testing"

	"clubdesk/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSpaces = []domain.Space{
	{ID: "court-1", Name: "Court 1"},
	{ID: "court-2", Name: "Court 2"},
	{ID: "padel", Name: "Padel"},
	{ID: "multi-room", Name: "Multipurpose Room"},
}

var testGroups = []domain.SpaceGroup{
	{Label: "Whole Club", SpaceIDs: []string{"court-1", "court-2", "padel", "multi-room"}},
	{Label: "Court 1 and 2", SpaceIDs: []string{"court-1", "court-2"}},
}

func TestConsolidate_MergesConsecutiveSlots(t *testing.T) {
	snap := map[string]domain.SlotDetails{
		"court-1-2026-08-24-09:00": {Name: "Alvarez"},
		"court-1-2026-08-24-09:30": {Name: "Alvarez"},
	}

	got := Consolidate(snap, "2026-08-24", testSpaces, testGroups)

	require.Len(t, got, 1)
	assert.Equal(t, "09:00", got[0].StartTime)
	assert.Equal(t, "10:00", got[0].EndTime)
	assert.Equal(t, "Court 1", got[0].Space)
	assert.Equal(t, "Alvarez", got[0].Details.Name)
	assert.Len(t, got[0].Keys, 2)
}

func TestConsolidate_NonContiguousSplits(t *testing.T) {
	snap := map[string]domain.SlotDetails{
		"court-1-2026-08-24-09:00": {Name: "Alvarez"},
		"court-1-2026-08-24-11:00": {Name: "Alvarez"},
	}

	got := Consolidate(snap, "2026-08-24", testSpaces, testGroups)

	require.Len(t, got, 2)
	assert.Equal(t, "09:00", got[0].StartTime)
	assert.Equal(t, "09:30", got[0].EndTime)
	assert.Equal(t, "11:00", got[1].StartTime)
	assert.Equal(t, "11:30", got[1].EndTime)
}

func TestConsolidate_DifferentNamesStayApart(t *testing.T) {
	snap := map[string]domain.SlotDetails{
		"court-1-2026-08-24-09:00": {Name: "Alvarez"},
		"court-1-2026-08-24-09:30": {Name: "Benede"},
	}

	got := Consolidate(snap, "2026-08-24", testSpaces, testGroups)

	require.Len(t, got, 2)
	assert.Equal(t, "Alvarez", got[0].Details.Name)
	assert.Equal(t, "Benede", got[1].Details.Name)
}

func TestConsolidate_GroupLabel(t *testing.T) {
	snap := map[string]domain.SlotDetails{
		"court-1-2026-08-24-18:00": {Name: "League"},
		"court-1-2026-08-24-18:30": {Name: "League"},
		"court-2-2026-08-24-18:00": {Name: "League"},
		"court-2-2026-08-24-18:30": {Name: "League"},
	}

	got := Consolidate(snap, "2026-08-24", testSpaces, testGroups)

	require.Len(t, got, 1)
	assert.Equal(t, "Court 1 and 2", got[0].Space)
	assert.Len(t, got[0].Keys, 4)
}

func TestConsolidate_GroupPlusLeftoverSpace(t *testing.T) {
	snap := map[string]domain.SlotDetails{
		"court-1-2026-08-24-18:00": {Name: "League"},
		"court-2-2026-08-24-18:00": {Name: "League"},
		"padel-2026-08-24-18:00":   {Name: "League"},
	}

	got := Consolidate(snap, "2026-08-24", testSpaces, testGroups)

	require.Len(t, got, 1)
	assert.Equal(t, "Court 1 and 2, Padel", got[0].Space)
}

func TestConsolidate_MostInclusiveGroupWins(t *testing.T) {
	snap := map[string]domain.SlotDetails{}
	for _, id := range []string{"court-1", "court-2", "padel", "multi-room"} {
		snap[id+"-2026-08-24-10:00"] = domain.SlotDetails{Name: "Maintenance"}
	}

	got := Consolidate(snap, "2026-08-24", testSpaces, testGroups)

	require.Len(t, got, 1)
	assert.Equal(t, "Whole Club", got[0].Space)
}

func TestConsolidate_LeftoversAlphabetical(t *testing.T) {
	snap := map[string]domain.SlotDetails{
		"padel-2026-08-24-10:00":      {Name: "Open Day"},
		"multi-room-2026-08-24-10:00": {Name: "Open Day"},
	}

	got := Consolidate(snap, "2026-08-24", testSpaces, testGroups)

	require.Len(t, got, 1)
	assert.Equal(t, "Multipurpose Room, Padel", got[0].Space)
}

func TestConsolidate_IgnoresOtherDates(t *testing.T) {
	snap := map[string]domain.SlotDetails{
		"court-1-2026-08-24-09:00": {Name: "Alvarez"},
		"court-1-2026-08-25-09:00": {Name: "Alvarez"},
	}

	got := Consolidate(snap, "2026-08-24", testSpaces, testGroups)

	require.Len(t, got, 1)
	assert.Equal(t, []string{"court-1-2026-08-24-09:00"}, got[0].Keys)
}

func TestConsolidate_EveryKeyInExactlyOneEntry(t *testing.T) {
	snap := map[string]domain.SlotDetails{
		"court-1-2026-08-24-09:00":    {Name: "Alvarez"},
		"court-1-2026-08-24-09:30":    {Name: "Alvarez"},
		"court-2-2026-08-24-09:00":    {Name: "Benede"},
		"padel-2026-08-24-12:00":      {Name: "Padel Clinic"},
		"multi-room-2026-08-24-12:00": {Name: "Yoga"},
	}

	got := Consolidate(snap, "2026-08-24", testSpaces, testGroups)

	seen := map[string]int{}
	for _, entry := range got {
		for _, k := range entry.Keys {
			seen[k]++
		}
	}
	assert.Len(t, seen, len(snap))
	for k, n := range seen {
		assert.Equal(t, 1, n, k)
	}
}

func TestConsolidate_SortedByTimeThenSpace(t *testing.T) {
	snap := map[string]domain.SlotDetails{
		"padel-2026-08-24-09:00":   {Name: "A"},
		"court-1-2026-08-24-09:00": {Name: "B"},
		"court-1-2026-08-24-08:00": {Name: "C"},
	}

	got := Consolidate(snap, "2026-08-24", testSpaces, testGroups)

	require.Len(t, got, 3)
	assert.Equal(t, "08:00", got[0].StartTime)
	assert.Equal(t, "Court 1", got[1].Space)
	assert.Equal(t, "Padel", got[2].Space)
}

func TestConsolidate_EmptySnapshot(t *testing.T) {
	got := Consolidate(map[string]domain.SlotDetails{}, "2026-08-24", testSpaces, testGroups)
	assert.Empty(t, got)
}
