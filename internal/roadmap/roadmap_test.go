package roadmap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewItemStampsUrgency(t *testing.T) {
	item := NewItem("launch", 5, 5, day(2022, 10, 15), day(2022, 10, 16), day(2022, 10, 15))

	assert.Equal(t, 1.0, item.Urgency)
	assert.NotNil(t, item.Contributors)
	assert.Empty(t, item.Contributors)
}

func TestNewItemTruncatesClock(t *testing.T) {
	start := time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)
	item := NewItem("billing", 1, 1, start, day(2024, 2, 1), day(2024, 1, 2))

	assert.Equal(t, day(2024, 1, 2), item.StartDate)
}

func TestRescoreAfterEdit(t *testing.T) {
	today := day(2024, 1, 1)
	item := NewItem("search", 1, 1, today, day(2024, 1, 11), today)
	before := item.Urgency

	item.EstimatedValue = 5
	rescored := item.Rescore(today)

	assert.Greater(t, rescored.Urgency, before)
	assert.Equal(t, before, item.Urgency, "rescore must not mutate the receiver")
}

func TestWithContributorsCopies(t *testing.T) {
	today := day(2024, 1, 1)
	item := NewItem("search", 3, 3, today, day(2024, 1, 11), today)
	staff := []Contributor{{Name: "ana", Seniority: 2}, {Name: "bo", Seniority: 4}}

	staffed := item.WithContributors(staff)
	staff[0].Name = "changed"

	require.Len(t, staffed.Contributors, 2)
	assert.Equal(t, "ana", staffed.Contributors[0].Name)
	assert.Empty(t, item.Contributors)
}

func TestSortBySeniorityIsStable(t *testing.T) {
	cs := []Contributor{
		{Name: "c", Seniority: 5},
		{Name: "a", Seniority: 1},
		{Name: "b1", Seniority: 3},
		{Name: "b2", Seniority: 3},
	}
	SortBySeniority(cs)

	assert.Equal(t, []string{"a", "b1", "b2", "c"}, Names(cs))
}

func TestSortByUrgencyDescending(t *testing.T) {
	items := []Item{
		{Name: "low", Urgency: 0.2},
		{Name: "high", Urgency: 0.9},
		{Name: "mid-1", Urgency: 0.5},
		{Name: "mid-2", Urgency: 0.5},
	}
	SortByUrgency(items)

	var names []string
	for _, it := range items {
		names = append(names, it.Name)
	}
	assert.Equal(t, []string{"high", "mid-1", "mid-2", "low"}, names)
}

func TestContributorEquality(t *testing.T) {
	assert.Equal(t, Contributor{Name: "ana", Seniority: 2}, Contributor{Name: "ana", Seniority: 2})
	assert.NotEqual(t, Contributor{Name: "ana", Seniority: 2}, Contributor{Name: "ana", Seniority: 3})
	assert.Equal(t, "ana", Contributor{Name: "ana", Seniority: 2}.String())
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, day(2024, 2, 29), d)

	_, err = ParseDate("2023-02-29")
	assert.Error(t, err)
}
