package care

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"plantcare/pkg/calendar"
)

type item struct {
	name  string
	notes string
	date  calendar.Date
}

func (i item) SearchFields() []string { return []string{i.name, i.notes} }

func dates(items []item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.date.String()
	}
	return out
}

func names(items []item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.name
	}
	return out
}

func TestSortByNextDue(t *testing.T) {
	items := []item{
		{date: calendar.MustParse("2024-06-12")},
		{date: calendar.Date{}},
		{date: calendar.MustParse("2024-06-09")},
		{date: calendar.MustParse("2024-06-15")},
	}
	SortByNextDue(items, func(i item) calendar.Date { return i.date })
	assert.Equal(t, []string{"2024-06-09", "2024-06-12", "2024-06-15", ""}, dates(items))
}

func TestSortByDateDesc(t *testing.T) {
	items := []item{
		{date: calendar.MustParse("2024-06-01")},
		{date: calendar.Date{}},
		{date: calendar.MustParse("2024-06-15")},
		{date: calendar.MustParse("2024-06-10")},
	}
	SortByDateDesc(items, func(i item) calendar.Date { return i.date })
	assert.Equal(t, []string{"2024-06-15", "2024-06-10", "2024-06-01", ""}, dates(items))
}

func TestSortIsStable(t *testing.T) {
	same := calendar.MustParse("2024-06-10")
	items := []item{{name: "a", date: same}, {name: "b", date: same}, {name: "c", date: same}}
	SortByDateDesc(items, func(i item) calendar.Date { return i.date })
	assert.Equal(t, []string{"a", "b", "c"}, names(items))
}

func TestFilter(t *testing.T) {
	items := []item{
		{name: "Jibóia", notes: "hanging"},
		{name: "Ficus"},
		{name: "Samambaia", notes: "perto da JANELA"},
	}

	t.Run("diacritic insensitive", func(t *testing.T) {
		assert.Equal(t, []string{"Jibóia"}, names(Filter(items, "jiboia")))
	})

	t.Run("matches any field case-insensitively", func(t *testing.T) {
		assert.Equal(t, []string{"Samambaia"}, names(Filter(items, "janela")))
	})

	t.Run("blank query returns the input in order", func(t *testing.T) {
		assert.Equal(t, items, Filter(items, ""))
		assert.Equal(t, items, Filter(items, "   "))
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, Filter(items, "cacto"))
	})

	t.Run("custom field set", func(t *testing.T) {
		byNotes := FilterBy(items, "hang", func(i item) []string { return []string{i.notes} })
		assert.Equal(t, []string{"Jibóia"}, names(byNotes))
	})
}
