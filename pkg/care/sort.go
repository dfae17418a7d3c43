package care

import (
	"slices"

	"plantcare/pkg/calendar"
)

// SortByNextDue orders items ascending by due date, soonest first. Items
// without a date sort last; ties keep their original order.
func SortByNextDue[T any](items []T, due func(T) calendar.Date) {
	slices.SortStableFunc(items, func(a, b T) int {
		return compareZeroLast(due(a), due(b))
	})
}

// SortByDateDesc orders items most recent first. Items without a date sort
// last; ties keep their original order.
func SortByDateDesc[T any](items []T, date func(T) calendar.Date) {
	slices.SortStableFunc(items, func(a, b T) int {
		da, db := date(a), date(b)
		if da.IsZero() || db.IsZero() {
			return compareZeroLast(da, db)
		}
		return db.Compare(da)
	})
}

func compareZeroLast(a, b calendar.Date) int {
	switch {
	case a.IsZero() && b.IsZero():
		return 0
	case a.IsZero():
		return 1
	case b.IsZero():
		return -1
	}
	return a.Compare(b)
}
