package service

import (
	"errors"
	"slices"

	"github.com/pluggkompis/pluggkompis_bot/internal/model"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

func joinErr(a, b error) error {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return errors.Join(a, b)
}

// countJoined counts the leaves of an errors.Join tree.
func countJoined(err error) int {
	if err == nil {
		return 0
	}
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		n := 0
		for _, e := range j.Unwrap() {
			n += countJoined(e)
		}
		return n
	}
	return 1
}

// sortBookingViews orders by date, then start time; unknown times go last within a day.
func sortBookingViews(views []BookingView) {
	slices.SortStableFunc(views, func(a, b BookingView) int {
		if c := a.BookingDate.Compare(b.BookingDate); c != 0 {
			return c
		}
		switch {
		case a.SlotStart == nil && b.SlotStart == nil:
			return 0
		case a.SlotStart == nil:
			return 1
		case b.SlotStart == nil:
			return -1
		}
		return a.SlotStart.Minutes() - b.SlotStart.Minutes()
	})
}

// sortChildren orders children by first name the way a Swedish reader expects.
func sortChildren(children []model.Child) []model.Child {
	col := collate.New(language.Swedish, collate.IgnoreCase)
	slices.SortStableFunc(children, func(a, b model.Child) int {
		return col.CompareString(a.FirstName, b.FirstName)
	})
	return children
}
