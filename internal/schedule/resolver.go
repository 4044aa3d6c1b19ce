// Package schedule maps time-slot definitions onto calendar dates.
//
// All functions are pure: they never perform I/O and only look at the slot
// snapshot they are given.
package schedule

import (
	"errors"
	"fmt"
	"iter"
	"sort"
	"time"

	"github.com/pluggkompis/pluggkompis_bot/internal/calendar"
	"github.com/pluggkompis/pluggkompis_bot/internal/model"
)

var (
	// ErrInvalidSlotDefinition means a slot cannot be scheduled: neither or both
	// recurrence variants, or a projection that could not be converted.
	ErrInvalidSlotDefinition = errors.New("invalid slot definition")
	// ErrOutOfRange means a recurring slot has no occurrence left after the requested date.
	ErrOutOfRange = errors.New("slot has no occurrence in range")
)

// Validate checks the "exactly one recurrence variant" invariant.
func Validate(slot *model.TimeSlot) error {
	if slot == nil {
		return fmt.Errorf("%w: nil slot", ErrInvalidSlotDefinition)
	}
	r := slot.Recurrence
	switch {
	case r.Weekly == nil && r.OneOff == nil:
		return fmt.Errorf("%w: slot %s has no recurrence", ErrInvalidSlotDefinition, slot.ID)
	case r.Weekly != nil && r.OneOff != nil:
		return fmt.Errorf("%w: slot %s is both recurring and one-off", ErrInvalidSlotDefinition, slot.ID)
	case r.Weekly != nil && !r.Weekly.DayOfWeek.Valid():
		return fmt.Errorf("%w: slot %s has weekday %d", ErrInvalidSlotDefinition, slot.ID, int(r.Weekly.DayOfWeek))
	}
	return nil
}

// OccursOn reports whether slot takes place on date.
func OccursOn(slot *model.TimeSlot, date calendar.Date) (bool, error) {
	if err := Validate(slot); err != nil {
		return false, err
	}
	return occursOn(slot.Recurrence, date), nil
}

func occursOn(r model.Recurrence, date calendar.Date) bool {
	if r.OneOff != nil {
		return date == *r.OneOff
	}
	w := r.Weekly
	if date.Weekday() != w.DayOfWeek {
		return false
	}
	if !w.EffectiveFrom.IsZero() && date.Before(w.EffectiveFrom) {
		return false
	}
	if w.EffectiveUntil != nil && date.After(*w.EffectiveUntil) {
		return false
	}
	return true
}

// OccurrencesInRange yields every date in [from, to] on which slot occurs.
// The sequence is lazy and can be ranged over any number of times.
func OccurrencesInRange(slot *model.TimeSlot, from, to calendar.Date) (iter.Seq[calendar.Date], error) {
	if err := Validate(slot); err != nil {
		return nil, err
	}
	r := slot.Recurrence
	return func(yield func(calendar.Date) bool) {
		if r.OneOff != nil {
			d := *r.OneOff
			if !d.Before(from) && !d.After(to) {
				yield(d)
			}
			return
		}

		// Jump to the first matching weekday, then step a week at a time.
		d := from.AddDays(daysUntil(from.Weekday(), r.Weekly.DayOfWeek))
		for ; !d.After(to); d = d.AddDays(7) {
			if !occursOn(r, d) {
				if r.Weekly.EffectiveUntil != nil && d.After(*r.Weekly.EffectiveUntil) {
					return
				}
				continue
			}
			if !yield(d) {
				return
			}
		}
	}, nil
}

// NextOccurrence returns the date a booking made on from should target.
//
// For a one-off slot this is always its specific date; callers must not ask
// for a one-off slot that is already in the past. For a recurring slot it is
// the earliest matching date on or after from (and on or after the rule's
// start), or ErrOutOfRange once the rule has ended.
func NextOccurrence(slot *model.TimeSlot, from calendar.Date) (calendar.Date, error) {
	if err := Validate(slot); err != nil {
		return calendar.Date{}, err
	}
	r := slot.Recurrence
	if r.OneOff != nil {
		return *r.OneOff, nil
	}

	start := from
	if !r.Weekly.EffectiveFrom.IsZero() && start.Before(r.Weekly.EffectiveFrom) {
		start = r.Weekly.EffectiveFrom
	}
	next := start.AddDays(daysUntil(start.Weekday(), r.Weekly.DayOfWeek))
	if r.Weekly.EffectiveUntil != nil && next.After(*r.Weekly.EffectiveUntil) {
		return calendar.Date{}, fmt.Errorf("%w: slot %s ended %s", ErrOutOfRange, slot.ID, r.Weekly.EffectiveUntil)
	}
	return next, nil
}

// Resolve combines date with the slot's start and end time in loc. It does
// not check that the slot occurs on date; see OccursOn.
func Resolve(slot *model.TimeSlot, date calendar.Date, loc *time.Location) (model.Occurrence, error) {
	if err := Validate(slot); err != nil {
		return model.Occurrence{}, err
	}
	return resolve(slot, date, loc), nil
}

func resolve(slot *model.TimeSlot, date calendar.Date, loc *time.Location) model.Occurrence {
	return model.Occurrence{
		SlotID: slot.ID,
		Date:   date,
		Start:  date.At(slot.StartTime, loc),
		End:    date.At(slot.EndTime, loc),
		Slot:   slot,
	}
}

// WeekOccurrences resolves slots onto the Monday-Sunday week containing
// anchor, ordered by start time. Slots with a broken definition are left out
// and reported in the joined error; the rest of the week is still returned.
func WeekOccurrences(slots []*model.TimeSlot, anchor calendar.Date, loc *time.Location) ([]model.Occurrence, error) {
	from := calendar.WeekStart(anchor)
	to := from.AddDays(6)

	var (
		out  []model.Occurrence
		errs []error
	)
	for _, slot := range slots {
		dates, err := OccurrencesInRange(slot, from, to)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for d := range dates {
			out = append(out, resolve(slot, d, loc))
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})
	return out, errors.Join(errs...)
}

// daysUntil is the forward distance (0-6) from one weekday to another.
func daysUntil(from, to calendar.Weekday) int {
	return (int(to) - int(from) + 7) % 7
}
