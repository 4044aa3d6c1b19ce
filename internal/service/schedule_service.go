package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/pluggkompis/pluggkompis_bot/internal/api"
	"github.com/pluggkompis/pluggkompis_bot/internal/availability"
	"github.com/pluggkompis/pluggkompis_bot/internal/calendar"
	"github.com/pluggkompis/pluggkompis_bot/internal/model"
	"github.com/pluggkompis/pluggkompis_bot/internal/schedule"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// VenueBackend is the read-only venue and slot part of the backend API.
type VenueBackend interface {
	Venues(ctx context.Context) ([]model.Venue, error)
	Venue(ctx context.Context, id string) (*model.Venue, error)
	VenueTimeSlots(ctx context.Context, venueID string) ([]*model.TimeSlot, error)
	TimeSlot(ctx context.Context, id string) (*model.TimeSlot, error)
}

// SlotView is one occurrence in a week together with its seat summary.
type SlotView struct {
	model.Occurrence
	Availability availability.Summary
}

// WeekView is a venue's Monday-Sunday schedule.
type WeekView struct {
	Venue   model.Venue
	Days    [7]calendar.Date
	Slots   []SlotView
	Skipped int // slots left out because their definition was broken
}

// ByDay groups the week's slots by day index (0 = Monday).
func (w *WeekView) ByDay() [7][]SlotView {
	var days [7][]SlotView
	for _, s := range w.Slots {
		i := s.Date.Weekday().Index()
		days[i] = append(days[i], s)
	}
	return days
}

// Find returns the slot view for slotID on date.
func (w *WeekView) Find(slotID string, date calendar.Date) (SlotView, bool) {
	for _, s := range w.Slots {
		if s.SlotID == slotID && s.Date == date {
			return s, true
		}
	}
	return SlotView{}, false
}

type ScheduleService struct {
	backend VenueBackend
	loc     *time.Location
	logger  *zap.Logger
}

func NewScheduleService(backend VenueBackend, loc *time.Location, logger *zap.Logger) *ScheduleService {
	return &ScheduleService{
		backend: backend,
		loc:     loc,
		logger:  logger,
	}
}

// Location is the civil time zone dates are resolved in.
func (s *ScheduleService) Location() *time.Location {
	return s.loc
}

// Venues returns active venues in Swedish alphabetical order (Å, Ä, Ö last).
func (s *ScheduleService) Venues(ctx context.Context) ([]model.Venue, error) {
	venues, err := s.backend.Venues(ctx)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}

	active := venues[:0]
	for _, v := range venues {
		if v.IsActive {
			active = append(active, v)
		}
	}

	col := collate.New(language.Swedish, collate.IgnoreCase)
	slices.SortStableFunc(active, func(a, b model.Venue) int {
		return col.CompareString(a.Name, b.Name)
	})
	return active, nil
}

// VenueWeek builds the week containing anchor for venueID. Slots with a broken
// recurrence are logged and skipped; the rest of the week is still shown.
func (s *ScheduleService) VenueWeek(ctx context.Context, venueID string, anchor calendar.Date) (*WeekView, error) {
	var (
		venue *model.Venue
		slots []*model.TimeSlot
		bad   error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := s.backend.Venue(gctx, venueID)
		if err != nil {
			return fmt.Errorf("get venue: %w", err)
		}
		venue = v
		return nil
	})
	g.Go(func() error {
		ts, err := s.backend.VenueTimeSlots(gctx, venueID)
		if err != nil && !api.IsInvalidSlot(err) {
			return fmt.Errorf("get time slots: %w", err)
		}
		slots, bad = ts, err
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	view := &WeekView{
		Venue: *venue,
		Days:  calendar.WeekOf(anchor),
	}

	occurrences, err := schedule.WeekOccurrences(slots, anchor, s.loc)
	if err != nil {
		bad = joinErr(bad, err)
	}
	if bad != nil {
		view.Skipped = countJoined(bad)
		s.logger.Warn("Skipped invalid time slots",
			zap.String("venue_id", venueID),
			zap.Int("skipped", view.Skipped),
			zap.Error(bad),
		)
	}

	for _, occ := range occurrences {
		view.Slots = append(view.Slots, SlotView{
			Occurrence:   occ,
			Availability: availability.Summarize(occ.Slot),
		})
	}
	return view, nil
}

// Slot fetches a single slot definition.
func (s *ScheduleService) Slot(ctx context.Context, slotID string) (*model.TimeSlot, error) {
	slot, err := s.backend.TimeSlot(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("get time slot: %w", err)
	}
	return slot, nil
}

// Occurrence resolves slotID on date, failing with ErrNotAnOccurrence when the
// slot does not take place that day.
func (s *ScheduleService) Occurrence(ctx context.Context, slotID string, date calendar.Date) (SlotView, error) {
	slot, err := s.Slot(ctx, slotID)
	if err != nil {
		return SlotView{}, err
	}
	ok, err := schedule.OccursOn(slot, date)
	if err != nil {
		return SlotView{}, err
	}
	if !ok {
		return SlotView{}, fmt.Errorf("%w: %s on %s", ErrNotAnOccurrence, slotID, date)
	}
	occ, err := schedule.Resolve(slot, date, s.loc)
	if err != nil {
		return SlotView{}, err
	}
	return SlotView{
		Occurrence:   occ,
		Availability: availability.Summarize(slot),
	}, nil
}

// Venue fetches one venue.
func (s *ScheduleService) Venue(ctx context.Context, venueID string) (*model.Venue, error) {
	v, err := s.backend.Venue(ctx, venueID)
	if err != nil {
		return nil, fmt.Errorf("get venue: %w", err)
	}
	return v, nil
}
