// Command week_image renders a sample venue week to week.png for checking
// the layout without a running bot.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pluggkompis/pluggkompis_bot/internal/availability"
	"github.com/pluggkompis/pluggkompis_bot/internal/calendar"
	"github.com/pluggkompis/pluggkompis_bot/internal/model"
	"github.com/pluggkompis/pluggkompis_bot/internal/render"
	"github.com/pluggkompis/pluggkompis_bot/internal/schedule"
	"github.com/pluggkompis/pluggkompis_bot/internal/service"
)

func main() {
	now := time.Now()
	today := calendar.DateOf(now)
	monday := calendar.WeekStart(today)

	math := []model.Subject{{ID: "1", Name: "Matematik"}}
	swedish := []model.Subject{{ID: "2", Name: "Svenska"}}

	slots := []*model.TimeSlot{
		sample("1", model.Weekly(calendar.Monday, monday.AddDays(-28), nil), 15, 0, 17, 0, 12, 3, math),
		sample("2", model.Weekly(calendar.Tuesday, monday.AddDays(-28), nil), 16, 0, 18, 0, 10, 7, swedish),
		sample("3", model.Weekly(calendar.Wednesday, monday.AddDays(-28), nil), 15, 30, 17, 30, 8, 8, math),
		sample("4", model.Weekly(calendar.Thursday, monday.AddDays(-28), nil), 14, 0, 16, 0, 10, 1, swedish),
		sample("5", model.OneOff(monday.AddDays(5)), 10, 0, 13, 0, 20, 6, math),
	}
	slots[3].Status = model.SlotStatusCancelled

	occurrences, err := schedule.WeekOccurrences(slots, today, time.Local)
	if err != nil {
		fmt.Printf("Some slots were skipped: %v\n", err)
	}

	view := &service.WeekView{
		Venue: model.Venue{Name: "Alby bibliotek"},
		Days:  calendar.WeekOf(today),
	}
	for _, occ := range occurrences {
		view.Slots = append(view.Slots, service.SlotView{
			Occurrence:   occ,
			Availability: availability.Summarize(occ.Slot),
		})
	}

	data, err := render.WeekImage(view, now)
	if err != nil {
		fmt.Printf("Render failed: %v\n", err)
		os.Exit(1)
	}

	const filename = "week.png"
	if err := os.WriteFile(filename, data, 0644); err != nil {
		fmt.Printf("Write failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Saved %s\n", filename)
	fmt.Printf("📅 Week: %s - %s\n", view.Days[0], view.Days[6])
	fmt.Printf("📊 Occurrences: %d\n", len(view.Slots))
}

func sample(id string, rec model.Recurrence, sh, sm, eh, em, capacity, booked int, subjects []model.Subject) *model.TimeSlot {
	return &model.TimeSlot{
		ID:              id,
		VenueID:         "demo",
		Recurrence:      rec,
		StartTime:       calendar.TimeOfDay{Hour: sh, Minute: sm},
		EndTime:         calendar.TimeOfDay{Hour: eh, Minute: em},
		MaxCapacity:     capacity,
		CurrentBookings: booked,
		Subjects:        subjects,
		Status:          model.SlotStatusOpen,
	}
}
