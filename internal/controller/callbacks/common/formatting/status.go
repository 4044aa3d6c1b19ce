package formatting

import (
	"github.com/pluggkompis/pluggkompis_bot/internal/availability"
	"github.com/pluggkompis/pluggkompis_bot/internal/model"
)

type StatusDisplay struct {
	Emoji string
	Text  string
}

func BookingStatus(status model.BookingStatus) StatusDisplay {
	switch status {
	case model.BookingStatusConfirmed:
		return StatusDisplay{"✅", "Bokad"}
	case model.BookingStatusCancelled:
		return StatusDisplay{"❌", "Avbokad"}
	case model.BookingStatusAttended:
		return StatusDisplay{"✔️", "Närvarade"}
	}
	return StatusDisplay{"❓", "Okänd"}
}

// Tier is the emoji used for an availability summary on buttons.
func Tier(s availability.Summary) StatusDisplay {
	if s.Cancelled {
		return StatusDisplay{"⚫️", "Inställt"}
	}
	switch s.Tier {
	case availability.TierAmple:
		return StatusDisplay{"🟢", "Många platser"}
	case availability.TierLimited:
		return StatusDisplay{"🟡", "Få platser"}
	}
	return StatusDisplay{"🔴", "Fullt"}
}

func ApplicationStatus(status string) StatusDisplay {
	switch status {
	case model.ApplicationStatusPending:
		return StatusDisplay{"⏳", "Väntar"}
	case model.ApplicationStatusApproved:
		return StatusDisplay{"✅", "Godkänd"}
	case model.ApplicationStatusDeclined:
		return StatusDisplay{"🚫", "Nekad"}
	}
	return StatusDisplay{"❓", "Okänd"}
}

func RoleName(r model.Role) string {
	switch r {
	case model.RoleParent:
		return "Förälder"
	case model.RoleStudent:
		return "Elev"
	case model.RoleVolunteer:
		return "Volontär"
	case model.RoleCoordinator:
		return "Samordnare"
	}
	return string(r)
}
