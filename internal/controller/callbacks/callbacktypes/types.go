package callbacktypes

import (
	"time"

	"github.com/pluggkompis/pluggkompis_bot/internal/service"
	"go.uber.org/zap"
)

// UserState is the dialog step a user is in (mirrors state.UserState).
type UserState string

// StateManager is the dialog state store used by callbacks.
type StateManager interface {
	ClearState(telegramID int64)
	GetState(telegramID int64) UserState
	SetState(telegramID int64, state UserState)
	SetData(telegramID int64, key string, value any)
	GetData(telegramID int64, key string) (any, bool)
	GetString(telegramID int64, key string) (string, bool)
	GetAllData(telegramID int64) map[string]any
}

// Handler holds what every callback handler needs.
type Handler struct {
	Sessions     *service.SessionService
	Schedule     *service.ScheduleService
	Bookings     *service.BookingService
	Volunteers   *service.VolunteerService
	Coordinators *service.CoordinatorService
	StateManager StateManager
	Location     *time.Location
	Logger       *zap.Logger
}

// Now is the current time in the bot's time zone.
func (h *Handler) Now() time.Time {
	return time.Now().In(h.Location)
}

// Dialog states and data keys shared with the state package.
const (
	StateNone            UserState = ""
	StateApplyMotivation UserState = "apply_motivation"
	StateBookingPending  UserState = "booking_pending"

	KeyVenueID = "venue_id"
	KeySlotID  = "slot_id"
	KeyDate    = "date"
	KeyChildID = "child_id"
	KeyNext    = "book_next"
)
