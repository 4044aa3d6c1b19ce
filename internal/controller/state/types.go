package state

// UserState is the step of a multi-message dialog a user is in.
type UserState string

const (
	StateNone UserState = ""

	// Login
	StateLoginEmail    UserState = "login_email"
	StateLoginPassword UserState = "login_password"

	// Volunteer application
	StateApplyMotivation UserState = "apply_motivation"

	// Booking a seat: occurrence picked, waiting for child and confirmation
	StateBookingPending UserState = "booking_pending"
)

// Data keys used across dialogs.
const (
	KeyEmail     = "email"
	KeyVenueID   = "venue_id"
	KeySlotID    = "slot_id"
	KeyDate      = "date"
	KeyChildID   = "child_id"
	KeyNext      = "book_next"
	KeyMessageID = "message_id"
)

// UserData holds the dialog state and scratch values for one user.
type UserData struct {
	State UserState
	Data  map[string]any
}
