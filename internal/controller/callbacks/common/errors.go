package common

import (
	"errors"

	"github.com/pluggkompis/pluggkompis_bot/internal/api"
	"github.com/pluggkompis/pluggkompis_bot/internal/schedule"
	"github.com/pluggkompis/pluggkompis_bot/internal/service"
)

var (
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
	ErrDialogExpired = errors.New("dialog data missing")
)

// ErrorMessage maps an error to the Swedish text shown to the user.
func ErrorMessage(err error) string {
	var apiErr *api.Error
	switch {
	case errors.Is(err, service.ErrNotLoggedIn):
		return "🔒 Du är inte inloggad. Logga in med /login"
	case errors.Is(err, service.ErrForbidden):
		return "⛔ Det här är inte tillgängligt för din roll"
	case errors.Is(err, service.ErrCancellationWindow):
		return "⏰ Bokningen kan inte avbokas mindre än 2 timmar före start"
	case errors.Is(err, service.ErrSlotTaken):
		return "🔄 Passet har ändrats eller blivit fullt. Visa veckan igen och försök på nytt"
	case errors.Is(err, service.ErrSlotUnavailable):
		return "🚫 Passet går inte att boka"
	case errors.Is(err, service.ErrNotAnOccurrence):
		return "📅 Passet äger inte rum det datumet"
	case errors.Is(err, service.ErrUnknownChild):
		return "👧 Välj ett av dina registrerade barn"
	case errors.Is(err, service.ErrInvalidMotivation):
		return "✍️ Motiveringen ska vara mellan 20 och 1000 tecken"
	case errors.Is(err, service.ErrInvalidNotes):
		return "✍️ Meddelandet får vara högst 500 tecken"
	case errors.Is(err, service.ErrInvalidCredentials):
		return "❌ Fel e-post eller lösenord"
	case errors.Is(err, schedule.ErrInvalidSlotDefinition):
		return "⚠️ Passet är felaktigt upplagt. Kontakta samordnaren"
	case errors.Is(err, schedule.ErrOutOfRange):
		return "📅 Passet har inga fler tillfällen"
	case errors.Is(err, api.ErrNotFound):
		return "❓ Hittades inte"
	case errors.Is(err, ErrDialogExpired):
		return "⌛ Dialogen har gått ut. Börja om"
	case errors.Is(err, ErrInvalidFormat), errors.Is(err, ErrNoMessage):
		return "❌ Felaktig begäran"
	case errors.As(err, &apiErr) && apiErr.UserMessage() != "" && apiErr.StatusCode < 500:
		return "❌ " + apiErr.UserMessage()
	default:
		return "❌ Något gick fel. Försök igen senare"
	}
}
