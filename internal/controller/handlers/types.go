package handlers

import (
	"github.com/pluggkompis/pluggkompis_bot/internal/controller/callbacks/callbacktypes"
	"github.com/pluggkompis/pluggkompis_bot/internal/controller/state"
	"github.com/pluggkompis/pluggkompis_bot/internal/service"
	"go.uber.org/zap"
)

// Handlers serves slash commands and free-text dialog steps.
type Handlers struct {
	sessions     *service.SessionService
	schedule     *service.ScheduleService
	bookings     *service.BookingService
	volunteers   *service.VolunteerService
	coordinators *service.CoordinatorService
	stateManager *state.Manager
	deps         *callbacktypes.Handler
	logger       *zap.Logger
}

// NewHandlers shares the services held by deps so commands and callbacks
// render the same screens.
func NewHandlers(deps *callbacktypes.Handler, stateManager *state.Manager) *Handlers {
	return &Handlers{
		sessions:     deps.Sessions,
		schedule:     deps.Schedule,
		bookings:     deps.Bookings,
		volunteers:   deps.Volunteers,
		coordinators: deps.Coordinators,
		stateManager: stateManager,
		deps:         deps,
		logger:       deps.Logger,
	}
}
