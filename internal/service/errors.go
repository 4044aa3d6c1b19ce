package service

import "errors"

var (
	ErrNotLoggedIn        = errors.New("not logged in")
	ErrForbidden          = errors.New("action not allowed for this role")
	ErrCancellationWindow = errors.New("booking can no longer be cancelled")
	ErrSlotTaken          = errors.New("slot was taken or changed")
	ErrSlotUnavailable    = errors.New("slot is not bookable")
	ErrNotAnOccurrence    = errors.New("slot does not take place on that date")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnknownChild       = errors.New("child does not belong to this account")
	ErrInvalidMotivation  = errors.New("motivation has the wrong length")
	ErrInvalidNotes       = errors.New("booking notes are too long")
)
