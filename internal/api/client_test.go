package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pluggkompis/pluggkompis_bot/internal/calendar"
	"github.com/pluggkompis/pluggkompis_bot/internal/model"
	"github.com/pluggkompis/pluggkompis_bot/internal/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, zap.NewNop())
}

func writeEnvelope(w http.ResponseWriter, status int, success bool, data any, message string, errs ...string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": success,
		"data":    data,
		"message": message,
		"errors":  errs,
	})
}

func TestLogin(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req loginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "anna@example.se", req.Email)

		writeEnvelope(w, http.StatusOK, true, map[string]any{
			"token":     "jwt",
			"expiresAt": "2026-03-10T12:00:00Z",
			"user": map[string]any{
				"id": "u1", "email": "anna@example.se", "firstName": "Anna", "lastName": "Berg", "role": "Parent",
			},
		}, "")
	})

	res, err := c.Login(context.Background(), "anna@example.se", "secret")
	require.NoError(t, err)
	assert.Equal(t, "jwt", res.Token)
	assert.Equal(t, model.RoleParent, res.User.Role)
	assert.Equal(t, time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC), res.ExpiresAt.UTC())
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		status int
		target error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusConflict, ErrConflict},
		{http.StatusBadRequest, ErrValidation},
	}

	for _, tc := range cases {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(w, tc.status, false, nil, "nope", "detail one")
		})
		_, err := c.Me(context.Background(), "tok")
		require.Error(t, err)
		assert.ErrorIs(t, err, tc.target, tc.status)

		var apiErr *Error
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, "detail one", apiErr.UserMessage())
	}
}

func TestSuccessFalseOn200(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, false, nil, "Passet är fullbokat")
	})
	err := c.CancelBooking(context.Background(), "tok", "b1")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "fullbokat")
}

func TestNonJSONError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "<html>bad gateway</html>")
	})
	_, err := c.Venues(context.Background())
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
}

func TestVenueTimeSlots_SkipsInvalid(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/venues/v1/timeslots", r.URL.Path)
		writeEnvelope(w, http.StatusOK, true, []map[string]any{
			{
				"id": "weekly", "venueId": "v1", "dayOfWeek": "Monday",
				"startTime": "15:00:00", "endTime": "17:00:00",
				"maxStudents": 10, "currentBookings": 3, "isRecurring": true,
				"recurringStartDate": "2026-01-05", "recurringEndDate": "2026-06-01",
				"status": "Open",
				"subjects": []map[string]any{{"id": "s1", "name": "Matematik", "icon": "➗"}},
			},
			{
				"id": "oneoff", "venueId": "v1", "dayOfWeek": "Saturday",
				"startTime": "10:00", "endTime": "12:00",
				"maxStudents": 5, "isRecurring": false, "specificDate": "2026-03-14",
				"status": "Open",
			},
			{
				"id": "both", "venueId": "v1", "dayOfWeek": "Monday",
				"startTime": "10:00", "endTime": "12:00",
				"isRecurring": true, "specificDate": "2026-03-14",
			},
			{
				"id": "neither", "venueId": "v1", "dayOfWeek": "Monday",
				"startTime": "10:00", "endTime": "12:00",
				"isRecurring": false,
			},
		}, "")
	})

	slots, err := c.VenueTimeSlots(context.Background(), "v1")
	require.Error(t, err)
	assert.ErrorIs(t, err, schedule.ErrInvalidSlotDefinition)
	assert.True(t, IsInvalidSlot(err))
	require.Len(t, slots, 2)

	weekly := slots[0]
	require.NotNil(t, weekly.Recurrence.Weekly)
	assert.Equal(t, calendar.Monday, weekly.Recurrence.Weekly.DayOfWeek)
	assert.Equal(t, calendar.NewDate(2026, time.January, 5), weekly.Recurrence.Weekly.EffectiveFrom)
	require.NotNil(t, weekly.Recurrence.Weekly.EffectiveUntil)
	assert.Equal(t, 10, weekly.MaxCapacity)
	assert.Equal(t, []string{"Matematik"}, weekly.SubjectNames())

	oneOff := slots[1]
	require.NotNil(t, oneOff.Recurrence.OneOff)
	assert.Equal(t, calendar.NewDate(2026, time.March, 14), *oneOff.Recurrence.OneOff)
	assert.Equal(t, calendar.TimeOfDay{Hour: 10}, oneOff.StartTime)
}

func TestVenueTimeSlots_MalformedProjectionsAreInvalid(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, true, []map[string]any{
			{
				"id": "good", "venueId": "v1", "dayOfWeek": "2",
				"startTime": "15:00", "endTime": "17:00",
				"maxStudents": 10, "isRecurring": true, "status": "Open",
			},
			{
				"id": "dotted", "venueId": "v1", "dayOfWeek": "Monday",
				"startTime": "15.00", "endTime": "17:00", "isRecurring": true,
			},
			{
				"id": "backwards", "venueId": "v1", "dayOfWeek": "Monday",
				"startTime": "17:00", "endTime": "15:00", "isRecurring": true,
			},
			{
				"id": "baddate", "venueId": "v1",
				"startTime": "10:00", "endTime": "12:00",
				"isRecurring": false, "specificDate": "14/3",
			},
		}, "")
	})

	slots, err := c.VenueTimeSlots(context.Background(), "v1")
	require.Error(t, err)
	assert.True(t, IsInvalidSlot(err))
	for _, e := range err.(interface{ Unwrap() []error }).Unwrap() {
		assert.ErrorIs(t, e, schedule.ErrInvalidSlotDefinition)
	}
	require.Len(t, slots, 1)
	assert.Equal(t, "good", slots[0].ID)
	assert.Equal(t, calendar.Tuesday, slots[0].Recurrence.Weekly.DayOfWeek)
}

func TestCreateBooking_IdempotencyKey(t *testing.T) {
	var keys []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		keys = append(keys, r.Header.Get("Idempotency-Key"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "2026-03-16", body["bookingDate"])
		assert.Equal(t, "c1", body["childId"])

		writeEnvelope(w, http.StatusCreated, true, map[string]any{
			"id": "b1", "timeSlotId": "ts1", "bookingDate": "2026-03-16T00:00:00",
			"status": "Confirmed", "childName": "Elsa", "startTime": "15:00:00",
		}, "")
	})

	child := "c1"
	req := BookingRequest{TimeSlotID: "ts1", BookingDate: calendar.NewDate(2026, time.March, 16), ChildID: &child}
	b, err := c.CreateBooking(context.Background(), "tok", req)
	require.NoError(t, err)
	assert.True(t, b.IsConfirmed())
	assert.Equal(t, calendar.NewDate(2026, time.March, 16), b.BookingDate)
	require.NotNil(t, b.StartTime)
	assert.Equal(t, 15, b.StartTime.Hour)
	assert.Nil(t, b.EndTime)

	_, err = c.CreateBooking(context.Background(), "tok", req)
	require.NoError(t, err)
	require.Len(t, keys, 2)
	assert.NotEmpty(t, keys[0])
	assert.NotEqual(t, keys[0], keys[1])
}

func TestReviewApplication(t *testing.T) {
	var paths []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		paths = append(paths, r.URL.Path)
		writeEnvelope(w, http.StatusOK, true, nil, "ok")
	})

	require.NoError(t, c.ReviewApplication(context.Background(), "tok", "a1", true))
	require.NoError(t, c.ReviewApplication(context.Background(), "tok", "a2", false))
	assert.Equal(t, []string{
		"/api/coordinator/applications/a1/approve",
		"/api/coordinator/applications/a2/decline",
	}, paths)
}

func TestExportHours(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2026-01-01", r.URL.Query().Get("from"))
		assert.Equal(t, "2026-03-31", r.URL.Query().Get("to"))
		assert.Equal(t, "application/pdf", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.7"))
	})

	pdf, err := c.ExportHours(context.Background(), "tok",
		calendar.NewDate(2026, time.January, 1), calendar.NewDate(2026, time.March, 31))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7", string(pdf))
}

func TestExportHours_Error(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusForbidden, false, nil, "Endast volontärer")
	})
	_, err := c.ExportHours(context.Background(), "tok", calendar.Date{}, calendar.Date{})
	assert.ErrorIs(t, err, ErrForbidden)
}
