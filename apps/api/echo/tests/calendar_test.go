package tests

import (
	"net/http"
	"strings"
	"testing"

	. "github.com/harmonyhs/harmony/apps/api/echo"
	"github.com/harmonyhs/harmony/core/calendar"
	"github.com/harmonyhs/harmony/core/user"
	testutil "github.com/harmonyhs/harmony/tests"
)

func Test_calendarApi(t *testing.T) {
	resetDB(t)

	mom := testutil.CreateUser(t, usrRepo, "Mom", "mom", "mom@test.cd", "", []string{user.RoleParent}, true)
	momToken := getToken(t, mom)

	var ev calendar.Event

	t.Run("weekly event requires a day of week", func(t *testing.T) {
		body := marshallObj(t, map[string]interface{}{
			"title":           "Soccer",
			"recurrence_type": "weekly",
			"start_date":      "2026-09-01",
			"all_day":         true,
		})
		req, rec := newAuthRequest(http.MethodPost, "/v1/calendar/events", momToken, body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("code = %v; want %v", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("create weekly event", func(t *testing.T) {
		body := marshallObj(t, map[string]interface{}{
			"title":           "Soccer",
			"recurrence_type": "weekly",
			"day_of_week":     3, // Wednesday
			"start_date":      "2026-09-01",
			"start_time":      "15:00",
			"end_time":        "16:00",
		})
		req, rec := newAuthRequest(http.MethodPost, "/v1/calendar/events", momToken, body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusCreated, rec.Body.String())
		}
		unmarshallObj(t, rec.Body.Bytes(), &ev)
	})

	t.Run("agenda expands occurrences", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/calendar?from=2026-09-01&to=2026-09-14", momToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}

		var agenda Agenda
		unmarshallObj(t, rec.Body.Bytes(), &agenda)
		if len(agenda.Occurrences) != 2 {
			t.Fatalf("occurrences = %d; want 2 (Wednesdays Sep 2 and Sep 9)", len(agenda.Occurrences))
		}
		if agenda.Occurrences[0].Date != "2026-09-02" || agenda.Occurrences[1].Date != "2026-09-09" {
			t.Errorf("dates = %s, %s; want 2026-09-02, 2026-09-09",
				agenda.Occurrences[0].Date, agenda.Occurrences[1].Date)
		}
	})

	t.Run("invalid range", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/calendar?from=2026-09-14&to=2026-09-01", momToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("code = %v; want %v", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("add exception date", func(t *testing.T) {
		body := marshallObj(t, map[string]string{"date": "2026-09-09"})
		req, rec := newAuthRequest(http.MethodPut, "/v1/calendar/events/"+ev.ID+"/exceptions", momToken, body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}

		req, rec = newAuthRequest(http.MethodGet, "/v1/calendar?from=2026-09-01&to=2026-09-14", momToken)
		app.ServeHTTP(rec, req)
		var agenda Agenda
		unmarshallObj(t, rec.Body.Bytes(), &agenda)
		if len(agenda.Occurrences) != 1 {
			t.Fatalf("occurrences = %d; want 1 after exception", len(agenda.Occurrences))
		}
		if agenda.Occurrences[0].Date != "2026-09-02" {
			t.Errorf("date = %s; want 2026-09-02", agenda.Occurrences[0].Date)
		}
	})

	t.Run("export ics", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/calendar/export.ics?from=2026-09-01&to=2026-09-14", momToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v", rec.Code, http.StatusOK)
		}
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
			t.Errorf("Content-Type = %s; want text/calendar", ct)
		}
		ics := rec.Body.String()
		if !strings.Contains(ics, "BEGIN:VCALENDAR") || !strings.Contains(ics, "Soccer") {
			t.Errorf("unexpected ics payload:\n%s", ics)
		}
	})

	t.Run("update event", func(t *testing.T) {
		body := marshallObj(t, map[string]interface{}{
			"title":           "Soccer Practice",
			"recurrence_type": "weekly",
			"day_of_week":     4,
			"start_date":      "2026-09-01",
			"start_time":      "15:00",
			"end_time":        "16:00",
		})
		req, rec := newAuthRequest(http.MethodPut, "/v1/calendar/events/"+ev.ID, momToken, body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}

		var updated calendar.Event
		unmarshallObj(t, rec.Body.Bytes(), &updated)
		if updated.Title != "Soccer Practice" {
			t.Errorf("title = %s; want Soccer Practice", updated.Title)
		}
	})

	t.Run("times may carry seconds", func(t *testing.T) {
		body := marshallObj(t, map[string]interface{}{
			"title":           "Dentist",
			"recurrence_type": "once",
			"start_date":      "2026-10-05",
			"start_time":      "07:30:00",
			"end_time":        "08:15:00",
		})
		req, rec := newAuthRequest(http.MethodPost, "/v1/calendar/events", momToken, body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusCreated, rec.Body.String())
		}

		var appt calendar.Event
		unmarshallObj(t, rec.Body.Bytes(), &appt)
		if appt.StartTime != "07:30:00" || appt.EndTime != "08:15:00" {
			t.Errorf("times = %s, %s; want 07:30:00, 08:15:00", appt.StartTime, appt.EndTime)
		}

		req, rec = newAuthRequest(http.MethodDelete, "/v1/calendar/events/"+appt.ID, momToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Errorf("code = %v; want %v", rec.Code, http.StatusNoContent)
		}
	})

	t.Run("destroy event", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/calendar/events/"+ev.ID, momToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Errorf("code = %v; want %v", rec.Code, http.StatusNoContent)
		}
	})
}
