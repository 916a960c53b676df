package tests

import (
	"net/http"
	"testing"

	"github.com/harmonyhs/harmony/core/schedule"
	"github.com/harmonyhs/harmony/core/user"
	testutil "github.com/harmonyhs/harmony/tests"
)

func Test_scheduleApi(t *testing.T) {
	resetDB(t)

	mom := testutil.CreateUser(t, usrRepo, "Mom", "mom", "mom@test.cd", "", []string{user.RoleParent}, true)
	momToken := getToken(t, mom)

	t.Run("auth required", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusUnauthorized, wantData: marshallObj(t, errMissingToken)}
		req, rec := newRequest(http.MethodGet, "/v1/schedule")
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("defaults to Mon-Fri", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusOK, wantData: marshallObj(t, schedule.DefaultSettings(mom.ID))}
		req, rec := newAuthRequest(http.MethodGet, "/v1/schedule", momToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("save settings", func(t *testing.T) {
		body := marshallObj(t, map[string]interface{}{"weekdays": []int{1, 2, 3, 4}})
		req, rec := newAuthRequest(http.MethodPut, "/v1/schedule", momToken, body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}

		var settings schedule.Settings
		unmarshallObj(t, rec.Body.Bytes(), &settings)
		if len(settings.Weekdays) != 4 {
			t.Errorf("weekdays = %v; want 4 days", settings.Weekdays)
		}
	})

	t.Run("reject out-of-range weekday", func(t *testing.T) {
		body := marshallObj(t, map[string]interface{}{"weekdays": []int{1, 9}})
		req, rec := newAuthRequest(http.MethodPut, "/v1/schedule", momToken, body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("code = %v; want %v", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("set override", func(t *testing.T) {
		body := marshallObj(t, map[string]string{"date": "2026-09-07", "kind": "exclude", "note": "Labor Day"})
		req, rec := newAuthRequest(http.MethodPut, "/v1/schedule/overrides", momToken, body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}
	})

	t.Run("upsert override on same date", func(t *testing.T) {
		body := marshallObj(t, map[string]string{"date": "2026-09-07", "kind": "include"})
		req, rec := newAuthRequest(http.MethodPut, "/v1/schedule/overrides", momToken, body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v", rec.Code, http.StatusOK)
		}

		req, rec = newAuthRequest(http.MethodGet, "/v1/schedule/overrides", momToken)
		app.ServeHTTP(rec, req)
		var overrides []schedule.DayOverride
		unmarshallObj(t, rec.Body.Bytes(), &overrides)
		if len(overrides) != 1 {
			t.Fatalf("overrides = %d; want 1", len(overrides))
		}
		if overrides[0].Kind != schedule.OverrideInclude {
			t.Errorf("kind = %v; want include", overrides[0].Kind)
		}
	})

	t.Run("week reflects settings and overrides", func(t *testing.T) {
		// week of Mon 2026-09-07; Monday excluded by weekdays {1,2,3,4}? no:
		// weekdays {1,2,3,4} means Mon-Thu; the include override forces Monday on.
		req, rec := newAuthRequest(http.MethodGet, "/v1/schedule/week?date=2026-09-09", momToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}

		var wk schedule.SchoolWeek
		unmarshallObj(t, rec.Body.Bytes(), &wk)
		if wk.WeekStart != "2026-09-07" {
			t.Errorf("week_start = %s; want 2026-09-07", wk.WeekStart)
		}
		want := []bool{true, true, true, true, false}
		for i, b := range want {
			if wk.SchoolDays[i] != b {
				t.Errorf("school_days[%d] = %v; want %v", i, wk.SchoolDays[i], b)
			}
		}
	})

	t.Run("invalid week date", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/schedule/week?date=lol", momToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("code = %v; want %v", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("remove override", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/schedule/overrides/2026-09-07", momToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Errorf("code = %v; want %v", rec.Code, http.StatusNoContent)
		}

		req, rec = newAuthRequest(http.MethodDelete, "/v1/schedule/overrides/2026-09-07", momToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("code = %v; want %v", rec.Code, http.StatusNotFound)
		}
	})
}
