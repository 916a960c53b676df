package tests

import (
	"net/http"
	"testing"

	"github.com/harmonyhs/harmony/core/child"
	"github.com/harmonyhs/harmony/core/reading"
	"github.com/harmonyhs/harmony/core/user"
	testutil "github.com/harmonyhs/harmony/tests"
)

func Test_readingApi(t *testing.T) {
	resetDB(t)

	mom := testutil.CreateUser(t, usrRepo, "Mom", "mom", "mom@test.cd", "", []string{user.RoleParent}, true)
	momToken := getToken(t, mom)

	var kid child.Child
	{
		body := marshallObj(t, map[string]string{"name": "Ada"})
		req, rec := newAuthRequest(http.MethodPost, "/v1/children", momToken, body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("creating child: code = %v; body %s", rec.Code, rec.Body.String())
		}
		unmarshallObj(t, rec.Body.Bytes(), &kid)
	}

	logEntry := func(t *testing.T, date string, minutes, pages int) reading.Entry {
		t.Helper()
		body := marshallObj(t, map[string]interface{}{
			"child_id":   kid.ID,
			"book_title": "Charlotte's Web",
			"date":       date,
			"minutes":    minutes,
			"pages":      pages,
		})
		req, rec := newAuthRequest(http.MethodPost, "/v1/reading", momToken, body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusCreated, rec.Body.String())
		}
		var entry reading.Entry
		unmarshallObj(t, rec.Body.Bytes(), &entry)
		return entry
	}

	t.Run("date is required", func(t *testing.T) {
		body := marshallObj(t, map[string]interface{}{"child_id": kid.ID, "book_title": "No Date"})
		req, rec := newAuthRequest(http.MethodPost, "/v1/reading", momToken, body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("code = %v; want %v", rec.Code, http.StatusBadRequest)
		}
	})

	entry := logEntry(t, "2026-09-01", 20, 12)
	logEntry(t, "2026-09-02", 30, 15)

	t.Run("list is newest first", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/reading", momToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v", rec.Code, http.StatusOK)
		}
		var entries []reading.Entry
		unmarshallObj(t, rec.Body.Bytes(), &entries)
		if len(entries) != 2 {
			t.Fatalf("entries = %d; want 2", len(entries))
		}
		if entries[0].Date != "2026-09-02" {
			t.Errorf("first date = %s; want 2026-09-02", entries[0].Date)
		}
	})

	t.Run("totals per child", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/reading/totals?from=2026-09-01&to=2026-09-30", momToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		var totals []reading.ChildTotals
		unmarshallObj(t, rec.Body.Bytes(), &totals)
		if len(totals) != 1 {
			t.Fatalf("totals = %d; want 1", len(totals))
		}
		if totals[0].Entries != 2 || totals[0].Minutes != 50 || totals[0].Pages != 27 {
			t.Errorf("totals = %+v; want 2 entries, 50 minutes, 27 pages", totals[0])
		}
	})

	t.Run("update", func(t *testing.T) {
		body := marshallObj(t, map[string]interface{}{"minutes": 25})
		req, rec := newAuthRequest(http.MethodPut, "/v1/reading/"+entry.ID, momToken, body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		var updated reading.Entry
		unmarshallObj(t, rec.Body.Bytes(), &updated)
		if updated.Minutes != 25 {
			t.Errorf("minutes = %d; want 25", updated.Minutes)
		}
		if updated.BookTitle != "Charlotte's Web" {
			t.Errorf("book_title = %s; want Charlotte's Web", updated.BookTitle)
		}
	})

	t.Run("destroy", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/reading/"+entry.ID, momToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Errorf("code = %v; want %v", rec.Code, http.StatusNoContent)
		}
	})
}
