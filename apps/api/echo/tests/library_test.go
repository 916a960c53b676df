package tests

import (
	"net/http"
	"testing"

	"github.com/harmonyhs/harmony/core/library"
	"github.com/harmonyhs/harmony/core/user"
	testutil "github.com/harmonyhs/harmony/tests"
)

func Test_libraryApi_resources(t *testing.T) {
	resetDB(t)

	mom := testutil.CreateUser(t, usrRepo, "Mom", "mom", "mom@test.cd", "", []string{user.RoleParent}, true)
	momToken := getToken(t, mom)

	var res library.Resource

	t.Run("create", func(t *testing.T) {
		body := marshallObj(t, map[string]string{
			"title": "Khan Academy",
			"url":   "https://khanacademy.org",
			"kind":  "site",
		})
		req, rec := newAuthRequest(http.MethodPost, "/v1/library/resources", momToken, body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusCreated, rec.Body.String())
		}
		unmarshallObj(t, rec.Body.Bytes(), &res)
	})

	t.Run("invalid kind", func(t *testing.T) {
		body := marshallObj(t, map[string]string{"title": "X", "kind": "lol"})
		req, rec := newAuthRequest(http.MethodPost, "/v1/library/resources", momToken, body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("code = %v; want %v", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("filter by kind", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusOK, wantData: marshallList(t, res)}
		req, rec := newAuthRequest(http.MethodGet, "/v1/library/resources?kind=site", momToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("search", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusOK, wantData: marshallList(t, res)}
		req, rec := newAuthRequest(http.MethodGet, "/v1/library/resources?search=khan", momToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("destroy", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/library/resources/"+res.ID, momToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Errorf("code = %v; want %v", rec.Code, http.StatusNoContent)
		}
	})
}

func Test_libraryApi_booklist(t *testing.T) {
	resetDB(t)

	mom := testutil.CreateUser(t, usrRepo, "Mom", "mom", "mom@test.cd", "", []string{user.RoleParent}, true)
	momToken := getToken(t, mom)

	var entry library.BooklistEntry

	t.Run("create defaults to wishlist", func(t *testing.T) {
		body := marshallObj(t, map[string]string{"title": "The Hobbit", "author": "Tolkien"})
		req, rec := newAuthRequest(http.MethodPost, "/v1/library/booklist", momToken, body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusCreated, rec.Body.String())
		}
		unmarshallObj(t, rec.Body.Bytes(), &entry)
		if entry.Status != library.StatusWishlist {
			t.Errorf("status = %s; want %s", entry.Status, library.StatusWishlist)
		}
	})

	t.Run("move to reading", func(t *testing.T) {
		body := marshallObj(t, map[string]string{"status": "reading"})
		req, rec := newAuthRequest(http.MethodPut, "/v1/library/booklist/"+entry.ID, momToken, body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		var updated library.BooklistEntry
		unmarshallObj(t, rec.Body.Bytes(), &updated)
		if updated.Status != library.StatusReading {
			t.Errorf("status = %s; want %s", updated.Status, library.StatusReading)
		}
	})

	t.Run("filter by status", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/library/booklist?status=reading", momToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v", rec.Code, http.StatusOK)
		}
		var entries []library.BooklistEntry
		unmarshallObj(t, rec.Body.Bytes(), &entries)
		if len(entries) != 1 {
			t.Errorf("entries = %d; want 1", len(entries))
		}
	})

	t.Run("destroy", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/library/booklist/"+entry.ID, momToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Errorf("code = %v; want %v", rec.Code, http.StatusNoContent)
		}
	})
}
