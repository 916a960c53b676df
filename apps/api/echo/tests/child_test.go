package tests

import (
	"net/http"
	"testing"

	"github.com/harmonyhs/harmony/core/child"
	"github.com/harmonyhs/harmony/core/user"
	testutil "github.com/harmonyhs/harmony/tests"
)

func Test_childApi(t *testing.T) {
	resetDB(t)

	mom := testutil.CreateUser(t, usrRepo, "Mom", "mom", "mom@test.cd", "", []string{user.RoleParent}, true)
	other := testutil.CreateUser(t, usrRepo, "Other", "other", "other@test.cd", "", []string{user.RoleParent}, true)

	momToken := getToken(t, mom)
	otherToken := getToken(t, other)

	var kid child.Child

	t.Run("auth required", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusUnauthorized, wantData: marshallObj(t, errMissingToken)}
		req, rec := newRequest(http.MethodGet, "/v1/children")
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("create requires a name", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/children", momToken, []byte("{}"))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("code = %v; want %v", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("create", func(t *testing.T) {
		body := marshallObj(t, map[string]string{"name": "Ada", "birthdate": "2018-03-14", "grade_level": "2nd"})
		req, rec := newAuthRequest(http.MethodPost, "/v1/children", momToken, body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusCreated, rec.Body.String())
		}
		unmarshallObj(t, rec.Body.Bytes(), &kid)
		if kid.ID == "" {
			t.Error("expected an ID to be assigned")
		}
	})

	t.Run("list is scoped to the account", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusOK, wantData: marshallList(t, []interface{}{}...)}
		req, rec := newAuthRequest(http.MethodGet, "/v1/children", otherToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("another account cannot retrieve", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/children/"+kid.ID, otherToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("code = %v; want %v", rec.Code, http.StatusNotFound)
		}
	})

	t.Run("update", func(t *testing.T) {
		body := marshallObj(t, map[string]string{"grade_level": "3rd"})
		req, rec := newAuthRequest(http.MethodPut, "/v1/children/"+kid.ID, momToken, body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}

		var updated child.Child
		unmarshallObj(t, rec.Body.Bytes(), &updated)
		if updated.GradeLevel != "3rd" {
			t.Errorf("grade_level = %s; want 3rd", updated.GradeLevel)
		}
		if updated.Name != "Ada" {
			t.Errorf("name = %s; want Ada", updated.Name)
		}
	})

	t.Run("archive", func(t *testing.T) {
		archived := true
		body := marshallObj(t, map[string]interface{}{"archived": &archived})
		req, rec := newAuthRequest(http.MethodPut, "/v1/children/"+kid.ID, momToken, body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v", rec.Code, http.StatusOK)
		}

		var updated child.Child
		unmarshallObj(t, rec.Body.Bytes(), &updated)
		if !updated.Archived {
			t.Error("expected child to be archived")
		}
	})

	t.Run("destroy", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/children/"+kid.ID, momToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Errorf("code = %v; want %v", rec.Code, http.StatusNoContent)
		}

		req, rec = newAuthRequest(http.MethodGet, "/v1/children/"+kid.ID, momToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("code = %v; want %v", rec.Code, http.StatusNotFound)
		}
	})
}
