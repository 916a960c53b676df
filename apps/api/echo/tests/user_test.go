package tests

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/harmonyhs/harmony/core/user"
	testutil "github.com/harmonyhs/harmony/tests"
)

func Test_userApi_login(t *testing.T) {
	resetDB(t)

	testutil.CreateUser(t, usrRepo, "Jane", "jane", "jane@test.cd", "LePassword", []string{user.RoleParent}, true)
	testutil.CreateUser(t, usrRepo, "Sleepy", "sleepy", "sleepy@test.cd", "LePassword", []string{user.RoleParent}, false)

	authFailed := marshallObj(t, httpErr{Error: "authentication failed"})

	tests := []httpTest{
		{
			name: "empty payload", body: []byte("{}"), wantCode: http.StatusBadRequest,
		},
		{
			name: "unknown user", body: marshallObj(t, map[string]string{"username": "lol", "password": "lol"}),
			wantCode: http.StatusBadRequest, wantData: authFailed,
		},
		{
			name: "wrong password", body: marshallObj(t, map[string]string{"username": "jane", "password": "lol"}),
			wantCode: http.StatusBadRequest, wantData: authFailed,
		},
		{
			name: "deactivated account", body: marshallObj(t, map[string]string{"username": "sleepy", "password": "LePassword"}),
			wantCode: http.StatusForbidden, wantData: marshallObj(t, httpErr{Error: "account deactivated"}),
		},
		{
			name: "login with username", body: marshallObj(t, map[string]string{"username": "jane", "password": "LePassword"}),
			wantCode: http.StatusOK,
		},
		{
			name: "login with email", body: marshallObj(t, map[string]string{"username": "jane@test.cd", "password": "LePassword"}),
			wantCode: http.StatusOK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/users/login", tt.body)
			app.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
			}
			if tt.wantData != nil {
				checkCodeAndData(t, tt, rec)
			}
		})
	}
}

func Test_userApi_userQuery(t *testing.T) {
	resetDB(t)

	path := func(search string, roles ...string) string {
		v := make(url.Values)
		if search != "" {
			v.Add("search", search)
		}
		for _, r := range roles {
			v.Add("role", r)
		}
		return "/v1/users?" + v.Encode()
	}

	mom := testutil.CreateUser(t, usrRepo, "Mom", "mom", "mom@test.cd", "", []string{user.RoleParent}, true)
	admin := testutil.CreateUser(t, usrRepo, "Admin", "admin", "admin@test.cd", "", []string{user.RoleAdmin}, true)

	adminToken := getToken(t, admin)
	empty := marshallList(t, []interface{}{}...)

	tests := []httpTest{
		{name: "Auth required", path: "/v1/users", wantCode: http.StatusUnauthorized, wantData: marshallObj(t, errMissingToken)},
		{
			name: "Admin required", path: "/v1/users", token: getToken(t, mom), wantCode: http.StatusForbidden,
			wantData: marshallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "Get all", path: "/v1/users", token: adminToken, wantCode: http.StatusOK,
			wantData: marshallList(t, mom, admin),
		},
		{name: "search (unknown)", path: path("lol"), token: adminToken, wantCode: http.StatusOK, wantData: empty},
		{
			name: "search=mom", path: path("mom"), token: adminToken, wantCode: http.StatusOK,
			wantData: marshallList(t, mom),
		},
		{name: "role (unknown)", path: path("", "lol"), token: adminToken, wantCode: http.StatusOK, wantData: empty},
		{
			name: "role=admin:", path: path("", user.RoleAdmin), token: adminToken, wantCode: http.StatusOK,
			wantData: marshallList(t, admin),
		},
		{
			name: "role=parent:", path: path("", user.RoleParent), token: adminToken, wantCode: http.StatusOK,
			wantData: marshallList(t, mom),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_userApi_userRetrieveUpdate(t *testing.T) {
	resetDB(t)

	mom := testutil.CreateUser(t, usrRepo, "Mom", "mom", "mom@test.cd", "", []string{user.RoleParent}, true)
	other := testutil.CreateUser(t, usrRepo, "Other", "other", "other@test.cd", "", []string{user.RoleParent}, true)
	admin := testutil.CreateUser(t, usrRepo, "Admin", "admin", "admin@test.cd", "", []string{user.RoleAdmin}, true)

	momToken := getToken(t, mom)
	adminToken := getToken(t, admin)

	t.Run("retrieve own account", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusOK, wantData: marshallObj(t, mom)}
		req, rec := newAuthRequest(http.MethodGet, "/v1/users/"+mom.ID, momToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("cannot retrieve another account", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/users/"+other.ID, momToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("code = %v; want %v", rec.Code, http.StatusNotFound)
		}
	})

	t.Run("admin can retrieve any account", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusOK, wantData: marshallObj(t, other)}
		req, rec := newAuthRequest(http.MethodGet, "/v1/users/"+other.ID, adminToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("non-admin cannot change roles", func(t *testing.T) {
		body := marshallObj(t, map[string]interface{}{"roles": user.AdminRoles})
		req, rec := newAuthRequest(http.MethodPut, "/v1/users/"+mom.ID, momToken, body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Errorf("code = %v; want %v", rec.Code, http.StatusForbidden)
		}
	})

	t.Run("update own name", func(t *testing.T) {
		body := marshallObj(t, map[string]string{"name": "Mommy"})
		req, rec := newAuthRequest(http.MethodPut, "/v1/users/"+mom.ID, momToken, body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}
	})

	t.Run("admin cannot delete themselves", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/users/"+admin.ID, adminToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Errorf("code = %v; want %v", rec.Code, http.StatusForbidden)
		}
	})

	t.Run("admin deletes another account", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/users/"+other.ID, adminToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Errorf("code = %v; want %v", rec.Code, http.StatusNoContent)
		}
	})
}
