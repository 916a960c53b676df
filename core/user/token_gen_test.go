package user

import (
	"testing"
	"time"

	"github.com/harmonyhs/harmony/core"
)

func testUser(t *testing.T) User {
	usr := User{
		ID:        "5c2c59b1-2bfa-47ce-96ca-9d7f81102ab2",
		Name:      "Jane Doe",
		Username:  "janedoe",
		Email:     "jane@test.hs",
		LastLogin: time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC),
	}
	if err := usr.SetPassword("LePassword#123"); err != nil {
		t.Fatalf("SetPassword(): %v", err)
	}
	return usr
}

func Test_MakeToken_roundTrip(t *testing.T) {
	conf := core.NewTestConfig()
	usr := testUser(t)

	token, err := MakeToken(usr, conf)
	if err != nil {
		t.Fatalf("MakeToken(): %v", err)
	}
	if err = verifyToken(usr, token, conf); err != nil {
		t.Errorf("verifyToken() = %v; want nil", err)
	}
}

func Test_verifyToken_rejectsGarbage(t *testing.T) {
	conf := core.NewTestConfig()
	usr := testUser(t)

	for _, token := range []string{"", "lol", "a-b", "AAAA-nope"} {
		if err := verifyToken(usr, token, conf); err != errInvalidToken {
			t.Errorf("verifyToken(%q) = %v; want errInvalidToken", token, err)
		}
	}
}

func Test_verifyToken_invalidatedByStateChange(t *testing.T) {
	conf := core.NewTestConfig()
	usr := testUser(t)

	token, err := MakeToken(usr, conf)
	if err != nil {
		t.Fatalf("MakeToken(): %v", err)
	}

	// password change invalidates
	changed := usr
	if err = changed.SetPassword("NewPassword#456"); err != nil {
		t.Fatalf("SetPassword(): %v", err)
	}
	if err = verifyToken(changed, token, conf); err != errInvalidToken {
		t.Errorf("verifyToken() after password change = %v; want errInvalidToken", err)
	}

	// login invalidates
	loggedIn := usr
	loggedIn.LastLogin = loggedIn.LastLogin.Add(time.Hour)
	if err = verifyToken(loggedIn, token, conf); err != errInvalidToken {
		t.Errorf("verifyToken() after login = %v; want errInvalidToken", err)
	}
}

func Test_verifyToken_expiry(t *testing.T) {
	conf := core.NewTestConfig()
	usr := testUser(t)

	defer func() { NowFunc = time.Now }()

	token, err := MakeToken(usr, conf)
	if err != nil {
		t.Fatalf("MakeToken(): %v", err)
	}

	NowFunc = func() time.Time {
		return time.Now().Add(conf.PasswordResetTimeoutDelta + 48*time.Hour)
	}
	if err = verifyToken(usr, token, conf); err != errTokenExpired {
		t.Errorf("verifyToken() past timeout = %v; want errTokenExpired", err)
	}
}

func Test_EncodeUID_roundTrip(t *testing.T) {
	usr := testUser(t)
	uid, err := decodeUID(EncodeUID(usr))
	if err != nil {
		t.Fatalf("decodeUID(): %v", err)
	}
	if uid != usr.ID {
		t.Errorf("decodeUID() = %q; want %q", uid, usr.ID)
	}
}
