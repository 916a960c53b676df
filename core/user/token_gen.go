package user

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base32"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/harmonyhs/harmony/core"
)

var (
	salt    = []byte("harmonyhs.harmony.core.user.token_gen")
	NowFunc = time.Now // mockable

	// errors
	errInvalidToken = errors.New("invalid token")
	errTokenExpired = errors.New("token expired")
)

// EncodeUID base64 encodes given User ID
func EncodeUID(usr User) string {
	return base64.RawURLEncoding.EncodeToString([]byte(usr.ID))
}

// decodeUID base64 decodes given UID
func decodeUID(uid string) (string, error) {
	idBytes, err := base64.RawURLEncoding.DecodeString(uid)
	if err != nil {
		return "", err
	}
	return string(idBytes), nil
}

// MakeToken generates a password reset token for a given User.
// The token embeds its own timestamp and is invalidated by any change
// to the user's password hash or last login.
func MakeToken(usr User, conf *core.Config) (string, error) {
	return makeTokenWithTimestamp(usr, numDaysSince2001(NowFunc()), conf)
}

// verifyToken checks that a password reset token for a given User is valid.
func verifyToken(usr User, token string, conf *core.Config) error {
	if token == "" {
		return errInvalidToken
	}

	parts := strings.SplitN(token, "-", 2)
	if len(parts) < 2 {
		return errInvalidToken
	}

	data, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(parts[0])
	if err != nil {
		return errInvalidToken
	}
	ts, err := strconv.Atoi(string(data))
	if err != nil {
		return errInvalidToken
	}

	// check that token has not been tampered with
	newToken, err := makeTokenWithTimestamp(usr, ts, conf)
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare([]byte(newToken), []byte(token)) == 0 {
		return errInvalidToken
	}

	// check expiry
	maxAge := int(conf.PasswordResetTimeoutDelta.Hours() / 24)
	if numDaysSince2001(NowFunc())-ts > maxAge {
		return errTokenExpired
	}
	return nil
}

func makeTokenWithTimestamp(usr User, ts int, conf *core.Config) (string, error) {
	tsB32 := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString([]byte(strconv.Itoa(ts)))

	mac := hmac.New(sha256.New, append(salt, []byte(conf.SecretKey)...))
	if _, err := mac.Write([]byte(tokenHashValue(usr, ts))); err != nil {
		return "", err
	}
	sig := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
	return fmt.Sprintf("%s-%s", tsB32, sig), nil
}

// tokenHashValue ties the token to state that changes on every
// password reset or login, making each token single-use in practice.
func tokenHashValue(usr User, ts int) string {
	return usr.ID + string(usr.PasswordHash) + usr.LastLogin.UTC().String() + strconv.Itoa(ts)
}

func numDaysSince2001(t time.Time) int {
	ref := time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)
	return int(t.UTC().Sub(ref).Hours() / 24)
}
