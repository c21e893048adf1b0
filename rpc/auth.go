package rpc

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"time"
)

// Salts mixed into the authentication digests. Regular callers sign their
// account and login; the administrator signs the current hour, so admin
// tokens expire when the wall-clock hour rolls over.
const (
	Salt      = "Otus"
	AdminSalt = "42"

	// adminHourLayout renders the admin digest timestamp as YYYYMMDDHH.
	adminHourLayout = "2006010215"
)

func digest(payload string) string {
	sum := sha512.Sum512([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// CheckAuth verifies the envelope token against the expected digest for the
// caller. The comparison is constant-time so token probing leaks nothing
// about matching prefixes.
func CheckAuth(r *MethodRequest, now time.Time) bool {
	var payload string
	if r.IsAdmin() {
		payload = now.Format(adminHourLayout) + AdminSalt
	} else {
		payload = r.Account() + r.Login() + Salt
	}
	expected := digest(payload)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(r.Token())) == 1
}
