package testutil

import (
	"crypto/sha512"
	"encoding/hex"
	"time"

	"github.com/WeirdIdea/OTUS-06/rpc"
)

// Sign returns the hex SHA-512 digest of payload, the token format used by
// the scoring API.
func Sign(payload string) string {
	sum := sha512.Sum512([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// UserToken mints a valid token for a regular caller.
func UserToken(account, login string) string {
	return Sign(account + login + rpc.Salt)
}

// AdminToken mints an admin token valid for the hour containing now.
func AdminToken(now time.Time) string {
	return Sign(now.Format("2006010215") + rpc.AdminSalt)
}

type envelopeSpec struct {
	account   string
	login     string
	token     string
	tokenSet  bool
	method    string
	arguments map[string]any
}

// EnvelopeOption customizes a generated request envelope.
type EnvelopeOption func(*envelopeSpec)

// WithAccount sets the envelope account.
func WithAccount(account string) EnvelopeOption {
	return func(s *envelopeSpec) { s.account = account }
}

// WithLogin sets the envelope login.
func WithLogin(login string) EnvelopeOption {
	return func(s *envelopeSpec) { s.login = login }
}

// WithToken overrides the auto-signed token.
func WithToken(token string) EnvelopeOption {
	return func(s *envelopeSpec) { s.token = token; s.tokenSet = true }
}

// WithMethod sets the called method.
func WithMethod(method string) EnvelopeOption {
	return func(s *envelopeSpec) { s.method = method }
}

// WithArguments sets the method arguments.
func WithArguments(args map[string]any) EnvelopeOption {
	return func(s *envelopeSpec) { s.arguments = args }
}

// AsAdmin switches the envelope to the admin login with a token minted for
// the current hour.
func AsAdmin() EnvelopeOption {
	return func(s *envelopeSpec) {
		s.login = rpc.AdminLogin
		s.token = AdminToken(time.Now())
		s.tokenSet = true
	}
}

// NewEnvelope builds a decoded request envelope. Defaults to a valid
// online_score call from the "horns&hoofs" account with empty arguments and
// a correctly signed token.
func NewEnvelope(options ...EnvelopeOption) map[string]any {
	s := &envelopeSpec{
		account:   "horns&hoofs",
		login:     "h&f",
		method:    "online_score",
		arguments: map[string]any{},
	}
	for _, opt := range options {
		opt(s)
	}
	if !s.tokenSet {
		s.token = UserToken(s.account, s.login)
	}

	return map[string]any{
		"account":   s.account,
		"login":     s.login,
		"token":     s.token,
		"method":    s.method,
		"arguments": s.arguments,
	}
}
