// Package gate implements the authoring access gate: one shared static code
// that grants a 24-hour authoring capability. This is access convenience for
// a small shared deployment, not a security boundary.
package gate

import (
	"crypto/subtle"
	"time"
)

// GrantTTL is how long a verified code stays valid.
const GrantTTL = 24 * time.Hour

// Grant is the client-held capability: just an expiry timestamp.
type Grant struct {
	ExpiresAt time.Time `json:"expires_at"`
}

func (g Grant) Expired(now time.Time) bool {
	return !now.Before(g.ExpiresAt)
}

type AccessGate struct {
	adminCode string
	now       func() time.Time
}

func NewAccessGate(adminCode string) *AccessGate {
	return &AccessGate{adminCode: adminCode, now: time.Now}
}

// Verify compares the submitted code against the configured one and issues a
// grant on match. An unconfigured code never matches.
func (g *AccessGate) Verify(code string) (Grant, bool) {
	if g.adminCode == "" {
		return Grant{}, false
	}
	if subtle.ConstantTimeCompare([]byte(code), []byte(g.adminCode)) != 1 {
		return Grant{}, false
	}
	return Grant{ExpiresAt: g.now().Add(GrantTTL)}, true
}

// Check reports whether a previously issued grant is still usable.
func (g *AccessGate) Check(grant Grant) bool {
	return !grant.Expired(g.now())
}
