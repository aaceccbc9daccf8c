package services

import (
	"time"

	"github.com/dmitrijs2005/affiliatepro/internal/auth"
)

// AdminGate decides whether a presented token unlocks the admin commands.
// It guards against accidental use only: anyone with write access to the
// local database can change any record anyway.
type AdminGate interface {
	Enabled() bool
	Issue(subject string) (string, error)
	Verify(token string) (string, error)
}

type adminGate struct {
	secret []byte
	ttl    time.Duration
}

// NewAdminGate builds a gate over the HMAC secret. An empty secret disables
// admin access entirely.
func NewAdminGate(secret string, ttl time.Duration) AdminGate {
	return &adminGate{secret: []byte(secret), ttl: ttl}
}

func (g *adminGate) Enabled() bool { return len(g.secret) > 0 }

func (g *adminGate) Issue(subject string) (string, error) {
	return auth.GenerateAdminToken(subject, g.secret, g.ttl)
}

// Verify returns the token subject when it is a valid admin token.
func (g *adminGate) Verify(token string) (string, error) {
	return auth.VerifyAdminToken(token, g.secret)
}
