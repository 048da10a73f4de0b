// Package auth gates mutating admin operations behind a shared secret.
package auth

// Gate decides whether a request-supplied credential is allowed to perform
// admin operations. Implementations can later be swapped for a real identity
// provider without touching route logic.
type Gate interface {
	// Admit reports whether the credential grants admin access.
	Admit(credential string) bool
}

// SecretGate admits a credential if and only if it is non-empty and matches
// the configured secret exactly.
type SecretGate struct {
	secret string
}

// NewSecretGate creates a SecretGate holding the configured admin secret.
func NewSecretGate(secret string) *SecretGate {
	return &SecretGate{secret: secret}
}

// Admit implements Gate.
func (g *SecretGate) Admit(credential string) bool {
	return credential != "" && credential == g.secret
}
