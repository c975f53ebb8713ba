package session

import "crypto/subtle"

// Credentials verifies a presented password. Injecting the check keeps
// the concrete secret out of the manager's logic.
type Credentials interface {
	Verify(password string) bool
}

// SharedSecret is the single fixed admin password.
type SharedSecret string

// Verify compares in constant time.
func (s SharedSecret) Verify(password string) bool {
	return subtle.ConstantTimeCompare([]byte(s), []byte(password)) == 1
}
