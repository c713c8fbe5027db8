// Package auth implements the admin password check and in-memory session
// tokens for the HTTP API.
package auth

import (
	"crypto/subtle"
	"errors"
	"sync"
	"time"

	"github.com/dchest/uniuri"
)

const (
	tokenLen   = 32
	sessionTTL = 24 * time.Hour
)

// ErrInvalidPassword is returned by Login on a wrong password
var ErrInvalidPassword = errors.New("invalid password")

// Store issues and validates session tokens against the configured admin
// password. Tokens live in memory only: restarting the process logs
// everyone out.
type Store struct {
	mu       sync.Mutex
	password string
	ttl      time.Duration
	sessions map[string]time.Time // token -> expiry
	now      func() time.Time
}

// NewStore creates a session store guarding access with the given password
func NewStore(password string) *Store {
	return &Store{
		password: password,
		ttl:      sessionTTL,
		sessions: make(map[string]time.Time),
		now:      time.Now,
	}
}

// Login checks the password and, on success, issues a fresh session token
func (s *Store) Login(password string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) != 1 {
		return "", ErrInvalidPassword
	}

	token := uniuri.NewLen(tokenLen)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	s.sessions[token] = s.now().Add(s.ttl)
	return token, nil
}

// Validate reports whether the token belongs to a live session
func (s *Store) Validate(token string) bool {
	if token == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	expiry, ok := s.sessions[token]
	if !ok {
		return false
	}
	if s.now().After(expiry) {
		delete(s.sessions, token)
		return false
	}
	return true
}

// Revoke invalidates a token immediately
func (s *Store) Revoke(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

// sweepLocked drops expired sessions. Caller must hold s.mu.
func (s *Store) sweepLocked() {
	now := s.now()
	for token, expiry := range s.sessions {
		if now.After(expiry) {
			delete(s.sessions, token)
		}
	}
}
