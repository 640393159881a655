// Package session holds the single process-wide authorization record.
// State lives in memory only and is lost on restart; that is the
// intended shape for this single-operator deployment.
package session

import (
	"errors"
	"sync"
	"time"
)

// ErrNoSession is returned when publishing is attempted before any
// successful authorization.
var ErrNoSession = errors.New("no tokens, visit /login first")

// Record holds the credentials and ids obtained by one successful
// OAuth callback. PageAccessToken and IGUserID are set together or not
// at all.
type Record struct {
	UserAccessToken string
	PageAccessToken string
	PageID          string
	IGUserID        string
	ObtainedAt      time.Time
}

// Publishable reports whether the record carries what the publish
// pipeline needs: a page access token and a linked IG user id.
func (r Record) Publishable() bool {
	return r.PageAccessToken != "" && r.IGUserID != ""
}

// Store keeps the current session record. Callbacks replace it
// wholesale; there is no merge and no history of prior sessions.
type Store struct {
	mu     sync.RWMutex
	record Record
	set    bool
}

func NewStore() *Store {
	return &Store{}
}

// Replace swaps in a new record atomically, discarding the previous one.
func (s *Store) Replace(r Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = r
	s.set = true
}

// Snapshot returns a copy of the current record and whether any
// authorization has completed since process start.
func (s *Store) Snapshot() (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.record, s.set
}
