package session

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// Store keeps live session contexts keyed by user id. Entries expire after
// the configured idle TTL; an expired entry is indistinguishable from one
// that never existed, which is exactly how state loss is surfaced to the
// state machine.
type Store struct {
	cache *cache.Cache
	ttl   time.Duration
}

// NewStore creates a session store whose entries expire after ttl.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		cache: cache.New(ttl, 10*time.Minute),
		ttl:   ttl,
	}
}

// Get returns the context for userID, if present and unexpired.
func (s *Store) Get(userID string) (*Context, bool) {
	if x, found := s.cache.Get(userID); found {
		return x.(*Context), true
	}
	return nil, false
}

// GetOrCreate returns the existing context for userID or creates an idle one.
func (s *Store) GetOrCreate(userID string) *Context {
	if sc, found := s.Get(userID); found {
		return sc
	}
	sc := &Context{UserID: userID, Flow: FlowIdle}
	s.Save(sc)
	return sc
}

// Save stores the context and refreshes its expiry.
func (s *Store) Save(sc *Context) {
	s.cache.Set(sc.UserID, sc, cache.DefaultExpiration)
}

// Delete removes the context for userID.
func (s *Store) Delete(userID string) {
	s.cache.Delete(userID)
}
