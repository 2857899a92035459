package memory

import (
	"errors"
	"time"

	"knowledge-chatbot-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionRepository keeps per-browser-session state in memory. Entries expire
// on the configured TTL, which bounds the lifetime of abandoned sessions; the
// remote vector store carries its own 1-day expiry independently.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository(ttl, purgeInterval time.Duration) *SessionRepository {
	return &SessionRepository{
		cache: cache.New(ttl, purgeInterval),
	}
}

// Save stores the session and refreshes its TTL. Every mutation of session
// state goes through Save so activity keeps the session alive.
func (r *SessionRepository) Save(session *store.Session) {
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*store.Session, error) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Session), nil
	}
	return nil, ErrSessionNotFound
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
