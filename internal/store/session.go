package store

import (
	"encoding/json"
	"log"
	"sync"

	"dental-clinic-server/internal/models"
	"dental-clinic-server/internal/storage"
)

// SessionStore tracks at most one authenticated identity for this process.
// Two states: anonymous (current == nil) and authenticated. A successful
// login persists the identity so a restart resumes the session; logout clears
// both memory and the persisted entry. There is no expiry and no lockout.
type SessionStore struct {
	mu      sync.RWMutex
	storage storage.Store
	users   []models.User
	current *models.User
}

// NewSessionStore hydrates the fixed identity list (seeding it on first use)
// and resumes a persisted session when one exists.
func NewSessionStore(st storage.Store) (*SessionStore, error) {
	users, err := hydrate(st, KeyUsers, demoUsers)
	if err != nil {
		return nil, err
	}

	s := &SessionStore{storage: st, users: users}

	raw, err := st.Read(KeySession)
	if err == nil {
		var user models.User
		if err := json.Unmarshal(raw, &user); err != nil {
			log.Printf("store: malformed %s entry, starting anonymous: %v", KeySession, err)
			if err := st.Delete(KeySession); err != nil {
				log.Printf("store: failed to clear %s entry: %v", KeySession, err)
			}
		} else {
			s.current = &user
		}
	} else if err != storage.ErrKeyNotFound {
		return nil, err
	}

	return s, nil
}

// Login looks up an exact (email, password) match in the identity list. On
// success the identity becomes current and is persisted; on failure the
// session is untouched and false is returned. Plain equality, no hashing:
// the seeded credential list is the whole authentication scheme.
func (s *SessionStore) Login(email, password string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email && u.CheckPassword(password) {
			user := u
			s.current = &user
			s.persistSession()
			return true
		}
	}
	return false
}

// Logout clears the current identity and removes the persisted session entry.
// A no-op when already anonymous.
func (s *SessionStore) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	if err := s.storage.Delete(KeySession); err != nil {
		log.Printf("store: failed to remove %s entry: %v", KeySession, err)
	}
}

// Current returns the authenticated identity, if any.
func (s *SessionStore) Current() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return models.User{}, false
	}
	return *s.current, true
}

// IsAdmin reports whether the current identity has the Admin role.
func (s *SessionStore) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil && s.current.Role == models.RoleAdmin
}

// IsPatient reports whether the current identity has the Patient role.
func (s *SessionStore) IsPatient() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil && s.current.Role == models.RolePatient
}

// UserByID looks up an identity in the fixed list, for token validation.
func (s *SessionStore) UserByID(id string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

// persistSession writes the current identity; callers hold the lock. Login
// stays a boolean-returning operation, so a persistence failure is only
// logged: the in-memory session is already established.
func (s *SessionStore) persistSession() {
	raw, err := json.Marshal(s.current)
	if err != nil {
		log.Printf("store: failed to encode session: %v", err)
		return
	}
	if err := s.storage.Write(KeySession, raw); err != nil {
		log.Printf("store: failed to persist session: %v", err)
	}
}
