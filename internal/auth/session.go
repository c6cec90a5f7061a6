package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "session:"
	sessionTTL       = 24 * time.Hour
)

// ErrSessionNotFound is returned when updating a session that does not exist.
var ErrSessionNotFound = errors.New("session not found")

// SessionUser is the snapshot of the authenticated user captured at
// login/registration time. Only Handle is refreshed afterwards; the
// other fields are frozen for the life of the session.
type SessionUser struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Handle   *string `json:"handle"`
	IsAdmin  bool    `json:"is_admin"`
}

// Store manages sessions in Redis, keyed by an opaque cookie token.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStore returns a new session store.
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = sessionTTL
	}
	return &Store{rdb: rdb, ttl: ttl}
}

// TTL returns the configured session lifetime.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Create stores a snapshot under a new session ID and returns the ID.
func (s *Store) Create(ctx context.Context, user SessionUser) (string, error) {
	id, err := newSessionID()
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(user)
	if err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, sessionKeyPrefix+id, b, s.ttl).Err(); err != nil {
		return "", err
	}
	return id, nil
}

// Get returns the snapshot for a session ID. ok is false if the session
// is absent or expired. A hit refreshes the TTL (idle expiry).
func (s *Store) Get(ctx context.Context, id string) (SessionUser, bool, error) {
	key := sessionKeyPrefix + id
	b, err := s.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return SessionUser{}, false, nil
	}
	if err != nil {
		return SessionUser{}, false, err
	}
	var u SessionUser
	if err := json.Unmarshal(b, &u); err != nil {
		return SessionUser{}, false, err
	}
	_ = s.rdb.Expire(ctx, key, s.ttl).Err()
	return u, true, nil
}

// SetHandle merges a new handle into the session snapshot, leaving the
// other fields untouched. Like any authenticated access, the write
// restarts the idle TTL.
func (s *Store) SetHandle(ctx context.Context, id string, handle string) error {
	u, ok, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrSessionNotFound
	}
	u.Handle = &handle
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, sessionKeyPrefix+id, b, s.ttl).Err()
}

// Delete removes a session by ID. Subsequent Gets report absent.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, sessionKeyPrefix+id).Err()
}

func newSessionID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand: %w", err)
	}
	return hex.EncodeToString(b), nil
}
