// Package session provides the Redis-backed store that binds an authenticated
// caller to a user identity. The store is injected wherever sessions are
// needed; nothing session-related lives in package globals.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// TTL is how long a session hash lives without a refresh.
const TTL = 24 * time.Hour

// Session is the server-trusted state for one logged-in caller.
type Session struct {
	ID       string
	UserID   string
	Email    string
	Username string
}

// Store persists sessions in Redis hashes keyed by user id.
type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func key(userID string) string {
	return "user:session:" + userID
}

// Create binds a fresh session id to the user and returns it.
func (s *Store) Create(ctx context.Context, userID, email, username string) (*Session, error) {
	sess := &Session{
		ID:       uuid.NewString(),
		UserID:   userID,
		Email:    email,
		Username: username,
	}
	fields := map[string]any{
		"sid":        sess.ID,
		"user_id":    userID,
		"email":      email,
		"username":   username,
		"created_at": time.Now().UTC().Format(time.RFC3339Nano),
	}
	k := key(userID)
	pipe := s.rdb.Pipeline()
	pipe.HSet(ctx, k, fields)
	pipe.Expire(ctx, k, TTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	return sess, nil
}

// Get returns the live session for userID, or nil if none exists.
func (s *Store) Get(ctx context.Context, userID string) (*Session, error) {
	data, err := s.rdb.HGetAll(ctx, key(userID)).Result()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	return &Session{
		ID:       data["sid"],
		UserID:   data["user_id"],
		Email:    data["email"],
		Username: data["username"],
	}, nil
}

// Rotate replaces the session id, invalidating tokens minted for the old one.
func (s *Store) Rotate(ctx context.Context, userID string) (string, error) {
	sid := uuid.NewString()
	k := key(userID)
	pipe := s.rdb.Pipeline()
	pipe.HSet(ctx, k, map[string]any{
		"sid":        sid,
		"updated_at": time.Now().UTC().Format(time.RFC3339Nano),
	})
	pipe.Expire(ctx, k, TTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", err
	}
	return sid, nil
}

// Delete clears the binding; subsequent Gets return nil.
func (s *Store) Delete(ctx context.Context, userID string) error {
	return s.rdb.Del(ctx, key(userID)).Err()
}
