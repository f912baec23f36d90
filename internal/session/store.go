package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// ErrSessionNotFound is returned when the session expired or was destroyed
var ErrSessionNotFound = errors.New("session not found")

// Store keeps identities in Redis under session:<id> with a sliding TTL
type Store struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{redis: client, ttl: ttl}
}

// NewRedisClient parses a redis:// URL and verifies the connection
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(err, "invalid redis url")
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(err, "failed to connect to redis")
	}
	return client, nil
}

// TTL returns the session lifetime
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Create assigns a new session id to identity and persists it
func (s *Store) Create(ctx context.Context, identity Identity) (Identity, error) {
	identity.SessionID = uuid.New().String()
	data, err := json.Marshal(identity)
	if err != nil {
		return Identity{}, errors.Wrap(err, "failed to marshal session")
	}
	if err := s.redis.Set(ctx, keyPrefix+identity.SessionID, data, s.ttl).Err(); err != nil {
		return Identity{}, errors.Wrap(err, "failed to store session")
	}
	return identity, nil
}

// Get loads the identity for sessionID
func (s *Store) Get(ctx context.Context, sessionID string) (Identity, error) {
	data, err := s.redis.Get(ctx, keyPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Identity{}, ErrSessionNotFound
		}
		return Identity{}, errors.Wrap(err, "failed to get session")
	}

	var identity Identity
	if err := json.Unmarshal(data, &identity); err != nil {
		return Identity{}, errors.Wrap(err, "failed to unmarshal session")
	}
	return identity, nil
}

// Touch extends the session lifetime
func (s *Store) Touch(ctx context.Context, sessionID string) error {
	ok, err := s.redis.Expire(ctx, keyPrefix+sessionID, s.ttl).Result()
	if err != nil {
		return errors.Wrap(err, "failed to extend session")
	}
	if !ok {
		return ErrSessionNotFound
	}
	return nil
}

// Destroy removes the session. Destroying a missing session is not an error.
func (s *Store) Destroy(ctx context.Context, sessionID string) error {
	if err := s.redis.Del(ctx, keyPrefix+sessionID).Err(); err != nil {
		return errors.Wrap(err, "failed to delete session")
	}
	return nil
}
