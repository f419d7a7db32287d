package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Keys always carry at least this much TTL so a session created a breath
// away from its expiry is still observable until the sweep.
const minRedisTTL = time.Second

// RedisStore is a production [Store] backed by Redis. Expiration sweeping is
// delegated to Redis key TTLs; Get additionally double-checks the decoded
// expiry so a clock-skewed key never resurrects an expired session.
// Linearizability of the four operations falls out of Redis executing
// commands one at a time.
type RedisStore struct {
	redis  redis.UniversalClient
	prefix string
}

// NewRedisStore creates a Redis-backed store. prefix namespaces the session
// keys; empty means "wa".
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "wa"
	}
	return &RedisStore{redis: client, prefix: prefix}
}

func (s *RedisStore) key(id string) string {
	return s.prefix + ":" + id
}

func (s *RedisStore) Put(ctx context.Context, sess *Session) error {
	data, err := Encode(sess)
	if err != nil {
		return err
	}

	ok, err := s.redis.SetNX(ctx, s.key(sess.ID), data, s.ttl(sess)).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if !ok {
		return ErrDuplicateID
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := s.redis.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	sess, err := Decode(data)
	if err != nil {
		return nil, err
	}
	sess.ID = id

	if sess.Expired(time.Now()) {
		if err := s.Remove(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrNotFound
	}

	return sess, nil
}

func (s *RedisStore) Update(ctx context.Context, sess *Session) error {
	data, err := Encode(sess)
	if err != nil {
		return err
	}

	// XX: only overwrite a key that still exists; a concurrent removal or
	// expiry turns the update into the contract's silent lost update.
	if _, err := s.redis.SetXX(ctx, s.key(sess.ID), data, s.ttl(sess)).Result(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *RedisStore) Remove(ctx context.Context, id string) error {
	if err := s.redis.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *RedisStore) ttl(sess *Session) time.Duration {
	ttl := time.Until(time.Unix(sess.ExpiresAt, 0))
	if ttl < minRedisTTL {
		ttl = minRedisTTL
	}
	return ttl
}
