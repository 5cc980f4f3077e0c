// internal/infrastructure/database/redis/session_store.go
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ogtriplek/tyre-storefront/internal/domain/storefront"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	sessionKeyPrefix = "storefront:session:"
	maxTxRetries     = 5
)

// SessionStore persists page sessions as JSON with a sliding TTL.
// The added-to-cart flag lives only for the duration of a request.
type SessionStore struct {
	client  *redis.Client
	catalog storefront.Catalog
	ttl     time.Duration
	log     *logrus.Logger
	opts    []storefront.Option
}

// NewSessionStore creates a redis-backed session store
func NewSessionStore(client *redis.Client, c storefront.Catalog, ttl time.Duration, log *logrus.Logger, opts ...storefront.Option) *SessionStore {
	return &SessionStore{
		client:  client,
		catalog: c,
		ttl:     ttl,
		log:     log,
		opts:    opts,
	}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func (s *SessionStore) load(ctx context.Context, tx *redis.Tx, key string) (*storefront.Session, error) {
	data, err := tx.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return storefront.NewSession(s.catalog, s.opts...), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var state storefront.SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		// Unreadable state starts a fresh session
		s.log.WithError(err).WithField("key", key).Warn("discarding unreadable session state")
		return storefront.NewSession(s.catalog, s.opts...), nil
	}
	return storefront.Restore(s.catalog, state, s.opts...), nil
}

// Update implements storefront.Store. The read-modify-write runs under
// WATCH and is retried when another request changes the session first.
func (s *SessionStore) Update(ctx context.Context, id string, fn func(*storefront.Session) error) error {
	key := sessionKey(id)

	txf := func(tx *redis.Tx) error {
		session, err := s.load(ctx, tx, key)
		if err != nil {
			return err
		}
		defer session.Close()

		if err := fn(session); err != nil {
			return err
		}

		data, err := json.Marshal(session.State())
		if err != nil {
			return fmt.Errorf("failed to encode session: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.ttl)
			return nil
		})
		return err
	}

	for i := 0; i < maxTxRetries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			s.log.WithFields(logrus.Fields{"session_id": id, "attempt": i + 1}).Debug("session changed concurrently, retrying")
			continue
		}
		return err
	}
	return fmt.Errorf("session %s: too many concurrent updates", id)
}

// Delete implements storefront.Store
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	n, err := s.client.Del(ctx, sessionKey(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if n == 0 {
		return storefront.ErrSessionNotFound
	}
	return nil
}
