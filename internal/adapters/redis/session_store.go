// Package redis provides Redis-based adapters for dashboard sessions and chat transcripts.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/techmidia/painel/internal/domain/auth"
	"github.com/techmidia/painel/internal/ports"
)

const (
	defaultKeyPrefix = "painel:"
	sessionSegment   = "session:"
	scanBatch        = 200
)

var (
	_ ports.SessionStore = (*SessionStore)(nil)
	_ ports.SessionAdmin = (*SessionStore)(nil)
)

// ErrNotFound is what Get returns for unknown, expired or blank ids.
var ErrNotFound = ports.ErrSessionNotFound

var (
	errEmptyID = errors.New("session ID cannot be empty")
	errExpired = errors.New("session is expired")
)

// SessionStore keeps sessions as JSON strings under prefix+"session:"+id.
// Each key expires with its session.
type SessionStore struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

func NewSessionStore(client redis.UniversalClient) *SessionStore {
	return NewSessionStoreWithPrefix(client, defaultKeyPrefix)
}

// NewSessionStoreWithPrefix namespaces keys under prefix, so several
// deployments can share one Redis.
func NewSessionStoreWithPrefix(client redis.UniversalClient, prefix string) *SessionStore {
	return &SessionStore{client: client, prefix: prefix + sessionSegment, now: time.Now}
}

func (s *SessionStore) key(id string) string { return s.prefix + id }

// Save writes sess with a TTL of whatever remains until ExpiresAt.
func (s *SessionStore) Save(ctx context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errEmptyID
	}
	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return errExpired
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", sess.ID, err)
	}
	if err := s.client.Set(ctx, s.key(sess.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Get loads a session. One found past its expiry is removed and reported missing.
func (s *SessionStore) Get(ctx context.Context, id string) (domainauth.Session, error) {
	var sess domainauth.Session
	if id == "" {
		return sess, ErrNotFound
	}

	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return sess, ErrNotFound
	case err != nil:
		return sess, fmt.Errorf("redis get: %w", err)
	}
	if err := json.Unmarshal(data, &sess); err != nil {
		return domainauth.Session{}, fmt.Errorf("unmarshal session %s: %w", id, err)
	}

	if !sess.Expired(s.now()) {
		return sess, nil
	}
	if err := s.Delete(ctx, id); err != nil {
		return domainauth.Session{}, fmt.Errorf("drop expired session: %w", err)
	}
	return domainauth.Session{}, ErrNotFound
}

// Delete is a no-op for a blank or unknown id.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.client.Del(ctx, s.key(id)).Err()
}

// Count returns the number of live sessions.
func (s *SessionStore) Count(ctx context.Context) (int, error) {
	n := 0
	err := s.scan(ctx, func(keys []string) error {
		n += len(keys)
		return nil
	})
	return n, err
}

// Purge deletes every session and returns how many were removed.
// Keys are deleted one by one so cluster slots never have to match.
func (s *SessionStore) Purge(ctx context.Context) (int, error) {
	n := 0
	err := s.scan(ctx, func(keys []string) error {
		cmds, err := s.client.Pipelined(ctx, func(p redis.Pipeliner) error {
			for _, k := range keys {
				p.Del(ctx, k)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("redis del: %w", err)
		}
		for _, cmd := range cmds {
			if del, ok := cmd.(*redis.IntCmd); ok {
				n += int(del.Val())
			}
		}
		return nil
	})
	return n, err
}

// scan walks session keys. Cluster clients scan every master.
func (s *SessionStore) scan(ctx context.Context, fn func(keys []string) error) error {
	match := s.prefix + "*"
	walk := func(ctx context.Context, c redis.Cmdable) error {
		var cursor uint64
		for {
			keys, next, err := c.Scan(ctx, cursor, match, scanBatch).Result()
			if err != nil {
				return fmt.Errorf("redis scan: %w", err)
			}
			if len(keys) > 0 {
				if err := fn(keys); err != nil {
					return err
				}
			}
			if next == 0 {
				return nil
			}
			cursor = next
		}
	}

	if cluster, ok := s.client.(*redis.ClusterClient); ok {
		return cluster.ForEachMaster(ctx, func(ctx context.Context, c *redis.Client) error {
			return walk(ctx, c)
		})
	}
	return walk(ctx, s.client)
}
