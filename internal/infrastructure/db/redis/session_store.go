package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/thumbtack/onlineshop/internal/core/domain"
)

const sessionPrefix = "session:"

// SessionStore keeps login sessions in Redis.
// Key format: session:<token>, value: the account id.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewSessionStore creates a SessionStore. A zero ttl keeps sessions until
// logout or Clear.
func NewSessionStore(client *redis.Client, ttl time.Duration, log zerolog.Logger) *SessionStore {
	return &SessionStore{client: client, ttl: ttl, log: log}
}

func (s *SessionStore) Get(ctx context.Context, token string) (*domain.Session, error) {
	raw, err := s.client.Get(ctx, s.key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	accountID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("decode session %q: %w", raw, err)
	}

	if s.ttl > 0 {
		// sliding expiry; the session stays valid until its current deadline
		if err := s.client.Expire(ctx, s.key(token), s.ttl).Err(); err != nil {
			s.log.Warn().Err(err).Int64("account_id", accountID).Msg("session ttl refresh failed")
		}
	}
	return &domain.Session{Token: token, AccountID: accountID}, nil
}

func (s *SessionStore) Insert(ctx context.Context, session domain.Session) error {
	value := strconv.FormatInt(session.AccountID, 10)
	if err := s.client.Set(ctx, s.key(session.Token), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Clear removes every session key. It walks the keyspace with SCAN so other
// data in the same database is left alone.
func (s *SessionStore) Clear(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, sessionPrefix+"*", 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan sessions: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("clear sessions: %w", err)
	}
	return nil
}

func (s *SessionStore) key(token string) string {
	return sessionPrefix + token
}
