package convo

import (
	"context"
	"encoding/json"
	"time"

	"github.com/eleven-am/sight-backend/internal/shared"
	"github.com/eleven-am/sight-backend/internal/temporal"
	"github.com/eleven-am/sight-backend/internal/vision"
	"github.com/redis/go-redis/v9"
)

// RedisStore is the externalized session backend. Expiry rides on
// redis key TTL instead of lazy read-time checks, so ended and expired
// sessions disappear without a sweeper.
type RedisStore struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRedisStore(redisClient *redis.Client, ttl time.Duration) *RedisStore {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{redis: redisClient, ttl: ttl}
}

func (s *RedisStore) Create(ctx context.Context, sess *Session) error {
	if sess.ID == "" {
		sess.ID = shared.NewID("conv_")
	}
	now := time.Now()
	sess.Active = true
	sess.CreatedAt = now
	sess.ExpiresAt = now.Add(s.ttl)
	if sess.History == nil {
		sess.History = []Turn{}
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, sess.RedisKey(), data, s.ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := s.redis.Get(ctx, "convo:"+id).Bytes()
	if err == redis.Nil {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}
	if !sess.Active {
		return nil, shared.ErrNotFound
	}
	return &sess, nil
}

func (s *RedisStore) End(ctx context.Context, id string) error {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	sess.Active = false
	return s.save(ctx, sess)
}

func (s *RedisStore) SetFocusObject(ctx context.Context, id string, obj vision.DetectedObject) error {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	sess.FocusObject = &obj
	return s.save(ctx, sess)
}

func (s *RedisStore) SetFocusEntity(ctx context.Context, id string, ent temporal.Entity) error {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	sess.FocusEntity = &ent
	return s.save(ctx, sess)
}

func (s *RedisStore) AppendHistory(ctx context.Context, id string, role Role, text string) error {
	sess, err := s.Get(ctx, id)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil
		}
		return err
	}
	sess.History = append(sess.History, Turn{Role: role, Text: text})
	return s.save(ctx, sess)
}

// save rewrites the record without extending its lifetime; the TTL
// set at creation keeps counting down.
func (s *RedisStore) save(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, sess.RedisKey(), data, redis.KeepTTL).Err()
}
