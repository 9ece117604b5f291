package authentication

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// RedisStore is an OtpStore backed by Redis. SET with expiry gives the
// overwrite-on-reissue behaviour, and key TTLs take care of expiry, so
// SweepExpired has nothing to do.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) key(identifier string) string {
	return "otp:" + normalizeKey(identifier)
}

func (s *RedisStore) Put(identifier, code string) error {
	return s.client.Set(context.Background(), s.key(identifier), code, OtpTTL).Err()
}

func (s *RedisStore) Verify(identifier, code string) (bool, string) {
	ctx := context.Background()
	key := s.key(identifier)

	stored, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Error("Error reading OTP from redis: ", err)
		}
		return false, OtpReasonExpired
	}
	if stored != code {
		return false, OtpReasonInvalid
	}
	if err := s.client.Del(ctx, key).Err(); err != nil {
		log.Error("Error deleting OTP from redis: ", err)
	}
	return true, ""
}

func (s *RedisStore) SweepExpired() {}
