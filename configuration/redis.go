package configuration

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Client variable can used to save key value pairs in redis
var Client *redis.Client

// InitRedis function initializes the redis connection. It is only called when
// REDIS_ADDR is configured; without it the app falls back to the in-memory
// OTP store.
func InitRedis(addr string) {
	var err error
	MaxRetries := 5
	RetryDelay := time.Second * 5
	for i := 0; i < MaxRetries; i++ {
		Client = redis.NewClient(&redis.Options{
			Network: "tcp",
			Addr:    addr,
			DB:      0,
		})

		_, err = Client.Ping(context.Background()).Result()
		if err == nil {
			break
		}

		log.Warnf("Failed to connect to Redis (Attempt %d/%d): %s", i+1, MaxRetries, err.Error())
		time.Sleep(RetryDelay)
	}
	if err != nil {
		log.Fatal("Failed to connect to Redis after multiple attempts: ", err)
	}
}
