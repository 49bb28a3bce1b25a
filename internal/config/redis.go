package config

// This file defines a Redis client constructor for the gateway.  Redis is
// used for distributed rate limiting, HTTP response caching of public hotel
// reads and the customers' favorites lists.  If the connection fails during
// startup, the function returns nil and callers degrade gracefully by
// disabling caching and rate limiting and keeping favorites in memory.

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient instantiates a Redis client from the Redis settings.
// REDIS_HOST and REDIS_PORT take precedence over REDIS_ADDR when both are set.
// The returned client is nil if a connection cannot be established.
func NewRedisClient(rc RedisConfig) *redis.Client {
	addr := rc.Addr
	if rc.Host != "" && rc.Port != "" {
		addr = rc.Host + ":" + rc.Port
	}
	var tlsConf *tls.Config
	if rc.TLS {
		tlsConf = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(&redis.Options{
		Addr:      addr,
		Password:  rc.Password,
		DB:        rc.DB,
		TLSConfig: tlsConf,
	})
	// Ping the server with a short timeout.  Return nil on failure.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil
	}
	return client
}
