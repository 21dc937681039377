package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// New connects to Redis and checks the connection with a ping.
func New(ctx context.Context, addr string, db int) (*redis.Client, error) {
	conn := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	if err := conn.Ping(ctx).Err(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return conn, nil
}
