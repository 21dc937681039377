package suite

import (
	"context"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
)

const (
	expireDuration  = 120
	maxWaitDuration = 120 * time.Second
)

const (
	redisPort  = "6379/tcp"
	redisImage = "redis"
	redisTag   = "alpine"
)

// Suite is a test fixture backed by a throwaway Redis container.
type Suite struct {
	*testing.T

	Storage *redis.Client
}

// New starts Redis in docker and returns a flushed client. The test is
// skipped in -short mode.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping redis-backed test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(func() {
		cancel()
	})

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("could not connect to docker: %v", err)
	}

	// pulls an image, creates a container based on it and runs it
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: redisImage,
		Tag:        redisTag,
		Env:        []string{},
	}, func(config *docker.HostConfig) {
		// set AutoRemove to true so that stopped container goes away by itself
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("could not start resource: %v", err)
	}

	// never returns error
	_ = resource.Expire(expireDuration) // Tell docker to hard kill the container in 120 seconds

	redisHost := resource.GetHostPort(redisPort)

	// exponential backoff-retry, because the application in the container might not be ready to accept connections yet
	pool.MaxWait = maxWaitDuration

	var redisClient *redis.Client
	if err = pool.Retry(func() error {
		client := redis.NewClient(&redis.Options{
			Addr: redisHost,
		})
		if pingErr := client.Ping(ctx).Err(); pingErr != nil {
			_ = client.Close()
			return pingErr
		}

		redisClient = client

		return nil
	}); err != nil {
		if purgeErr := pool.Purge(resource); purgeErr != nil {
			t.Errorf("could not purge resource: %v", purgeErr)
		}

		t.Fatalf("could not connect to redis: %v", err)
	}

	if err = redisClient.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("could not flush database: %v", err)
	}

	t.Cleanup(func() {
		t.Helper()

		if closeErr := redisClient.Close(); closeErr != nil {
			t.Errorf("could not close redis client: %v", closeErr)
		}

		if purgeErr := pool.Purge(resource); purgeErr != nil {
			t.Errorf("could not purge resource: %v", purgeErr)
		}
	})

	return ctx, &Suite{
		T:       t,
		Storage: redisClient,
	}
}
