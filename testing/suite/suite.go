// Package suite starts throwaway infrastructure for integration tests.
package suite

import (
	"context"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/xando/internal/repository/storage"
)

const (
	containerTTL = uint(120)
	startTimeout = 120 * time.Second

	redisImage = "redis"
	redisTag   = "alpine"
	redisPort  = "6379/tcp"
)

// Suite holds a Redis client bound to a container owned by one test.
type Suite struct {
	*testing.T

	Storage *redis.Client
}

// New starts Redis for t and removes it when t ends. Without docker, or with
// -short, the test is skipped.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	if testing.Short() {
		t.Skip("redis suite needs docker, skipped in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	t.Cleanup(cancel)

	pool := dockerPool(t)
	container := runRedis(t, pool)

	client := connect(ctx, t, pool, container.GetHostPort(redisPort))
	t.Cleanup(func() {
		_ = client.Close()
	})

	return ctx, &Suite{T: t, Storage: client}
}

func dockerPool(t *testing.T) *dockertest.Pool {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("no docker pool: %v", err)
	}

	if err = pool.Client.Ping(); err != nil {
		t.Skipf("docker daemon unreachable: %v", err)
	}

	pool.MaxWait = startTimeout

	return pool
}

func runRedis(t *testing.T, pool *dockertest.Pool) *dockertest.Resource {
	t.Helper()

	container, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: redisImage,
		Tag:        redisTag,
	}, func(host *docker.HostConfig) {
		host.AutoRemove = true
		host.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("start redis container: %v", err)
	}

	// hard stop in case cleanup never runs
	_ = container.Expire(containerTTL)

	t.Cleanup(func() {
		if err := pool.Purge(container); err != nil {
			t.Errorf("purge redis container: %v", err)
		}
	})

	return container
}

// connect waits until the container accepts connections.
func connect(ctx context.Context, t *testing.T, pool *dockertest.Pool, addr string) *redis.Client {
	t.Helper()

	var client *redis.Client

	err := pool.Retry(func() error {
		var err error
		client, err = storage.New(ctx, addr)
		return err
	})
	if err != nil {
		t.Fatalf("redis at %s never came up: %v", addr, err)
	}

	if err = client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("flush redis: %v", err)
	}

	return client
}
