// Package suite gives integration tests a clean redis database and a logger.
package suite

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
)

const (
	// RedisAddrEnv points the suite at a running redis instead of a container.
	RedisAddrEnv = "TICTACTOE_TEST_REDIS_ADDR"

	containerTTL = 120 // seconds before docker kills a leaked container
	setupTimeout = 120 * time.Second
)

var redisContainer = dockertest.RunOptions{
	Repository: "redis",
	Tag:        "alpine",
}

type Suite struct {
	*testing.T
	Logger *slog.Logger

	Storage *redis.Client
}

// New returns a suite backed by an empty redis database. The test is skipped
// when neither RedisAddrEnv nor a docker daemon is available.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	t.Cleanup(cancel)

	addr := os.Getenv(RedisAddrEnv)
	if addr == "" {
		addr = runContainer(t)
	}

	client, err := connect(ctx, addr)
	if err != nil {
		t.Fatalf("could not connect to redis at %s: %v", addr, err)
	}

	t.Cleanup(func() { _ = client.Close() })

	if err = client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("could not flush database: %v", err)
	}

	return ctx, &Suite{
		T:       t,
		Logger:  slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})),
		Storage: client,
	}
}

// runContainer starts redis in docker and returns its host address once it
// answers pings.
func runContainer(t *testing.T) string {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err == nil {
		err = pool.Client.Ping()
	}

	if err != nil {
		t.Skipf("docker is not available: %v", err)
	}

	resource, err := pool.RunWithOptions(&redisContainer, func(host *docker.HostConfig) {
		host.AutoRemove = true
		host.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("could not start redis container: %v", err)
	}

	t.Cleanup(func() {
		if purgeErr := pool.Purge(resource); purgeErr != nil {
			t.Errorf("could not purge redis container: %v", purgeErr)
		}
	})

	_ = resource.Expire(containerTTL)

	addr := resource.GetHostPort("6379/tcp")

	pool.MaxWait = setupTimeout
	if err = pool.Retry(func() error {
		client, connErr := connect(context.Background(), addr)
		if connErr != nil {
			return connErr
		}

		return client.Close()
	}); err != nil {
		t.Fatalf("redis container never became ready: %v", err)
	}

	return addr
}

func connect(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return client, nil
}
