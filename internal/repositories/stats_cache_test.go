package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/finance-planner/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestStatsCacheRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("requires docker")
	}
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7.0-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}
	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	assert.NoError(t, err)
	defer redisC.Terminate(ctx)

	host, err := redisC.Host(ctx)
	assert.NoError(t, err)
	port, err := redisC.MappedPort(ctx, "6379")
	assert.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", host, port.Port()),
	})
	defer rdb.Close()

	assert.NoError(t, rdb.Ping(ctx).Err())

	repo := NewStatsCacheRepository(rdb, 2*time.Second)

	t.Run("Set and Get stats", func(t *testing.T) {
		stats := models.TransactionStats{Sum: 97, In: 302, Out: -205, Count: 5}

		assert.NoError(t, repo.SetStats(ctx, "pro:1", stats))

		got, err := repo.GetStats(ctx, "pro:1")
		assert.NoError(t, err)
		assert.Equal(t, stats, *got)
	})

	t.Run("Get missing key returns ErrStatsNotCached", func(t *testing.T) {
		_, err := repo.GetStats(ctx, "pro:missing")
		assert.ErrorIs(t, err, ErrStatsNotCached)
	})

	t.Run("Delete removes stats", func(t *testing.T) {
		assert.NoError(t, repo.SetStats(ctx, "pro:2", models.TransactionStats{Sum: 1, In: 1, Count: 1}))
		assert.NoError(t, repo.DeleteStats(ctx, "pro:2"))

		_, err := repo.GetStats(ctx, "pro:2")
		assert.ErrorIs(t, err, ErrStatsNotCached)
	})

	t.Run("Cached value expires", func(t *testing.T) {
		assert.NoError(t, repo.SetStats(ctx, "pro:3", models.TransactionStats{Sum: 5}))

		time.Sleep(3 * time.Second)

		_, err := repo.GetStats(ctx, "pro:3")
		assert.ErrorIs(t, err, ErrStatsNotCached)
	})
}
