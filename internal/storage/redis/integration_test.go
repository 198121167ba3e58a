//go:build integration

package redis

import (
	"context"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/dotsgame/internal/storage"
	"github.com/mcoot/dotsgame/internal/storage/storagetest"
)

const (
	containerExpiry = 120 // seconds
	maxWait         = 120 * time.Second
)

// IntegrationSuite runs the storage contract against a real redis in docker
type IntegrationSuite struct {
	storagetest.Suite
	pool     *dockertest.Pool
	resource *dockertest.Resource
	client   *redis.Client
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupSuite() {
	pool, err := dockertest.NewPool("")
	s.Require().NoError(err, "could not connect to docker")

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "alpine",
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	s.Require().NoError(err, "could not start redis")

	// never returns error
	_ = resource.Expire(containerExpiry)

	pool.MaxWait = maxWait
	addr := resource.GetHostPort("6379/tcp")
	err = pool.Retry(func() error {
		s.client = redis.NewClient(&redis.Options{Addr: addr})
		return s.client.Ping(context.Background()).Err()
	})
	if err != nil {
		_ = pool.Purge(resource)
		s.Require().NoError(err, "could not connect to redis")
	}

	s.pool = pool
	s.resource = resource
}

func (s *IntegrationSuite) TearDownSuite() {
	if s.client != nil {
		_ = s.client.Close()
	}
	if s.pool != nil && s.resource != nil {
		s.NoError(s.pool.Purge(s.resource))
	}
}

func (s *IntegrationSuite) SetupTest() {
	s.Require().NoError(s.client.FlushDB(context.Background()).Err())

	cfg := DefaultConfig()
	cfg.GameTTL = time.Hour
	st := NewWithClient(s.client, cfg)
	s.New = func() storage.Storage { return st }
	s.Suite.SetupTest()
}
