//go:build integration

package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"

	"github.com/finance-tracker/ledger-api/config"
	"github.com/finance-tracker/ledger-api/internal/infra/cache"
)

var redisOnce sync.Once
var redisMock *Redis

// Redis pairs a miniredis server with the service's connection to it.
type Redis struct {
	Server *miniredis.Miniredis
	Conn   *cache.Redis
}

func NewRedis() *Redis {
	redisOnce.Do(func() {
		redisMock = openRedis()
	})
	return redisMock
}

func openRedis() *Redis {
	server, err := miniredis.Run()
	if err != nil {
		panic(err)
	}

	conn, err := cache.NewRedisConnection(&config.RedisConfig{URL: "redis://" + server.Addr() + "/0"})
	if err != nil {
		panic(err)
	}

	return &Redis{
		Server: server,
		Conn:   conn,
	}
}

func (r *Redis) Clear() error {
	return r.Conn.Client().FlushAll(context.TODO()).Err()
}
