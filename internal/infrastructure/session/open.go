package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/clinicdesk/clinic-console/internal/core/ports"
)

const (
	BackendBolt   = "bolt"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

const (
	redisTimeout = 5 * time.Second
	mongoTimeout = 10 * time.Second
)

type Options struct {
	Backend   string
	BoltPath  string
	RedisAddr string
	RedisDB   int
	MongoURI  string
	MongoDB   string
}

// Open connects the configured backend. The returned close func releases
// it and is never nil.
func Open(ctx context.Context, opts Options) (ports.SessionStorage, func() error, error) {
	switch opts.Backend {
	case BackendMemory:
		return NewMemoryStorage(), noClose, nil
	case BackendBolt, "":
		b, err := OpenBolt(opts.BoltPath)
		if err != nil {
			return nil, noClose, err
		}
		return b, b.Close, nil
	case BackendRedis:
		rdb, err := connectRedis(ctx, opts.RedisAddr, opts.RedisDB)
		if err != nil {
			return nil, noClose, err
		}
		return NewRedisStorage(rdb), rdb.Close, nil
	case BackendMongo:
		client, db, err := connectMongo(ctx, opts.MongoURI, opts.MongoDB)
		if err != nil {
			return nil, noClose, err
		}
		return NewMongoStorage(db), func() error { return client.Disconnect(context.Background()) }, nil
	}
	return nil, noClose, fmt.Errorf("unknown session backend %q", opts.Backend)
}

func noClose() error { return nil }

// connectRedis dials and pings before handing the client out.
func connectRedis(ctx context.Context, addr string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, DB: db})

	pingCtx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return client, nil
}

func connectMongo(ctx context.Context, uri, database string) (*mongo.Client, *mongo.Database, error) {
	connectCtx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, client.Database(database), nil
}
