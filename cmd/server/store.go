package main

import (
	"context"
	"fmt"

	"github.com/vncsmyrnk/blog/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/blog/internal/adapters/repository/mongo"
	"github.com/vncsmyrnk/blog/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/blog/internal/config"
	"github.com/vncsmyrnk/blog/internal/core/ports"
	"github.com/vncsmyrnk/blog/internal/logging"
)

type store struct {
	users ports.UserRepository
	posts ports.PostRepository
	close func(context.Context) error
}

func openStore(ctx context.Context, cfg *config.Config, log logging.Logger) (*store, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.PostgresDSN())
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		log.Info(ctx, "connected to postgres", "host", cfg.PostgresHost, "db", cfg.PostgresDB)
		return &store{
			users: postgres.NewUserRepository(db),
			posts: postgres.NewPostRepository(db),
			close: func(context.Context) error { return db.Close() },
		}, nil

	case config.DriverMongo:
		client, db, err := mongo.Connect(ctx, cfg.MongoURL, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		if err := mongo.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		log.Info(ctx, "connected to mongo", "db", cfg.MongoDatabase)
		return &store{
			users: mongo.NewUserRepository(db),
			posts: mongo.NewPostRepository(db),
			close: client.Disconnect,
		}, nil

	case config.DriverMemory:
		log.Warn(ctx, "using in-memory store, data is lost on restart")
		s := memory.NewStore()
		return &store{
			users: s.Users(),
			posts: s.Posts(),
			close: func(context.Context) error { return nil },
		}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
