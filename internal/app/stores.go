// Package app wires configuration to concrete stores, services and the asset
// cache. Both binaries build on it.
package app

import (
	"alcyxob/gym-buddy/internal/config"
	"alcyxob/gym-buddy/internal/repository"
	"alcyxob/gym-buddy/internal/repository/kv"
	"alcyxob/gym-buddy/internal/repository/memory"
	"alcyxob/gym-buddy/internal/repository/mongo"
	"alcyxob/gym-buddy/internal/repository/postgres"
	"alcyxob/gym-buddy/internal/repository/sqlite"
	"alcyxob/gym-buddy/internal/service"
	"context"
	"fmt"
	"log"
)

// OpenKVStore opens the backend selected by cfg.Storage.Driver. The returned
// close function is never nil.
func OpenKVStore(ctx context.Context, cfg config.Config) (repository.KVStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		log.Println("WARN: Using in-memory storage, nothing will survive a restart.")
		return memory.NewKVStore(), noop, nil

	case config.DriverSQLite, "":
		store, err := sqlite.New(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("INFO: Using SQLite storage at %s", cfg.Storage.SQLitePath)
		return store, store.Close, nil

	case config.DriverMongo:
		store, closeFn, err := mongo.OpenKVStore(ctx, cfg.Database.URI, cfg.Database.Name)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("INFO: Using MongoDB storage, database %s", cfg.Database.Name)
		return store, closeFn, nil

	case config.DriverPostgres:
		store, release, err := postgres.New(ctx, &postgres.Config{
			Address:  cfg.Postgres.Address,
			Username: cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			DB:       cfg.Postgres.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		log.Printf("INFO: Using PostgreSQL storage at %s/%s", cfg.Postgres.Address, cfg.Postgres.DB)
		return store, func() error { release(); return nil }, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// Services is everything the UI surfaces need.
type Services struct {
	Routines service.RoutineService
	Workouts service.WorkoutService
	History  service.HistoryService
}

// NewServices opens the routine and log collections on store.
func NewServices(ctx context.Context, store repository.KVStore) (*Services, error) {
	routineRepo, err := kv.NewRoutineStore(ctx, store)
	if err != nil {
		return nil, err
	}
	logRepo, err := kv.NewLogStore(ctx, store)
	if err != nil {
		return nil, err
	}
	return &Services{
		Routines: service.NewRoutineService(routineRepo),
		Workouts: service.NewWorkoutService(routineRepo, logRepo),
		History:  service.NewHistoryService(logRepo),
	}, nil
}
