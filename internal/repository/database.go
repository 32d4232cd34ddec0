package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Database holds the connection pool and provides access to repositories
type Database struct {
	Pool *pgxpool.Pool

	// Repositories
	Players       *PlayerRepository
	SeasonStats   *SeasonStatsRepository
	AdvancedStats *AdvancedStatsRepository
	GameLogs      *GameLogRepository
	Shots         *ShotRepository
	RefreshLog    *RefreshLogRepository
}

// NewDatabase creates a connection pool from a postgres:// URL and
// initializes repositories
func NewDatabase(ctx context.Context, databaseURL string) (*Database, error) {
	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	// Batch jobs are sequential; a small pool is plenty
	poolConfig.MaxConns = 10
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info().
		Str("database", poolConfig.ConnConfig.Database).
		Str("host", poolConfig.ConnConfig.Host).
		Msg("Successfully connected to database")

	db := &Database{Pool: pool}
	db.Players = &PlayerRepository{db: db}
	db.SeasonStats = &SeasonStatsRepository{db: db}
	db.AdvancedStats = &AdvancedStatsRepository{db: db}
	db.GameLogs = &GameLogRepository{db: db}
	db.Shots = &ShotRepository{db: db}
	db.RefreshLog = &RefreshLogRepository{db: db}

	return db, nil
}

// Close closes the database connection pool
func (db *Database) Close() {
	if db.Pool != nil {
		db.Pool.Close()
		log.Info().Msg("Database connection pool closed")
	}
}

// Health checks if the database is reachable
func (db *Database) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := db.Pool.Ping(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	return nil
}
