// Package database opens the relational store behind the API.
//
// Two stores are supported:
//   - PostgreSQL: a pgx connection pool (pgxpool) with query tracing
//     (New Relic nrpgx5, pgx tracelog in local env), exposed to gorm through
//     pgx's database/sql adapter.
//   - SQLite: a single file opened with the pure Go modernc driver, used when
//     no Postgres URL is configured.
//
// Either way the rest of the application only sees *gorm.DB.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/config"
	loggerConfig "github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/logger"
	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/integrations/nrpgx5"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Database wraps the gorm handle and the pool underneath it.
//
// Pool is nil for SQLite.
type Database struct {
	Gorm   *gorm.DB
	SQL    *sql.DB
	Pool   *pgxpool.Pool
	Driver string
	log    *zerolog.Logger
}

// multiTracer allows chaining multiple tracers.
//
// pgx supports a single Tracer in ConnConfig, so this adapter runs the New
// Relic tracer and the local tracelog.TraceLog side by side.
type multiTracer struct {
	tracers []any
}

func (mt *multiTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	for _, tracer := range mt.tracers {
		if t, ok := tracer.(interface {
			TraceQueryStart(context.Context, *pgx.Conn, pgx.TraceQueryStartData) context.Context
		}); ok {
			ctx = t.TraceQueryStart(ctx, conn, data)
		}
	}
	return ctx
}

func (mt *multiTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	for _, tracer := range mt.tracers {
		if t, ok := tracer.(interface {
			TraceQueryEnd(context.Context, *pgx.Conn, pgx.TraceQueryEndData)
		}); ok {
			t.TraceQueryEnd(ctx, conn, data)
		}
	}
}

// DatabasePingTimeout is the number of seconds to wait for the startup ping.
const DatabasePingTimeout = 10

// New opens the configured store, pings it and wraps it in gorm.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	database := &Database{
		Driver: cfg.Database.Driver(),
		log:    logger,
	}

	var dialector gorm.Dialector

	switch database.Driver {
	case DriverPostgres:
		pool, err := newPool(cfg, logger, loggerService)
		if err != nil {
			return nil, err
		}
		database.Pool = pool
		database.SQL = stdlib.OpenDBFromPool(pool)
		dialector = postgres.New(postgres.Config{Conn: database.SQL})

	default:
		sqlDB, err := sql.Open(DriverSQLite, cfg.Database.SQLiteDSN())
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		// SQLite allows a single writer; one connection keeps writes serialized.
		sqlDB.SetMaxOpenConns(1)
		database.SQL = sqlDB
		dialector = sqlite.Dialector{DriverName: DriverSQLite, Conn: sqlDB}
	}

	if database.Driver == DriverPostgres {
		database.SQL.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		database.SQL.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	}
	database.SQL.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)
	database.SQL.SetConnMaxIdleTime(time.Duration(cfg.Database.ConnMaxIdleTime) * time.Second)

	// Driver errors are left untranslated; sqlerr reads table and column from them.
	gormDB, err := gorm.Open(dialector, &gorm.Config{
		Logger: loggerConfig.NewGormLogger(*logger, cfg.Observability.Logging.SlowQueryThreshold),
	})
	if err != nil {
		_ = database.SQL.Close()
		return nil, fmt.Errorf("failed to open gorm: %w", err)
	}
	database.Gorm = gormDB

	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout*time.Second)
	defer cancel()
	if err = database.Ping(ctx); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Str("driver", database.Driver).Msg("connected to the database")

	return database, nil
}

// newPool builds the instrumented pgx pool for PostgreSQL.
func newPool(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*pgxpool.Pool, error) {
	pgxPoolConfig, err := pgxpool.ParseConfig(cfg.Database.PostgresURL())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx pool config: %w", err)
	}
	pgxPoolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)

	if loggerService != nil && loggerService.GetApplication() != nil {
		pgxPoolConfig.ConnConfig.Tracer = nrpgx5.NewTracer()
	}

	// SQL logging is noisy; local only.
	if cfg.Primary.Env == "local" {
		globalLevel := logger.GetLevel()
		pgxLogger := loggerConfig.NewPgxLogger(globalLevel)

		localTracer := &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(pgxLogger),
			LogLevel: tracelog.LogLevel(loggerConfig.GetPgxTraceLogLevel(globalLevel)),
		}

		if pgxPoolConfig.ConnConfig.Tracer != nil {
			pgxPoolConfig.ConnConfig.Tracer = &multiTracer{
				tracers: []any{pgxPoolConfig.ConnConfig.Tracer, localTracer},
			}
		} else {
			pgxPoolConfig.ConnConfig.Tracer = localTracer
		}
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), pgxPoolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	return pool, nil
}

// Ping checks that the store answers.
func (db *Database) Ping(ctx context.Context) error {
	return db.SQL.PingContext(ctx)
}

// Close releases the connection pool.
func (db *Database) Close() error {
	db.log.Info().Msg("closing database connection pool")
	err := db.SQL.Close()
	if db.Pool != nil {
		db.Pool.Close()
	}
	return err
}
