package database

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"server/config"
	logg "server/internal/logger"
	"time"

	"github.com/valkey-io/valkey-go"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type CacheClient valkey.Client

type Cache struct {
	General CacheClient
	Session CacheClient
	User    CacheClient
}

const (
	cacheDBGeneral = 0
	cacheDBSession = 1
	cacheDBUser    = 2
)

type DB struct {
	SQL   *gorm.DB
	Cache Cache
	log   logg.Logger
}

func New(config config.Config) (DB, error) {
	log := logg.New("database").Function("New")

	log.Info("Initializing database")
	db := &DB{log: log}

	err := db.initializeDB(config)
	if err != nil {
		return DB{}, log.Err("failed to initialize database", err)
	}

	err = db.initializeCacheDB(config)
	if err != nil {
		return DB{}, log.Err("failed to initialize cache database", err)
	}

	return *db, nil
}

func TXDefer(tx *gorm.DB, log logg.Logger) {
	if tx.Error != nil {
		log.Er("failed to commit transaction", tx.Error)
		tx.Rollback()
	} else {
		err := tx.Commit().Error
		if err != nil {
			log.Er("failed to commit transaction", err)
		} else {
			log.Info("committed transaction")
		}
	}
}

func (s *DB) initializeDB(config config.Config) error {
	gormLogger := logger.New(
		slog.NewLogLogger(slog.Default().Handler(), slog.LevelInfo),
		logger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      false,
			Colorful:                  false,
		},
	)

	gormConfig := &gorm.Config{
		Logger:                                   gormLogger,
		PrepareStmt:                              true,
		DisableForeignKeyConstraintWhenMigrating: false,
		CreateBatchSize:                          100,
	}

	return s.initializeSQLiteDB(gormConfig, config)
}

func (s *DB) initializeSQLiteDB(gormConfig *gorm.Config, config config.Config) error {
	log := s.log.Function("initializeSQLiteDB")

	dbPath := config.DatabaseDbPath
	if dbPath == "" {
		return log.Error("database path is empty", "dbPath", dbPath)
	}

	dir := filepath.Dir(dbPath)
	if dir != "." && dbPath != ":memory:" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return log.Err("failed to create database directory", err, "dir", dir)
		}
	}

	log.Info("Connecting with GORM", "dbPath", dbPath)
	db, err := gorm.Open(sqlite.Open(dbPath), gormConfig)
	if err != nil {
		return log.Err("failed to open database with GORM", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return log.Err("failed to get database from GORM", err)
	}

	if err := sqlDB.Ping(); err != nil {
		return log.Err("failed to ping database through GORM", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	s.SQL = db

	return nil
}

func (s *DB) initializeCacheDB(config config.Config) error {
	log := s.log.Function("initializeCacheDB")

	if config.DatabaseCacheAddress == "" || config.DatabaseCachePort == 0 {
		return log.Error("cache address or port is empty",
			"address", config.DatabaseCacheAddress, "port", config.DatabaseCachePort)
	}

	address := fmt.Sprintf("%s:%d", config.DatabaseCacheAddress, config.DatabaseCachePort)

	clients := []struct {
		target *CacheClient
		db     int
		name   string
	}{
		{&s.Cache.General, cacheDBGeneral, "General"},
		{&s.Cache.Session, cacheDBSession, "Session"},
		{&s.Cache.User, cacheDBUser, "User"},
	}

	for _, c := range clients {
		client, err := valkey.NewClient(valkey.ClientOption{
			InitAddress: []string{address},
			SelectDB:    c.db,
		})
		if err != nil {
			return log.Err("failed to create cache client", err, "cache", c.name, "address", address)
		}
		*c.target = client
	}

	log.Info("Connected to cache", "address", address)
	return nil
}

func (s *DB) Close() (err error) {
	if s.SQL != nil {
		sqlDB, sqlErr := s.SQL.DB()
		if sqlErr == nil {
			if closeErr := sqlDB.Close(); closeErr != nil {
				_ = s.log.Err("failed to close database", closeErr)
				err = closeErr
			}
		}
	}

	if s.Cache.General != nil {
		s.Cache.General.Close()
	}

	if s.Cache.Session != nil {
		s.Cache.Session.Close()
	}

	if s.Cache.User != nil {
		s.Cache.User.Close()
	}

	return
}

func (s *DB) SQLWithContext(ctx context.Context) *gorm.DB {
	return s.SQL.WithContext(ctx)
}

type transactionKey struct{}

// ContextWithTransaction stores an open transaction in ctx so repositories
// join it instead of opening their own.
func ContextWithTransaction(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, transactionKey{}, tx)
}

// GetTransaction returns the transaction stored in ctx, if any.
func GetTransaction(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(transactionKey{}).(*gorm.DB)
	return tx, ok
}

// NewFromGorm wraps an already-open gorm handle without cache clients. Used
// by the migration command and by tests that bring their own database.
func NewFromGorm(sql *gorm.DB) DB {
	return DB{
		SQL: sql,
		log: logg.New("database"),
	}
}

// StoreSession writes a session token to user mapping with an expiry. A
// missing session client makes this a no-op, same as FlushUserCache.
func (s *DB) StoreSession(ctx context.Context, key, userID string, ttl time.Duration) error {
	if s.Cache.Session == nil {
		return nil
	}

	session := s.Cache.Session
	cmd := session.B().Set().Key(key).Value(userID).Ex(ttl).Build()
	if err := session.Do(ctx, cmd).Error(); err != nil {
		return s.log.Function("StoreSession").Err("failed to store session", err)
	}

	return nil
}

// GetSession resolves a session key to its user ID. Unlike the write paths a
// missing session client is an error here, since there is nothing to resolve
// against.
func (s *DB) GetSession(ctx context.Context, key string) (string, error) {
	if s.Cache.Session == nil {
		return "", s.log.Function("GetSession").ErrMsg("session cache is not configured")
	}

	session := s.Cache.Session
	userID, err := session.Do(ctx, session.B().Get().Key(key).Build()).ToString()
	if err != nil {
		return "", s.log.Function("GetSession").Err("session not found", err)
	}

	return userID, nil
}

// DeleteSession drops a session key. No-op without a session client.
func (s *DB) DeleteSession(ctx context.Context, key string) error {
	if s.Cache.Session == nil {
		return nil
	}

	session := s.Cache.Session
	if err := session.Do(ctx, session.B().Del().Key(key).Build()).Error(); err != nil {
		return s.log.Function("DeleteSession").Err("failed to delete session", err)
	}

	return nil
}

// FlushUserCache drops every cached user entry. Called after bulk imports so
// readers never see stale org references.
func (s *DB) FlushUserCache(ctx context.Context) error {
	if s.Cache.User == nil {
		return nil
	}

	log := s.log.Function("FlushUserCache")

	if err := s.Cache.User.Do(ctx, s.Cache.User.B().Flushdb().Build()).Error(); err != nil {
		return log.Err("failed to flush user cache", err)
	}

	log.Info("Flushed user cache")
	return nil
}
