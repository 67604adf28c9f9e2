package database

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/votervision/backend/internal/config"
	"github.com/votervision/backend/internal/models"
)

// Manager owns the Postgres and Redis connections.
type Manager struct {
	DB     *gorm.DB
	Redis  *redis.Client
	logger *logrus.Logger
}

func NewManager(cfg *config.Config, logger *logrus.Logger) (*Manager, error) {
	gormLog := gormlogger.Default.LogMode(gormlogger.Silent)
	if cfg.LogLevel == "debug" {
		gormLog = gormlogger.Default.LogMode(gormlogger.Info)
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.URL), &gorm.Config{
		Logger: gormLog,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Database connections established")

	return &Manager{
		DB:     db,
		Redis:  rdb,
		logger: logger,
	}, nil
}

// Migrate creates or updates the schema for all persisted models.
func (m *Manager) Migrate() error {
	m.logger.Info("Running database migrations")

	err := m.DB.AutoMigrate(
		&models.Candidate{},
		&models.Manifesto{},
		&models.QueryLog{},
		&models.EngagementHistory{},
		&models.ResearchAnalysis{},
	)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	m.logger.Info("Database migrations completed")
	return nil
}

func (m *Manager) PingDatabase(ctx context.Context) error {
	sqlDB, err := m.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (m *Manager) PingRedis(ctx context.Context) error {
	return m.Redis.Ping(ctx).Err()
}

func (m *Manager) Close() error {
	if err := m.Redis.Close(); err != nil {
		m.logger.WithError(err).Warn("Failed to close redis connection")
	}

	sqlDB, err := m.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
