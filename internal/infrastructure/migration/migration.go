package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/edofi/fiwe/internal/shared/config"
	"github.com/edofi/fiwe/internal/shared/logger"
)

// Manager handles database migrations with different strategies
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks the strategy by name. SQLite databases always use gorm
// auto migration because the versioned scripts are written for MySQL.
func NewManager(strategyName string, dbCfg *config.DatabaseConfig) (*Manager, error) {
	log := logger.WithComponent("migration.manager")

	if dbCfg != nil && dbCfg.IsSQLite() {
		if strategyName != "" && strategyName != StrategyGormAutoMigrate {
			log.Warnw("sqlite database, ignoring requested migration strategy", "strategy", strategyName)
		}
		return NewManagerWithStrategy(NewGormAutoMigrateStrategy()), nil
	}

	var strategy Strategy
	switch strategyName {
	case "", StrategyGoose:
		strategy = NewGooseStrategy()
	case StrategyGolangMigrate:
		strategy = NewGolangMigrateStrategy()
	case StrategyGormAutoMigrate:
		strategy = NewGormAutoMigrateStrategy()
	default:
		return nil, fmt.Errorf("unknown migration strategy: %s", strategyName)
	}

	return &Manager{
		strategy: strategy,
		logger:   log,
	}, nil
}

// NewManagerWithStrategy creates a new migration manager with a specific strategy
func NewManagerWithStrategy(strategy Strategy) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   logger.WithComponent("migration.manager"),
	}
}

// Migrate executes the configured migration strategy
func (m *Manager) Migrate(db *gorm.DB, models ...interface{}) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())

	if err := m.strategy.Migrate(db, models...); err != nil {
		m.logger.Errorw("migration failed", "strategy", m.strategy.GetName(), "error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed successfully", "strategy", m.strategy.GetName())
	return nil
}

func (m *Manager) MigrateDown(db *gorm.DB, steps int) error {
	if steps <= 0 {
		steps = 1
	}
	return m.strategy.MigrateDown(db, steps)
}

func (m *Manager) Status(db *gorm.DB) error {
	return m.strategy.Status(db)
}

// GetStrategy returns the current migration strategy
func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}
