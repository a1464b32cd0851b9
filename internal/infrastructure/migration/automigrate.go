package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/edofi/fiwe/internal/infrastructure/persistence/models"
	"github.com/edofi/fiwe/internal/shared/logger"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.NotificationModel{},
		&models.PreferenceModel{},
	}
}

// GormAutoMigrateStrategy derives the schema from the gorm models. It is the
// only strategy available on SQLite.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy() Strategy {
	return &GormAutoMigrateStrategy{
		logger: logger.WithComponent("migration.gorm"),
	}
}

func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB, models ...interface{}) error {
	if len(models) == 0 {
		models = AutoMigrateModels()
	}

	s.logger.Infow("starting gorm auto migration", "models_count", len(models))

	if err := db.AutoMigrate(models...); err != nil {
		s.logger.Errorw("auto migration failed", "error", err)
		return fmt.Errorf("failed to auto migrate: %w", err)
	}

	s.logger.Infow("auto migration completed successfully")
	return nil
}

func (s *GormAutoMigrateStrategy) MigrateDown(db *gorm.DB, steps int) error {
	return fmt.Errorf("strategy %s does not support down migrations", s.GetName())
}

func (s *GormAutoMigrateStrategy) Status(db *gorm.DB) error {
	for _, model := range AutoMigrateModels() {
		s.logger.Infow("table status", "model", fmt.Sprintf("%T", model), "exists", db.Migrator().HasTable(model))
	}
	return nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return StrategyGormAutoMigrate
}
