package migration

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/edofi/fiwe/internal/infrastructure/persistence/models"
	"github.com/edofi/fiwe/internal/shared/config"
)

func TestNewManager_SelectsStrategy(t *testing.T) {
	mysqlCfg := &config.DatabaseConfig{Driver: "mysql"}
	sqliteCfg := &config.DatabaseConfig{Driver: "sqlite"}

	tests := []struct {
		name     string
		strategy string
		cfg      *config.DatabaseConfig
		want     string
		wantErr  bool
	}{
		{"default is goose", "", mysqlCfg, StrategyGoose, false},
		{"golang-migrate", StrategyGolangMigrate, mysqlCfg, StrategyGolangMigrate, false},
		{"auto migrate", StrategyGormAutoMigrate, mysqlCfg, StrategyGormAutoMigrate, false},
		{"sqlite forces auto migrate", StrategyGoose, sqliteCfg, StrategyGormAutoMigrate, false},
		{"unknown", "flyway", mysqlCfg, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewManager(tt.strategy, tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.GetStrategy().GetName())
		})
	}
}

func TestGormAutoMigrate_CreatesTables(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	m, err := NewManager("", &config.DatabaseConfig{Driver: "sqlite"})
	require.NoError(t, err)
	require.NoError(t, m.Migrate(db))

	assert.True(t, db.Migrator().HasTable(&models.NotificationModel{}))
	assert.True(t, db.Migrator().HasTable(&models.PreferenceModel{}))
	assert.True(t, db.Migrator().HasTable(&models.UserModel{}))
	assert.True(t, db.Migrator().HasIndex(&models.NotificationModel{}, "idx_user_read"))

	assert.Error(t, m.MigrateDown(db, 1))
}

func TestEmbeddedScripts(t *testing.T) {
	gooseFiles, err := fs.Glob(scriptsFS, gooseScriptsDir+"/*.sql")
	require.NoError(t, err)
	assert.NotEmpty(t, gooseFiles)

	ups, err := fs.Glob(scriptsFS, migrateScriptsDir+"/*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(scriptsFS, migrateScriptsDir+"/*.down.sql")
	require.NoError(t, err)
	assert.Len(t, downs, len(ups))
}
