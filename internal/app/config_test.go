package app

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearDBEnv(t *testing.T) {
	for _, k := range []string{"DB_DRIVER", "DB_DSN", "DB_PATH", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB", "PORT", "APP_ENV", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearDBEnv(t)
	cfg := LoadConfig()
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, "host=localhost user=postgres password=postgres dbname=productcatalog port=5432 sslmode=disable", cfg.DSN)
}

func TestLoadConfigOverrides(t *testing.T) {
	clearDBEnv(t)
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_NAME", "catalog")
	t.Setenv("POSTGRES_USER", "svc")
	t.Setenv("APP_ENV", "Production")
	t.Setenv("PORT", "9000")

	cfg := LoadConfig()
	assert.Equal(t, "host=db user=svc password=postgres dbname=catalog port=5432 sslmode=disable", cfg.DSN)
	assert.Equal(t, "9000", cfg.Port)
	assert.False(t, cfg.IsDev())
}

func TestLoadConfigExplicitDSN(t *testing.T) {
	clearDBEnv(t)
	t.Setenv("DB_DSN", "postgres://u:p@h/db")
	t.Setenv("DB_HOST", "ignored")
	assert.Equal(t, "postgres://u:p@h/db", LoadConfig().DSN)
}

func TestLoadConfigSqlite(t *testing.T) {
	clearDBEnv(t)
	t.Setenv("DB_DRIVER", "SQLite")
	cfg := LoadConfig()
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "products.db", cfg.DSN)

	t.Setenv("DB_PATH", "/tmp/catalog.db")
	assert.Equal(t, "/tmp/catalog.db", LoadConfig().DSN)
}

func TestOpenDBSqliteAndMigrate(t *testing.T) {
	db, err := OpenDB(Config{DBDriver: "sqlite", DSN: filepath.Join(t.TempDir(), "app.db"), AppEnv: "test"})
	require.NoError(t, err)

	a, err := NewApp(db)
	require.NoError(t, err)
	require.NoError(t, a.Migrate())
	for _, table := range []string{"products", "groups", "tags", "customers", "allergens", "materials", "food_products", "textile_products", "product_tags", "food_product_allergens"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	assert.NotNil(t, a.HTTPHandler())
}

func TestOpenDBUnsupportedDriver(t *testing.T) {
	_, err := OpenDB(Config{DBDriver: "mysql"})
	assert.ErrorContains(t, err, `unsupported DB_DRIVER "mysql"`)
}

func TestNewAppNilDB(t *testing.T) {
	_, err := NewApp(nil)
	assert.Error(t, err)
}
