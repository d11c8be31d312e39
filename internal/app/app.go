package app

import (
	"fmt"
	"net/http"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/phenrril/productcatalog/internal/adapters/httpserver"
	repo "github.com/phenrril/productcatalog/internal/adapters/repo/postgres"
	"github.com/phenrril/productcatalog/internal/domain"
	"github.com/phenrril/productcatalog/internal/usecase"
)

type App struct {
	DB        *gorm.DB
	ProductUC *usecase.ProductUC
}

// OpenDB opens the configured database. Duplicate-key errors are translated
// to gorm.ErrDuplicatedKey so deduplication works the same on both drivers.
func OpenDB(cfg Config) (*gorm.DB, error) {
	gcfg := &gorm.Config{TranslateError: true}
	if !cfg.IsDev() {
		gcfg.Logger = logger.Default.LogMode(logger.Silent)
	}
	switch cfg.DBDriver {
	case "postgres", "":
		return gorm.Open(postgres.Open(cfg.DSN), gcfg)
	case "sqlite":
		db, err := gorm.Open(sqlite.Open(cfg.DSN), gcfg)
		if err != nil {
			return nil, err
		}
		// one writer at a time, sqlite serialises them anyway
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		return db, nil
	}
	return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
}

func NewApp(db *gorm.DB) (*App, error) {
	if db == nil {
		return nil, fmt.Errorf("nil database")
	}
	return &App{
		DB:        db,
		ProductUC: &usecase.ProductUC{Store: repo.NewCatalogRepo(db)},
	}, nil
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(a.ProductUC)
}

func (a *App) Migrate() error {
	return a.DB.AutoMigrate(domain.Tables...)
}
