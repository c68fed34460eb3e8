package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/jakechorley/nursery-shifts/internal/config"
	"github.com/jakechorley/nursery-shifts/pkg/db"
)

// Store is what commands read from and write to
type Store interface {
	db.Database
	db.Importer
}

// Migrator applies schema migrations (postgres only)
type Migrator interface {
	RunMigrations(ctx context.Context) ([]string, error)
}

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Database Store
	Migrator Migrator
	Logger   *zap.Logger
	Ctx      context.Context
}
