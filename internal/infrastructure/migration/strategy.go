package migration

import (
	"embed"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"github.com/dietdesk/dietdesk/internal/shared/logger"
)

//go:embed scripts
var embeddedScripts embed.FS

// ScriptsDir is where `migrate create` writes new files, relative to the repo root.
const ScriptsDir = "internal/infrastructure/migration/scripts"

// Strategy defines the interface for different migration strategies
type Strategy interface {
	Migrate(db *gorm.DB) error
	GetName() string
}

// goose keeps dialect and base FS in package globals.
var gooseMu sync.Mutex

// GooseStrategy runs the versioned SQL scripts embedded for one dialect.
type GooseStrategy struct {
	dialect   string
	scriptDir string
	logger    logger.Interface
}

// NewGooseStrategy picks the script set for a database driver name.
func NewGooseStrategy(driver string) (*GooseStrategy, error) {
	dialect, dir, err := dialectFor(driver)
	if err != nil {
		return nil, err
	}
	return &GooseStrategy{
		dialect:   dialect,
		scriptDir: dir,
		logger:    logger.WithComponent("migration.goose"),
	}, nil
}

func dialectFor(driver string) (dialect, dir string, err error) {
	switch strings.ToLower(driver) {
	case "mysql", "":
		return "mysql", "mysql", nil
	case "postgres", "postgresql":
		return "postgres", "postgres", nil
	case "sqlite":
		return "sqlite3", "sqlite", nil
	}
	return "", "", fmt.Errorf("no migration scripts for driver %q", driver)
}

func (s *GooseStrategy) embeddedDir() string {
	return path.Join("scripts", s.scriptDir)
}

// with runs fn with goose configured for this strategy.
func (s *GooseStrategy) with(fn func() error) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(embeddedScripts)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(s.dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return fn()
}

func (s *GooseStrategy) Migrate(db *gorm.DB) error {
	s.logger.Infow("starting goose migration", "dialect", s.dialect)

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	return s.with(func() error {
		currentVersion, err := goose.GetDBVersion(sqlDB)
		if err != nil {
			s.logger.Errorw("failed to get current version", "error", err)
			return fmt.Errorf("failed to get current version: %w", err)
		}

		if err := goose.Up(sqlDB, s.embeddedDir()); err != nil {
			s.logger.Errorw("migration failed", "error", err)
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		finalVersion, err := goose.GetDBVersion(sqlDB)
		if err != nil {
			return fmt.Errorf("failed to get final version: %w", err)
		}

		s.logger.Infow("migration completed successfully",
			"from_version", currentVersion,
			"to_version", finalVersion)
		return nil
	})
}

func (s *GooseStrategy) GetName() string {
	return "goose"
}

func (s *GooseStrategy) MigrateDown(db *gorm.DB, steps int) error {
	s.logger.Infow("starting down migration", "steps", steps)

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	return s.with(func() error {
		for i := 0; i < steps; i++ {
			if err := goose.Down(sqlDB, s.embeddedDir()); err != nil {
				s.logger.Errorw("down migration failed", "error", err)
				return fmt.Errorf("failed to run down migration: %w", err)
			}
		}
		s.logger.Infow("down migration completed successfully")
		return nil
	})
}

func (s *GooseStrategy) GetVersion(db *gorm.DB) (int64, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return 0, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	var version int64
	err = s.with(func() error {
		v, err := goose.GetDBVersion(sqlDB)
		if err != nil {
			return fmt.Errorf("failed to get version: %w", err)
		}
		version = v
		return nil
	})
	return version, err
}

func (s *GooseStrategy) Status(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	return s.with(func() error {
		if err := goose.Status(sqlDB, s.embeddedDir()); err != nil {
			return fmt.Errorf("failed to get status: %w", err)
		}
		return nil
	})
}

// Create writes a new empty SQL migration under baseDir/<dialect dir> on disk.
func (s *GooseStrategy) Create(baseDir, name string) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(nil)
	if err := goose.SetDialect(s.dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	goose.SetSequential(true)
	if err := goose.Create(nil, path.Join(baseDir, s.scriptDir), name, "sql"); err != nil {
		return fmt.Errorf("failed to create migration: %w", err)
	}

	s.logger.Infow("migration created successfully", "name", name, "dialect", s.dialect)
	return nil
}
