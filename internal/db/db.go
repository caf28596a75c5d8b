package db

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/volleyhub/registration-api/internal/config"
	"github.com/volleyhub/registration-api/internal/repository/dao"
)

func OpenPostgres(conf *config.PostgresConfig) (*gorm.DB, error) {
	return OpenPostgresWithURL(conf.DSN())
}

func OpenPostgresWithURL(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("gorm.Open -> %w", err)
	}

	return migrate(db)
}

// OpenSQLite opens (creating if needed) a SQLite file with foreign key
// enforcement switched on.
func OpenSQLite(filename string) (*gorm.DB, error) {
	if filename != ":memory:" && !strings.HasPrefix(filename, "file:") {
		if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
			return nil, fmt.Errorf("os.MkdirAll -> %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(EnsureForeignKeysDSN(filename)), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("gorm.Open -> %w", err)
	}

	return migrate(db)
}

// Open picks the driver named in the configuration. DATABASE_URL, when set,
// wins over the postgres block.
func Open(conf *config.AppConfig) (*gorm.DB, error) {
	switch conf.Database.Driver {
	case "sqlite":
		return OpenSQLite(conf.SQLite.Filename)
	default:
		if url := os.Getenv("DATABASE_URL"); url != "" {
			return OpenPostgresWithURL(url)
		}
		return OpenPostgres(conf.Postgres)
	}
}

// EnsureForeignKeysDSN appends _fk=1 to a SQLite DSN unless already present.
func EnsureForeignKeysDSN(dsn string) string {
	if strings.Contains(dsn, "_fk=") || strings.Contains(dsn, "_foreign_keys=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_fk=1"
	}
	return dsn + "?_fk=1"
}

func migrate(db *gorm.DB) (*gorm.DB, error) {
	if err := dao.InitTables(db); err != nil {
		return nil, fmt.Errorf("dao.InitTables -> %w", err)
	}
	zap.L().Info("database schema is up to date")

	return db, nil
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	}
}
