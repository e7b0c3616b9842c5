package database

import (
	"database/sql"
	"embed"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pkg/errors"
	"github.com/safar/localkirana/internal/config"
)

//go:embed migrations
var migrationFS embed.FS

const (
	MigrateUp   = "up"
	MigrateDown = "down"
)

// RunMigrations applies (up) or reverts (down) the embedded schema for the
// configured driver. It opens and closes its own connection.
func RunMigrations(cfg *config.DatabaseConfig, direction string) error {
	m, err := newMigrate(cfg)
	if err != nil {
		return err
	}
	defer m.Close()

	switch direction {
	case MigrateUp:
		err = m.Up()
	case MigrateDown:
		err = m.Down()
	default:
		return errors.Errorf("unknown migration direction %q", direction)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrapf(err, "migrate %s", direction)
	}
	return nil
}

func newMigrate(cfg *config.DatabaseConfig) (*migrate.Migrate, error) {
	src, err := iofs.New(migrationFS, "migrations/"+cfg.Driver)
	if err != nil {
		return nil, errors.Wrap(err, "open migration source")
	}

	db, err := sql.Open(cfg.Driver, cfg.DSN())
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}

	var driver migratedb.Driver
	switch cfg.Driver {
	case config.DriverPostgres:
		driver, err = migratepg.WithInstance(db, &migratepg.Config{})
	case config.DriverMySQL:
		driver, err = migratemysql.WithInstance(db, &migratemysql.Config{})
	default:
		err = errors.Errorf("unsupported driver %q", cfg.Driver)
	}
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "open migration driver")
	}

	m, err := migrate.NewWithInstance("iofs", src, cfg.Driver, driver)
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create migrator")
	}
	return m, nil
}
