package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/safar/localkirana/internal/config"
	"github.com/safar/localkirana/internal/database"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:      "run_migrations",
		Usage:     "apply or roll back the SQL schema",
		ArgsUsage: "up|down",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "driver", Usage: "postgres or mysql"},
			&cli.StringFlag{Name: "database-url", Usage: "SQL connection string"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("migration failed")
	}
}

func run(c *cli.Context) error {
	direction := c.Args().First()
	if direction != database.MigrateUp && direction != database.MigrateDown {
		return errors.New("direction must be 'up' or 'down'")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if c.IsSet("driver") {
		cfg.Database.Driver = c.String("driver")
	}
	if c.IsSet("database-url") {
		cfg.Database.URL = c.String("database-url")
	}

	if err := database.RunMigrations(&cfg.Database, direction); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"driver":    cfg.Database.Driver,
		"direction": direction,
	}).Info("migrations complete")
	return nil
}
