package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/safar/localkirana/internal/auth"
	"github.com/safar/localkirana/internal/catalog"
	"github.com/safar/localkirana/internal/config"
	"github.com/safar/localkirana/internal/database"
	"github.com/safar/localkirana/internal/filestore"
	"github.com/safar/localkirana/internal/service"
	"github.com/safar/localkirana/internal/sqlstore"
	"github.com/safar/localkirana/internal/transport"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

var serveFlags = []cli.Flag{
	&cli.StringFlag{Name: "port", Usage: "listen port"},
	&cli.StringFlag{Name: "backend", Usage: "storage backend: file or sql"},
	&cli.StringFlag{Name: "data-dir", Usage: "directory of the JSON collections"},
	&cli.StringFlag{Name: "driver", Usage: "SQL driver: postgres or mysql"},
	&cli.StringFlag{Name: "database-url", Usage: "SQL connection string"},
	&cli.StringFlag{Name: "log-level", Usage: "logrus level"},
	&cli.BoolFlag{Name: "migrate", Usage: "apply schema migrations before serving"},
}

// applyFlags lets explicitly set flags override the environment.
func applyFlags(c *cli.Context, cfg *config.Config) error {
	if c.IsSet("port") {
		cfg.Server.Port = c.String("port")
	}
	if c.IsSet("backend") {
		cfg.Backend = c.String("backend")
	}
	if c.IsSet("data-dir") {
		cfg.DataDir = c.String("data-dir")
	}
	if c.IsSet("driver") {
		cfg.Database.Driver = c.String("driver")
	}
	if c.IsSet("database-url") {
		cfg.Database.URL = c.String("database-url")
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	return cfg.Validate()
}

func newLogger(cfg config.LogConfig) (*logrus.Logger, error) {
	log := logrus.New()
	if cfg.Format == "text" {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, errors.Wrapf(err, "log level %q", cfg.Level)
	}
	log.SetLevel(level)
	return log, nil
}

func openBackend(cfg *config.Config, migrate bool, hasher auth.PasswordHasher, log logrus.FieldLogger) (service.Backend, error) {
	if cfg.Backend == config.BackendFile {
		log.WithField("dir", cfg.DataDir).Info("using file storage")
		fs, err := filestore.Open(cfg.DataDir, hasher, log)
		if err != nil {
			return nil, err
		}
		return fs, nil
	}

	if migrate {
		if err := database.RunMigrations(&cfg.Database, database.MigrateUp); err != nil {
			return nil, err
		}
		log.Info("schema migrations applied")
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, err
	}
	log.WithField("driver", cfg.Database.Driver).Info("connected to database")
	return sqlstore.New(db), nil
}

func serve(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := applyFlags(c, cfg); err != nil {
		return err
	}

	log, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	backend, err := openBackend(cfg, c.Bool("migrate"), hasher, log)
	if err != nil {
		return errors.Wrap(err, "open storage backend")
	}
	defer backend.Close()

	svc := service.New(backend, hasher, catalog.Default(), service.NewLogNotifier(log), log)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      transport.Router(svc, backend, log),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithField("port", cfg.Server.Port).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return errors.Wrap(err, "listen")
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
