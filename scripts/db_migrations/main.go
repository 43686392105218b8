package main

import (
	"errors"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	server_config "github.com/carson-networks/expense-server/internal/config"
	"github.com/carson-networks/expense-server/internal/storage"
)

func main() {
	app := &cli.App{
		Name:     "db_migrations",
		Usage:    "manage the expenses database schema",
		Action:   up,
		Commands: []*cli.Command{
			{
				Name:   "up",
				Usage:  "apply all pending migrations",
				Action: up,
			},
			{
				Name:   "down",
				Usage:  "roll back every migration",
				Action: down,
			},
			{
				Name:   "version",
				Usage:  "print the current schema version",
				Action: version,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("db_migrations")
	}
}

func openStorage(c *cli.Context) (*storage.Storage, error) {
	env, err := server_config.ProcessEnvironmentVariables()
	if err != nil {
		return nil, err
	}
	return storage.Open(c.Context, env.DatabaseURL, env.DBConnectTimeout)
}

func up(c *cli.Context) error {
	store, err := openStorage(c)
	if err != nil {
		return err
	}
	defer store.Close()

	preMigrationVersion, postMigrationVersion, err := storage.Migrate(store.DB)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"preMigrationVersion":  preMigrationVersion,
		"postMigrationVersion": postMigrationVersion,
	}).Info("Migration status")
	return nil
}

func down(c *cli.Context) error {
	store, err := openStorage(c)
	if err != nil {
		return err
	}
	defer store.Close()

	m, err := storage.NewMigrator(store.DB)
	if err != nil {
		return err
	}
	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	logrus.Info("Migrations rolled back")
	return nil
}

func version(c *cli.Context) error {
	store, err := openStorage(c)
	if err != nil {
		return err
	}
	defer store.Close()

	m, err := storage.NewMigrator(store.DB)
	if err != nil {
		return err
	}
	v, err := storage.Version(m)
	if err != nil {
		return err
	}

	logrus.WithField("version", v).Info("Schema version")
	return nil
}
