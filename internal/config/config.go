package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	DatabaseURL      string
	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string
	Port             string
	LogLevel         logrus.Level
	AutoMigrate      bool
	DBConnectTimeout time.Duration
}

// ProcessEnvironmentVariables loads an optional .env file and reads the
// process environment on top of the defaults.
func ProcessEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	// In all cases the default behavior should be for the docker compose setup
	env := Config{
		PostgresAddress:  "localhost",
		PostgresPort:     "5433",
		PostgresDB:       "postgres",
		PostgresUsername: "postgres",
		PostgresPassword: "testpassword",
		Port:             "3000",
		LogLevel:         logrus.InfoLevel,
		AutoMigrate:      true,
		DBConnectTimeout: 10 * time.Second,
	}

	setString(&env.PostgresAddress, "POSTGRES_ADDRESS")
	setString(&env.PostgresPort, "POSTGRES_PORT")
	setString(&env.PostgresDB, "POSTGRES_DB")
	setString(&env.PostgresUsername, "POSTGRES_USERNAME")
	setString(&env.PostgresPassword, "POSTGRES_PASSWORD")
	setString(&env.Port, "PORT")

	env.DatabaseURL = os.Getenv("DATABASE_URL")
	if len(env.DatabaseURL) == 0 {
		env.DatabaseURL = "postgres://" + env.PostgresUsername + ":" +
			env.PostgresPassword + "@" + env.PostgresAddress + ":" +
			env.PostgresPort + "/" + env.PostgresDB + "?sslmode=disable"
	}

	if v := os.Getenv("LOG_LEVEL"); len(v) != 0 {
		level, err := logrus.ParseLevel(v)
		if err != nil {
			return nil, fmt.Errorf("config: LOG_LEVEL: %w", err)
		}
		env.LogLevel = level
	}

	if v := os.Getenv("AUTO_MIGRATE"); len(v) != 0 {
		autoMigrate, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("config: AUTO_MIGRATE: %w", err)
		}
		env.AutoMigrate = autoMigrate
	}

	if v := os.Getenv("DB_CONNECT_TIMEOUT"); len(v) != 0 {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("config: DB_CONNECT_TIMEOUT: %w", err)
		}
		env.DBConnectTimeout = timeout
	}

	return &env, nil
}

func setString(target *string, key string) {
	if v := os.Getenv(key); len(v) != 0 {
		*target = v
	}
}
