package helper

import (
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// DatabaseConfiguration holds the connection settings for Postgres
type DatabaseConfiguration struct {
	Host     string
	Port     string
	Database string
	Username string
	Password string
	Schema   string
	SSLMode  string
}

// Database wraps a connection pool together with its logger
type Database struct {
	Name     string
	Instance *sql.DB
	Logger   *slog.Logger
}

// NewDatabaseConfiguration reads the configuration from the environment.
// A .env file in the working directory is loaded first when present.
func NewDatabaseConfiguration() (*DatabaseConfiguration, error) {
	// .env is optional, explicit environment variables win
	_ = godotenv.Load()

	config := &DatabaseConfiguration{
		Host:     os.Getenv("COREF_DB_HOST"),
		Port:     os.Getenv("COREF_DB_PORT"),
		Database: os.Getenv("COREF_DB_DATABASE"),
		Username: os.Getenv("COREF_DB_USERNAME"),
		Password: os.Getenv("COREF_DB_PASSWORD"),
		Schema:   os.Getenv("COREF_DB_SCHEMA"),
		SSLMode:  os.Getenv("COREF_DB_SSLMODE"),
	}

	if config.Host == "" || config.Port == "" || config.Database == "" || config.Username == "" {
		return nil, NewError("database configuration", fmt.Errorf("%w: COREF_DB_HOST, COREF_DB_PORT, COREF_DB_DATABASE and COREF_DB_USERNAME must be set", ErrMissingConfig))
	}
	if config.Schema == "" {
		config.Schema = "public"
	}
	if config.SSLMode == "" {
		config.SSLMode = "disable"
	}

	return config, nil
}

// ConnectionString returns the lib/pq DSN for the configuration
func (c *DatabaseConfiguration) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s dbname=%s user=%s password=%s sslmode=%s search_path=%s",
		c.Host, c.Port, c.Database, c.Username, c.Password, c.SSLMode, c.Schema,
	)
}

// NewDatabase opens and pings a connection pool, panicking when the database is unreachable
func NewDatabase(name string, config *DatabaseConfiguration, logger *slog.Logger) *Database {
	db, err := ConnectDatabase(name, config, logger)
	if err != nil {
		log.Panicf("error connecting to database %s: %v", name, err)
	}
	return db
}

// ConnectDatabase opens and pings a connection pool
func ConnectDatabase(name string, config *DatabaseConfiguration, logger *slog.Logger) (*Database, error) {
	if config == nil {
		return nil, NewError("database configuration", fmt.Errorf("%w: configuration is nil", ErrMissingConfig))
	}
	if logger == nil {
		logger = NewDiscardLogger()
	}

	instance, err := sql.Open("postgres", config.ConnectionString())
	if err != nil {
		return nil, NewError("open database", err)
	}
	instance.SetMaxOpenConns(10)
	instance.SetConnMaxIdleTime(5 * time.Minute)

	var pingErr error
	for attempt := 0; attempt < 5; attempt++ {
		if pingErr = instance.Ping(); pingErr == nil {
			break
		}
		time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
	}
	if pingErr != nil {
		instance.Close()
		return nil, NewError("ping database", pingErr)
	}

	logger.Info("Connected to database", slog.String("name", name), slog.String("host", config.Host))

	return &Database{
		Name:     name,
		Instance: instance,
		Logger:   logger,
	}, nil
}

// NewTestDatabase opens a database with a debug-level pretty logger
func NewTestDatabase(config *DatabaseConfiguration) *Database {
	return NewDatabase("test", config, NewLogger(os.Stdout, slog.LevelDebug))
}

// Close closes the underlying connection pool
func (d *Database) Close() error {
	if d == nil || d.Instance == nil {
		return nil
	}
	return d.Instance.Close()
}
