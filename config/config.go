package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

type Database struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
	// Name is the Mongo database; SQL drivers take it from the DSN.
	Name string `yaml:"name"`
}

type Broker struct {
	URL   string `yaml:"url"`
	Queue string `yaml:"queue"`
}

type Config struct {
	HTTPAddr        string   `yaml:"httpAddr"`
	LogLevel        string   `yaml:"logLevel"`
	Database        Database `yaml:"database"`
	Broker          Broker   `yaml:"broker"`
	DefaultPageSize int      `yaml:"defaultPageSize"`
	MaxPageSize     int      `yaml:"maxPageSize"`
	SeedJobs        bool     `yaml:"seedJobs"`
}

func Default() Config {
	return Config{
		HTTPAddr: ":8080",
		LogLevel: "info",
		Database: Database{
			Driver: DriverMySQL,
			Name:   "jobs",
		},
		Broker: Broker{
			Queue: "job_events",
		},
		DefaultPageSize: 10,
		MaxPageSize:     100,
	}
}

// Load builds the configuration from defaults, then the YAML file named by
// CONFIG_FILE, then environment variables. A .env file in the working
// directory is loaded first and never overrides variables already set.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadYAML(path); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.overrideFromEnv(); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadYAML(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config %s: %w", path, err)
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(c); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

func (c *Config) overrideFromEnv() error {
	setString(&c.HTTPAddr, "HTTP_ADDR")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.Database.Driver, "DB_DRIVER")
	setString(&c.Database.DSN, "DB_DSN")
	setString(&c.Database.Name, "DB_NAME")
	setString(&c.Broker.URL, "RABBITMQ_URL")
	setString(&c.Broker.Queue, "RABBITMQ_QUEUE")

	if err := setInt(&c.DefaultPageSize, "DEFAULT_PAGE_SIZE"); err != nil {
		return err
	}
	if err := setInt(&c.MaxPageSize, "MAX_PAGE_SIZE"); err != nil {
		return err
	}
	return setBool(&c.SeedJobs, "SEED_JOBS")
}

func (c Config) Validate() error {
	var errs []error

	switch c.Database.Driver {
	case DriverMySQL, DriverPostgres, DriverSQLite, DriverMongo:
		if c.Database.DSN == "" {
			errs = append(errs, fmt.Errorf("DB_DSN is required for driver %q", c.Database.Driver))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown database driver %q", c.Database.Driver))
	}

	if c.Database.Driver == DriverMongo && c.Database.Name == "" {
		errs = append(errs, errors.New("DB_NAME is required for driver mongo"))
	}
	if c.DefaultPageSize < 1 {
		errs = append(errs, fmt.Errorf("default page size must be at least 1, got %d", c.DefaultPageSize))
	}
	if c.MaxPageSize < c.DefaultPageSize {
		errs = append(errs, fmt.Errorf("max page size %d is below default page size %d", c.MaxPageSize, c.DefaultPageSize))
	}

	return errors.Join(errs...)
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = b
	return nil
}
