package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/nkiryanov/orderprocessor/internal/logger"
)

const (
	ExportFormatCSV  = "csv"
	ExportFormatXLSX = "xlsx"
)

const (
	defaultListenAddr     = "localhost:8000"
	defaultLoggingLevel   = logger.LevelInfo
	defaultClassifierAddr = "http://localhost:3000"
	defaultEnvironment    = logger.EnvProduction
	defaultExportDir      = "."
	defaultExportFormat   = ExportFormatCSV
)

type Config struct {
	// Default logging level
	LogLevel string

	// Address on which the service will be run
	ListenAddr string

	// Database to connect to
	DatabaseDSN string

	// Classifier service address to connect to, with scheme
	ClassifierAddr string

	// Fail fast when classifier is down
	ClassifierBreaker bool

	// Where type A exports are created and in which format (csv, xlsx)
	ExportDir    string
	ExportFormat string

	// Cron schedule of processing passes and users to process
	// Scheduler is off if schedule or users are empty
	Schedule      string
	ScheduleUsers []int64

	// Environment
	Environment string
}

func NewConfig() *Config {
	return &Config{
		LogLevel:          defaultLoggingLevel,
		ListenAddr:        defaultListenAddr,
		ClassifierAddr:    defaultClassifierAddr,
		ClassifierBreaker: true,
		ExportDir:         defaultExportDir,
		ExportFormat:      defaultExportFormat,
		Environment:       defaultEnvironment,
	}
}

// Load variable from '.env' file (should be located at working directory)
func (c *Config) LoadDotEnv(getwd func() (string, error)) error {
	wd, err := getwd()
	if err != nil {
		return err
	}

	envMap, err := godotenv.Read(filepath.Join(wd, ".env"))

	switch {
	case err == nil:
		return c.LoadEnv(func(key string) string {
			return envMap[key]
		})
	case errors.Is(err, os.ErrNotExist):
		return nil
	default:
		return err
	}
}

func (c *Config) LoadEnv(getenv func(string) string) error {
	// Set option to value if it not empty
	setString := func(o *string) func(value string) error {
		return func(value string) error {
			if value != "" {
				*o = value
			}
			return nil
		}
	}
	setBool := func(o *bool) func(value string) error {
		return func(value string) error {
			if value == "" {
				return nil
			}
			b, err := strconv.ParseBool(value)
			if err != nil {
				return err
			}
			*o = b
			return nil
		}
	}
	setInt64s := func(o *[]int64) func(value string) error {
		return func(value string) error {
			if value == "" {
				return nil
			}
			ids, err := parseInt64s(value)
			if err != nil {
				return err
			}
			*o = ids
			return nil
		}
	}

	envMap := map[string]func(string) error{
		"RUN_ADDRESS":        setString(&c.ListenAddr),
		"DATABASE_URI":       setString(&c.DatabaseDSN),
		"LOG_LEVEL":          setString(&c.LogLevel),
		"CLASSIFIER_ADDRESS": setString(&c.ClassifierAddr),
		"CLASSIFIER_BREAKER": setBool(&c.ClassifierBreaker),
		"EXPORT_DIR":         setString(&c.ExportDir),
		"EXPORT_FORMAT":      setString(&c.ExportFormat),
		"SCHEDULE":           setString(&c.Schedule),
		"SCHEDULE_USERS":     setInt64s(&c.ScheduleUsers),
		"ENVIRONMENT":        setString(&c.Environment),
	}

	var errs []error
	for key, parseFn := range envMap {
		if err := parseFn(getenv(key)); err != nil {
			errs = append(errs, fmt.Errorf("invalid %s: %w", key, err))
		}
	}

	return errors.Join(errs...)
}

func (c *Config) ParseFlags(args []string) error {
	fs := pflag.NewFlagSet("orderprocessor", pflag.ContinueOnError)

	fs.StringVarP(&c.ListenAddr, "address", "a", c.ListenAddr, "Server listen address")
	fs.StringVarP(&c.DatabaseDSN, "database", "d", c.DatabaseDSN, "Database connection string")
	fs.StringVarP(&c.LogLevel, "log-level", "l", c.LogLevel, "Logging level (debug, info, warn, error)")
	fs.StringVarP(&c.ClassifierAddr, "classifier", "c", c.ClassifierAddr, "Classifier service address")
	fs.BoolVar(&c.ClassifierBreaker, "classifier-breaker", c.ClassifierBreaker, "Use circuit breaker for classifier requests")
	fs.StringVar(&c.ExportDir, "export-dir", c.ExportDir, "Directory for order exports")
	fs.StringVar(&c.ExportFormat, "export-format", c.ExportFormat, "Order export format (csv, xlsx)")
	fs.StringVar(&c.Schedule, "schedule", c.Schedule, "Cron schedule of processing passes, e.g. '@every 5m'")
	fs.Int64SliceVar(&c.ScheduleUsers, "schedule-users", c.ScheduleUsers, "Users processed on schedule, comma separated")
	fs.StringVarP(&c.Environment, "environment", "e", c.Environment, "Environment (dev, prod)")

	return fs.Parse(args)
}

// Validate checks options that could not be checked while parsing
func (c *Config) Validate() error {
	var errs []error

	if c.DatabaseDSN == "" {
		errs = append(errs, errors.New("database dsn is required"))
	}

	switch c.ExportFormat {
	case ExportFormatCSV, ExportFormatXLSX:
	default:
		errs = append(errs, fmt.Errorf("unknown export format %q", c.ExportFormat))
	}

	for _, id := range c.ScheduleUsers {
		if id <= 0 {
			errs = append(errs, fmt.Errorf("user id must be positive, got %d", id))
		}
	}

	return errors.Join(errs...)
}

// Scheduler is on if both schedule and users set
func (c *Config) SchedulerEnabled() bool {
	return c.Schedule != "" && len(c.ScheduleUsers) > 0
}

func parseInt64s(value string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(value, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
