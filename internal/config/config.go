package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apierrors "drecli/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Security  SecurityConfig  `yaml:"security" envconfig:"SECURITY"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Statement StatementConfig `yaml:"statement" envconfig:"STATEMENT"`
	Report    ReportConfig    `yaml:"report" envconfig:"REPORT"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`

	// baseDir resolves relative paths; it is the directory of the loaded
	// config file, or empty for the working directory.
	baseDir string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	MaxHeaderBytes  int           `yaml:"max_header_bytes" envconfig:"MAX_HEADER_BYTES" default:"1048576"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	RequestTimeout  time.Duration `yaml:"request_timeout" envconfig:"REQUEST_TIMEOUT" default:"30s"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	RateLimit RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format      string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output      string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/dre.log"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT" default:"false"`
}

// StatementConfig locates the income statement inside the workbook
type StatementConfig struct {
	Workbook    string   `yaml:"workbook" envconfig:"WORKBOOK" default:"data/dre.xlsx"`
	Sheet       string   `yaml:"sheet" envconfig:"SHEET" default:"DRE_dummy"`
	IndexColumn string   `yaml:"index_column" envconfig:"INDEX_COLUMN" default:"Variaveis"`
	Months      []string `yaml:"months" envconfig:"MONTHS" default:"Jan,Fev,Mar,Abr,Mai,Jun,Jul,Ago,Set,Out,Nov,Dez"`
}

// ReportConfig controls how derived views are computed and written
type ReportConfig struct {
	BaseColumn     string   `yaml:"base_column" envconfig:"BASE_COLUMN" default:"receita_operacional_bruta"`
	DefaultPeriods []string `yaml:"default_periods" envconfig:"DEFAULT_PERIODS" default:"Jan,Fev,Mar"`
	CategoriesFile string   `yaml:"categories_file" envconfig:"CATEGORIES_FILE"`
	MaxParallel    int      `yaml:"max_parallel" envconfig:"MAX_PARALLEL" default:"4"`
	OutputDir      string   `yaml:"output_dir" envconfig:"OUTPUT_DIR" default:"reports"`
}

// TelemetryConfig contains OpenTelemetry configuration
type TelemetryConfig struct {
	ServiceName    string  `yaml:"service_name" envconfig:"SERVICE_NAME" default:"dre-report"`
	Environment    string  `yaml:"environment" envconfig:"ENVIRONMENT" default:"development"`
	EnableTracing  bool    `yaml:"enable_tracing" envconfig:"ENABLE_TRACING" default:"false"`
	EnableMetrics  bool    `yaml:"enable_metrics" envconfig:"ENABLE_METRICS" default:"true"`
	TraceExporter  string  `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" default:"stdout"`
	MetricExporter string  `yaml:"metric_exporter" envconfig:"METRIC_EXPORTER" default:"prometheus"`
	SampleRatio    float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO" default:"1.0"`
}

// Load loads configuration from environment variables and the first config
// file found. Environment values that differ from the defaults win over the
// file. A .env file in the working directory, when present, seeds variables
// that are not already set.
func Load() (*Config, error) {
	if err := loadDotEnv(DotEnvFile); err != nil {
		return nil, err
	}
	return LoadFile(getConfigFilePath())
}

// loadDotEnv exports the variables of path without overriding the process
// environment. A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// LoadFile is Load with an explicit config file; an empty path means
// environment and defaults only.
func LoadFile(configFile string) (*Config, error) {
	var cfg Config

	// Load from environment variables first
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg, *Default())
		cfg.baseDir = filepath.Dir(configFile)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	// Fields absent from the file keep their defaults.
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// pick returns the env value when it differs from the default, else the
// file value (which is the default itself when the file omits the field).
func pick[T comparable](file, env, def T) T {
	if env != def {
		return env
	}
	return file
}

func pickSlice(file, env, def []string) []string {
	if !slices.Equal(env, def) {
		return env
	}
	return file
}

// mergeConfigs merges file config with env config (env takes precedence)
func mergeConfigs(file, env, def Config) Config {
	out := env

	out.Server.Port = pick(file.Server.Port, env.Server.Port, def.Server.Port)
	out.Server.ReadTimeout = pick(file.Server.ReadTimeout, env.Server.ReadTimeout, def.Server.ReadTimeout)
	out.Server.WriteTimeout = pick(file.Server.WriteTimeout, env.Server.WriteTimeout, def.Server.WriteTimeout)
	out.Server.IdleTimeout = pick(file.Server.IdleTimeout, env.Server.IdleTimeout, def.Server.IdleTimeout)
	out.Server.MaxHeaderBytes = pick(file.Server.MaxHeaderBytes, env.Server.MaxHeaderBytes, def.Server.MaxHeaderBytes)
	out.Server.ShutdownTimeout = pick(file.Server.ShutdownTimeout, env.Server.ShutdownTimeout, def.Server.ShutdownTimeout)
	out.Server.RequestTimeout = pick(file.Server.RequestTimeout, env.Server.RequestTimeout, def.Server.RequestTimeout)

	out.Security.RateLimit.Enabled = pick(file.Security.RateLimit.Enabled, env.Security.RateLimit.Enabled, def.Security.RateLimit.Enabled)
	out.Security.RateLimit.RPS = pick(file.Security.RateLimit.RPS, env.Security.RateLimit.RPS, def.Security.RateLimit.RPS)
	out.Security.RateLimit.Burst = pick(file.Security.RateLimit.Burst, env.Security.RateLimit.Burst, def.Security.RateLimit.Burst)

	out.Logging.Level = pick(file.Logging.Level, env.Logging.Level, def.Logging.Level)
	out.Logging.Format = pick(file.Logging.Format, env.Logging.Format, def.Logging.Format)
	out.Logging.Output = pick(file.Logging.Output, env.Logging.Output, def.Logging.Output)
	out.Logging.FilePath = pick(file.Logging.FilePath, env.Logging.FilePath, def.Logging.FilePath)
	out.Logging.Development = pick(file.Logging.Development, env.Logging.Development, def.Logging.Development)

	out.Statement.Workbook = pick(file.Statement.Workbook, env.Statement.Workbook, def.Statement.Workbook)
	out.Statement.Sheet = pick(file.Statement.Sheet, env.Statement.Sheet, def.Statement.Sheet)
	out.Statement.IndexColumn = pick(file.Statement.IndexColumn, env.Statement.IndexColumn, def.Statement.IndexColumn)
	out.Statement.Months = pickSlice(file.Statement.Months, env.Statement.Months, def.Statement.Months)

	out.Report.BaseColumn = pick(file.Report.BaseColumn, env.Report.BaseColumn, def.Report.BaseColumn)
	out.Report.DefaultPeriods = pickSlice(file.Report.DefaultPeriods, env.Report.DefaultPeriods, def.Report.DefaultPeriods)
	out.Report.CategoriesFile = pick(file.Report.CategoriesFile, env.Report.CategoriesFile, def.Report.CategoriesFile)
	out.Report.MaxParallel = pick(file.Report.MaxParallel, env.Report.MaxParallel, def.Report.MaxParallel)
	out.Report.OutputDir = pick(file.Report.OutputDir, env.Report.OutputDir, def.Report.OutputDir)

	out.Telemetry.ServiceName = pick(file.Telemetry.ServiceName, env.Telemetry.ServiceName, def.Telemetry.ServiceName)
	out.Telemetry.Environment = pick(file.Telemetry.Environment, env.Telemetry.Environment, def.Telemetry.Environment)
	out.Telemetry.EnableTracing = pick(file.Telemetry.EnableTracing, env.Telemetry.EnableTracing, def.Telemetry.EnableTracing)
	out.Telemetry.EnableMetrics = pick(file.Telemetry.EnableMetrics, env.Telemetry.EnableMetrics, def.Telemetry.EnableMetrics)
	out.Telemetry.TraceExporter = pick(file.Telemetry.TraceExporter, env.Telemetry.TraceExporter, def.Telemetry.TraceExporter)
	out.Telemetry.MetricExporter = pick(file.Telemetry.MetricExporter, env.Telemetry.MetricExporter, def.Telemetry.MetricExporter)
	out.Telemetry.SampleRatio = pick(file.Telemetry.SampleRatio, env.Telemetry.SampleRatio, def.Telemetry.SampleRatio)

	return out
}

// validate validates the configuration
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}

	if c.Security.RateLimit.Enabled && c.Security.RateLimit.RPS <= 0 {
		return fmt.Errorf("rate limit rps must be positive when enabled")
	}

	switch c.Logging.Output {
	case "console", "file", "both":
	default:
		return fmt.Errorf("invalid logging output %q", c.Logging.Output)
	}

	if c.Logging.Format != "json" {
		// Always use JSON format
		c.Logging.Format = "json"
	}

	if c.Statement.Sheet == "" || c.Statement.IndexColumn == "" {
		return apierrors.NewAppValidationError("statement sheet and index column are required")
	}

	if len(c.Statement.Months) == 0 {
		return apierrors.NewAppValidationError("at least one statement month must be configured")
	}

	for _, p := range c.Report.DefaultPeriods {
		if !slices.Contains(c.Statement.Months, p) {
			return apierrors.NewAppValidationError(fmt.Sprintf("default period %q is not a statement month", p)).
				With("period", p)
		}
	}

	if c.Report.BaseColumn == "" {
		return apierrors.NewAppValidationError("report base column is required")
	}

	if c.Report.MaxParallel <= 0 {
		c.Report.MaxParallel = 1
	}

	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		return fmt.Errorf("telemetry sample ratio must be within [0, 1], got %g", c.Telemetry.SampleRatio)
	}

	return nil
}

// ResolvePath interprets a relative p against the config file directory.
// Absolute and empty paths are returned unchanged.
func (c *Config) ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) || c.baseDir == "" {
		return p
	}
	return filepath.Join(c.baseDir, p)
}

// WorkbookPath returns the resolved statement workbook path
func (c *Config) WorkbookPath() string {
	return c.ResolvePath(c.Statement.Workbook)
}

// OutputDir returns the resolved report output directory
func (c *Config) OutputDir() string {
	return c.ResolvePath(c.Report.OutputDir)
}

// CategoriesPath returns the resolved category file path, empty when the
// built-in categories are used.
func (c *Config) CategoriesPath() string {
	return c.ResolvePath(c.Report.CategoriesFile)
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if explicit := os.Getenv(EnvPrefix + "_CONFIG_FILE"); explicit != "" {
		return explicit
	}

	for _, location := range configFileLocations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			MaxHeaderBytes:  1 << 20, // 1MB
			ShutdownTimeout: 30 * time.Second,
			RequestTimeout:  30 * time.Second,
		},
		Security: SecurityConfig{
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     100,
				Burst:   50,
			},
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/dre.log",
		},
		Statement: StatementConfig{
			Workbook:    "data/dre.xlsx",
			Sheet:       DefaultSheet,
			IndexColumn: DefaultIndexColumn,
			Months:      slices.Clone(Months),
		},
		Report: ReportConfig{
			BaseColumn:     "receita_operacional_bruta",
			DefaultPeriods: []string{"Jan", "Fev", "Mar"},
			MaxParallel:    4,
			OutputDir:      "reports",
		},
		Telemetry: TelemetryConfig{
			ServiceName:    "dre-report",
			Environment:    "development",
			EnableMetrics:  true,
			TraceExporter:  "stdout",
			MetricExporter: "prometheus",
			SampleRatio:    1.0,
		},
	}
}
