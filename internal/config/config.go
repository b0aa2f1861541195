package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/robfig/cron/v3"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/vfg2006/sales-pipeline/internal/forecast/arima"
	"github.com/vfg2006/sales-pipeline/pkg/log"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	App          App          `mapstructure:",squash"`
	Server       Server       `mapstructure:",squash"`
	Database     Database     `mapstructure:",squash"`
	Input        Input        `mapstructure:",squash"`
	Forecast     Forecast     `mapstructure:",squash"`
	Auth         Auth         `mapstructure:",squash"`
	PipelineSync PipelineSync `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

// Input holds the paths of the three source files.
type Input struct {
	SalesAPath     string `mapstructure:"sales_a_path"`
	SalesBPath     string `mapstructure:"sales_b_path"`
	ProductIDsPath string `mapstructure:"product_ids_path"`
}

type Forecast struct {
	RawOrder  string      `mapstructure:"arima_order"`
	Order     arima.Order `mapstructure:"-"`
	Steps     int         `mapstructure:"forecast_steps"`
	SaveModel bool        `mapstructure:"save_model"`
	ModelPath string      `mapstructure:"model_path"`
	PlotPath  string      `mapstructure:"plot_path"`
}

type Auth struct {
	Secret               string        `mapstructure:"auth_secret"`
	TokenTTL             time.Duration `mapstructure:"auth_token_ttl"`
	OperatorUser         string        `mapstructure:"operator_user"`
	OperatorPasswordHash string        `mapstructure:"operator_password_hash"`
}

type PipelineSync struct {
	CronSchedule string `mapstructure:"pipeline_sync_cron"`
	Enabled      bool   `mapstructure:"pipeline_sync_enabled"`
}

// flagKeys maps command line flags to the configuration keys they override.
var flagKeys = map[string]string{
	"sales-a":     "SALES_A_PATH",
	"sales-b":     "SALES_B_PATH",
	"product-ids": "PRODUCT_IDS_PATH",
	"database":    "DATABASE_URL",
	"driver":      "DATABASE_DRIVER",
	"order":       "ARIMA_ORDER",
	"steps":       "FORECAST_STEPS",
	"save-model":  "SAVE_MODEL",
	"model-path":  "MODEL_PATH",
	"plot-path":   "PLOT_PATH",
	"log-level":   "LOG_LEVEL",
	"log-file":    "LOG_FILE",
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("HOST", "localhost")
	v.SetDefault("PORT", 8000)

	v.SetDefault("DATABASE_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_URL", "sales.db")
	v.SetDefault("DATABASE_USER", "")
	v.SetDefault("DATABASE_PASSWORD", "")

	v.SetDefault("SALES_A_PATH", "")
	v.SetDefault("SALES_B_PATH", "")
	v.SetDefault("PRODUCT_IDS_PATH", "")

	v.SetDefault("ARIMA_ORDER", "2,1,0")
	v.SetDefault("FORECAST_STEPS", 12)
	v.SetDefault("SAVE_MODEL", true)
	v.SetDefault("MODEL_PATH", "models/arima_model.json")
	v.SetDefault("PLOT_PATH", "plots/sales_forecast.png")

	v.SetDefault("AUTH_SECRET", "")
	v.SetDefault("AUTH_TOKEN_TTL", "24h")
	v.SetDefault("OPERATOR_USER", "operator")
	v.SetDefault("OPERATOR_PASSWORD_HASH", "")

	v.SetDefault("PIPELINE_SYNC_CRON", "0 2 * * *") // every day at 2am
	v.SetDefault("PIPELINE_SYNC_ENABLED", false)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "logs/pipeline.log")
}

// NewConfig builds the configuration from defaults, the .env file, the
// environment and, when flags is not nil, the command line, in increasing
// order of precedence.
func NewConfig(flags *pflag.FlagSet) (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	v := viper.New()
	SetDefaults(v)

	v.SetConfigType("env")
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		log.L.Debugf("Using variables loaded by godotenv (viper could not read .env): %v", err)
	}

	if flags != nil {
		for name, key := range flagKeys {
			if flag := flags.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, fmt.Errorf("error binding flag %s: %w", name, err)
				}
			}
		}
	}

	config := &Config{}
	err := v.Unmarshal(config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Forecast.Order, err = ParseOrder(config.Forecast.RawOrder)
	if err != nil {
		return nil, err
	}

	config.Database.DSN = BuildDSN(config.Database)

	return config, nil
}

// BuildDSN returns the data source name for the configured driver. SQLite
// uses the URL as a file path.
func BuildDSN(db Database) string {
	if db.Driver != DriverPostgres || strings.Contains(db.URL, "://") {
		return db.URL
	}

	return fmt.Sprintf(
		"%s://%s:%s@%s",
		db.Driver,
		db.User,
		db.Password,
		db.URL,
	)
}

// ParseOrder reads a model order written as "p,d,q", optionally in parentheses.
func ParseOrder(raw string) (arima.Order, error) {
	trimmed := strings.Trim(strings.TrimSpace(raw), "()")
	parts := strings.Split(trimmed, ",")
	if len(parts) != 3 {
		return arima.Order{}, fmt.Errorf("invalid ARIMA_ORDER %q: expected p,d,q", raw)
	}

	values := make([]int, 3)
	for i, part := range parts {
		value, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return arima.Order{}, fmt.Errorf("invalid ARIMA_ORDER %q: %w", raw, err)
		}
		values[i] = value
	}

	order := arima.Order{P: values[0], D: values[1], Q: values[2]}
	if err := order.Validate(); err != nil {
		return arima.Order{}, fmt.Errorf("invalid ARIMA_ORDER %q: %w", raw, err)
	}

	return order, nil
}

// Validate checks the settings a pipeline run depends on.
func (c *Config) Validate() error {
	var errs []error

	if c.Input.SalesAPath == "" {
		errs = append(errs, errors.New("SALES_A_PATH is required"))
	}
	if c.Input.SalesBPath == "" {
		errs = append(errs, errors.New("SALES_B_PATH is required"))
	}
	if c.Input.ProductIDsPath == "" {
		errs = append(errs, errors.New("PRODUCT_IDS_PATH is required"))
	}

	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		errs = append(errs, fmt.Errorf("unsupported DATABASE_DRIVER %q", c.Database.Driver))
	}
	if c.Database.URL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}

	if err := c.Forecast.Order.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Forecast.Steps < 1 {
		errs = append(errs, fmt.Errorf("FORECAST_STEPS must be positive, got %d", c.Forecast.Steps))
	}
	if c.Forecast.SaveModel && c.Forecast.ModelPath == "" {
		errs = append(errs, errors.New("MODEL_PATH is required when SAVE_MODEL is enabled"))
	}
	if c.Forecast.PlotPath == "" {
		errs = append(errs, errors.New("PLOT_PATH is required"))
	}

	return errors.Join(errs...)
}

// ValidateServer checks the settings the HTTP API needs on top of Validate.
func (c *Config) ValidateServer() error {
	var errs []error

	if err := c.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Auth.Secret == "" {
		errs = append(errs, errors.New("AUTH_SECRET is required"))
	}
	if c.Auth.OperatorPasswordHash == "" {
		errs = append(errs, errors.New("OPERATOR_PASSWORD_HASH is required"))
	}
	if _, err := cron.ParseStandard(c.PipelineSync.CronSchedule); c.PipelineSync.Enabled && err != nil {
		errs = append(errs, fmt.Errorf("invalid PIPELINE_SYNC_CRON %q: %w", c.PipelineSync.CronSchedule, err))
	}

	return errors.Join(errs...)
}

// loadEnvFile loads the first .env found in the working directory or its parents.
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		log.L.Warnf("Could not get the working directory: %v", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			log.L.Infof(".env file loaded from: %s", location)
			return
		}
	}

	log.L.Debug("No .env file found in any known location")
}
