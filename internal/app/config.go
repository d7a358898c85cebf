package app

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/vladislavdragonenkov/posledger/internal/service/ledger"
)

// EnvPrefix: префикс переменных окружения: POSLEDGER_HTTP_ADDR и т.д.
const EnvPrefix = "POSLEDGER"

// StorageDriver выбирает реализацию хранилища ledger.
type StorageDriver string

const (
	StorageDriverMemory   StorageDriver = "memory"
	StorageDriverPostgres StorageDriver = "postgres"
	StorageDriverSQLite   StorageDriver = "sqlite"
)

// Форматы логов.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config описывает настройки запуска сервиса. Значения без слайсов и map,
// чтобы конфигурации можно было сравнивать через ==.
type Config struct {
	GRPCAddr    string `mapstructure:"grpc_addr" yaml:"grpc_addr"`
	HTTPAddr    string `mapstructure:"http_addr" yaml:"http_addr"`
	MetricsAddr string `mapstructure:"metrics_addr" yaml:"metrics_addr"`

	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`

	StorageDriver StorageDriver `mapstructure:"storage_driver" yaml:"storage_driver"`
	PostgresDSN   string        `mapstructure:"postgres_dsn" yaml:"postgres_dsn"`
	SQLitePath    string        `mapstructure:"sqlite_path" yaml:"sqlite_path"`
	AutoMigrate   bool          `mapstructure:"auto_migrate" yaml:"auto_migrate"`

	VoidPolicy string `mapstructure:"void_policy" yaml:"void_policy"`

	// KafkaBrokers: список через запятую; пустое значение отключает Kafka.
	KafkaBrokers  string `mapstructure:"kafka_brokers" yaml:"kafka_brokers"`
	KafkaClientID string `mapstructure:"kafka_client_id" yaml:"kafka_client_id"`

	OutboxPollInterval time.Duration `mapstructure:"outbox_poll_interval" yaml:"outbox_poll_interval"`
	OutboxBatchSize    int           `mapstructure:"outbox_batch_size" yaml:"outbox_batch_size"`
	OutboxMaxAttempts  int           `mapstructure:"outbox_max_attempts" yaml:"outbox_max_attempts"`
	OutboxRetryDelay   time.Duration `mapstructure:"outbox_retry_delay" yaml:"outbox_retry_delay"`

	IdempotencyTTL              time.Duration `mapstructure:"idempotency_ttl" yaml:"idempotency_ttl"`
	IdempotencyCleanupInterval  time.Duration `mapstructure:"idempotency_cleanup_interval" yaml:"idempotency_cleanup_interval"`
	IdempotencyCleanupBatchSize int           `mapstructure:"idempotency_cleanup_batch_size" yaml:"idempotency_cleanup_batch_size"`

	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// DefaultConfig возвращает конфигурацию одной кассы: память, без Kafka.
func DefaultConfig() Config {
	return Config{
		GRPCAddr:                    ":50051",
		HTTPAddr:                    ":8080",
		MetricsAddr:                 ":9090",
		LogLevel:                    "info",
		LogFormat:                   LogFormatText,
		StorageDriver:               StorageDriverMemory,
		SQLitePath:                  "posledger.db",
		AutoMigrate:                 true,
		VoidPolicy:                  string(ledger.VoidRestock),
		KafkaClientID:               "posledger",
		OutboxPollInterval:          time.Second,
		OutboxBatchSize:             100,
		OutboxMaxAttempts:           3,
		OutboxRetryDelay:            100 * time.Millisecond,
		IdempotencyTTL:              24 * time.Hour,
		IdempotencyCleanupInterval:  time.Minute,
		IdempotencyCleanupBatchSize: 500,
		ShutdownTimeout:             5 * time.Second,
	}
}

func (c Config) defaults() map[string]any {
	return map[string]any{
		"grpc_addr":                      c.GRPCAddr,
		"http_addr":                      c.HTTPAddr,
		"metrics_addr":                   c.MetricsAddr,
		"log_level":                      c.LogLevel,
		"log_format":                     c.LogFormat,
		"storage_driver":                 string(c.StorageDriver),
		"postgres_dsn":                   c.PostgresDSN,
		"sqlite_path":                    c.SQLitePath,
		"auto_migrate":                   c.AutoMigrate,
		"void_policy":                    c.VoidPolicy,
		"kafka_brokers":                  c.KafkaBrokers,
		"kafka_client_id":                c.KafkaClientID,
		"outbox_poll_interval":           c.OutboxPollInterval,
		"outbox_batch_size":              c.OutboxBatchSize,
		"outbox_max_attempts":            c.OutboxMaxAttempts,
		"outbox_retry_delay":             c.OutboxRetryDelay,
		"idempotency_ttl":                c.IdempotencyTTL,
		"idempotency_cleanup_interval":   c.IdempotencyCleanupInterval,
		"idempotency_cleanup_batch_size": c.IdempotencyCleanupBatchSize,
		"shutdown_timeout":               c.ShutdownTimeout,
	}
}

// LoadConfig собирает конфигурацию по приоритету: флаги (уже привязанные к v
// через BindPFlags), переменные POSLEDGER_*, YAML-файл configFile, значения по умолчанию.
func LoadConfig(v *viper.Viper, configFile string) (Config, error) {
	if v == nil {
		v = viper.New()
	}
	for key, value := range DefaultConfig().defaults() {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.StorageDriver = StorageDriver(strings.ToLower(strings.TrimSpace(string(cfg.StorageDriver))))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate проверяет согласованность настроек до старта зависимостей.
func (c Config) Validate() error {
	var errs []error

	switch c.StorageDriver {
	case StorageDriverMemory:
	case StorageDriverPostgres:
		if strings.TrimSpace(c.PostgresDSN) == "" {
			errs = append(errs, errors.New("postgres_dsn is required for postgres storage"))
		}
	case StorageDriverSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			errs = append(errs, errors.New("sqlite_path is required for sqlite storage"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported storage driver %q", c.StorageDriver))
	}

	if _, err := ledger.ParseVoidPolicy(c.VoidPolicy); err != nil {
		errs = append(errs, err)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if c.LogFormat != LogFormatText && c.LogFormat != LogFormatJSON {
		errs = append(errs, fmt.Errorf("unsupported log format %q", c.LogFormat))
	}
	if c.GRPCAddr == "" || c.HTTPAddr == "" || c.MetricsAddr == "" {
		errs = append(errs, errors.New("grpc_addr, http_addr and metrics_addr must be set"))
	}
	if c.OutboxBatchSize <= 0 || c.OutboxMaxAttempts <= 0 || c.OutboxPollInterval <= 0 {
		errs = append(errs, errors.New("outbox poll interval, batch size and max attempts must be positive"))
	}
	if c.IdempotencyTTL <= 0 || c.IdempotencyCleanupInterval <= 0 || c.IdempotencyCleanupBatchSize <= 0 {
		errs = append(errs, errors.New("idempotency ttl and cleanup settings must be positive"))
	}

	return errors.Join(errs...)
}

// Brokers разбирает KafkaBrokers в список адресов.
func (c Config) Brokers() []string {
	var brokers []string
	for _, broker := range strings.Split(c.KafkaBrokers, ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			brokers = append(brokers, broker)
		}
	}
	return brokers
}

// YAML отдаёт действующую конфигурацию с замаскированным паролем DSN.
func (c Config) YAML() ([]byte, error) {
	c.PostgresDSN = redactDSN(c.PostgresDSN)
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return out, nil
}

func redactDSN(dsn string) string {
	parsed, err := url.Parse(dsn)
	if err != nil || parsed.User == nil {
		return dsn
	}
	if _, ok := parsed.User.Password(); !ok {
		return dsn
	}
	parsed.User = url.UserPassword(parsed.User.Username(), "xxxxx")
	return parsed.String()
}

// ConfigureLogger применяет уровень и формат из конфигурации.
func ConfigureLogger(logger *log.Logger, cfg Config) error {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	logger.SetLevel(level)

	switch cfg.LogFormat {
	case LogFormatJSON:
		logger.SetFormatter(&log.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	default:
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return nil
}
