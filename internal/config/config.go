package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// ErrInvalidConfig возвращается, если конфигурация непригодна для запуска
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса (config.toml + переменные окружения)
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Redis    RedisConfig    `toml:"redis"`
	Report   ReportConfig   `toml:"report"`
	Booking  BookingConfig  `toml:"booking"`

	// Periods переопределяет расписание по умолчанию, если не пусто
	Periods []PeriodConfig `toml:"periods"`
}

// ServerConfig HTTP сервер. Таймауты в секундах.
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig хранилище бронирований
type DatabaseConfig struct {
	Driver string `toml:"driver"` // postgres | sqlite3

	// PostgreSQL
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	DBName   string `toml:"dbname"`
	SSLMode  string `toml:"sslmode"`

	// SQLite
	Path string `toml:"path"`

	MaxOpenConns    int `toml:"max_open_conns"`
	MaxIdleConns    int `toml:"max_idle_conns"`
	ConnMaxLifetime int `toml:"conn_max_lifetime"` // секунды

	QueryTimeout         int `toml:"query_timeout"` // секунды
	SerializationRetries int `toml:"serialization_retries"`
}

// LogsConfig логирование
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// RedisConfig межпроцессная блокировка даты
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	LockTTL  int    `toml:"lock_ttl"`  // секунды
	LockWait int    `toml:"lock_wait"` // секунды
}

// ReportConfig доступ к отчету по PIN
type ReportConfig struct {
	PinHash       string `toml:"pin_hash"` // bcrypt
	SessionSecret string `toml:"session_secret"`
	SessionTTL    int    `toml:"session_ttl"`     // секунды
	AuthRateLimit int    `toml:"auth_rate_limit"` // попыток в минуту с одного IP
}

// BookingConfig правила приема заявок
type BookingConfig struct {
	// Timezone часовой пояс, в котором определяется "сегодня"
	Timezone string `toml:"timezone"`
}

// PeriodConfig урок расписания в config.toml
type PeriodConfig struct {
	Number int    `toml:"number"`
	Start  string `toml:"start"`
	End    string `toml:"end"`
	Blocks []int  `toml:"blocks"`
}

// Load читает config.toml, затем .env (если есть) и переменные окружения
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	// .env необязателен
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("DB_DRIVER"); v != "" {
		c.Database.Driver = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("REPORT_PIN_HASH"); v != "" {
		c.Report.PinHash = v
	}
	if v := os.Getenv("REPORT_SESSION_SECRET"); v != "" {
		c.Report.SessionSecret = v
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: HTTP_PORT=%q is not a number", ErrInvalidConfig, v)
		}
		c.Server.HTTPPort = port
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}

	if c.Database.Driver == "" {
		c.Database.Driver = "postgres"
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.Path == "" {
		c.Database.Path = "data/bookings.db"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}
	if c.Database.QueryTimeout == 0 {
		c.Database.QueryTimeout = 5
	}
	if c.Database.SerializationRetries == 0 {
		c.Database.SerializationRetries = 3
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "slot-booking-service"
	}

	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.Redis.LockTTL == 0 {
		c.Redis.LockTTL = 10
	}
	if c.Redis.LockWait == 0 {
		c.Redis.LockWait = 5
	}

	if c.Report.SessionTTL == 0 {
		c.Report.SessionTTL = 8 * 60 * 60
	}
	if c.Report.AuthRateLimit == 0 {
		c.Report.AuthRateLimit = 5
	}

	if c.Booking.Timezone == "" {
		c.Booking.Timezone = "UTC"
	}
}

// Validate проверяет, что с конфигурацией можно запуститься
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port=%d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}

	switch c.Database.Driver {
	case "postgres":
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database.host and database.dbname are required for postgres", ErrInvalidConfig)
		}
	case "sqlite3":
		if c.Database.Path == "" {
			return fmt.Errorf("%w: database.path is required for sqlite3", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unsupported database.driver %q", ErrInvalidConfig, c.Database.Driver)
	}

	if c.Report.PinHash == "" {
		return fmt.Errorf("%w: report.pin_hash is required (or REPORT_PIN_HASH)", ErrInvalidConfig)
	}
	if len(c.Report.SessionSecret) < 16 {
		return fmt.Errorf("%w: report.session_secret must be at least 16 characters", ErrInvalidConfig)
	}

	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("%w: booking.timezone: %v", ErrInvalidConfig, err)
	}

	if _, err := c.DomainPeriods(); err != nil {
		return fmt.Errorf("%w: periods: %v", ErrInvalidConfig, err)
	}

	return nil
}

// DSN строка подключения для database/sql под выбранный драйвер
func (d DatabaseConfig) DSN() string {
	if d.Driver == "sqlite3" {
		// _txlock=immediate: транзакция записи берет блокировку сразу на BEGIN
		return d.Path + "?_journal_mode=WAL&_busy_timeout=5000&_txlock=immediate&_foreign_keys=on"
	}

	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, quoteDSNValue(d.Password), d.DBName, d.SSLMode)
}

// quoteDSNValue экранирует значение для key=value DSN lib/pq
func quoteDSNValue(v string) string {
	if v == "" {
		return "''"
	}
	needQuote := false
	for _, r := range v {
		if r == ' ' || r == '\'' || r == '\\' {
			needQuote = true
			break
		}
	}
	if !needQuote {
		return v
	}
	escaped := make([]rune, 0, len(v)+2)
	escaped = append(escaped, '\'')
	for _, r := range v {
		if r == '\'' || r == '\\' {
			escaped = append(escaped, '\\')
		}
		escaped = append(escaped, r)
	}
	escaped = append(escaped, '\'')
	return string(escaped)
}

// Redacted DSN без пароля, для логов
func (d DatabaseConfig) Redacted() string {
	if d.Driver == "sqlite3" {
		return (&url.URL{Scheme: "file", Path: d.Path}).String()
	}
	return fmt.Sprintf("postgres://%s@%s:%d/%s", d.User, d.Host, d.Port, d.DBName)
}

// QueryTimeoutDuration таймаут одного запроса к хранилищу
func (d DatabaseConfig) QueryTimeoutDuration() time.Duration {
	return time.Duration(d.QueryTimeout) * time.Second
}

// Location часовой пояс для определения текущей даты
func (b BookingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(b.Timezone)
}

// DomainPeriods расписание из config.toml.
// nil без ошибки, если секция [[periods]] не задана - тогда используется расписание по умолчанию.
func (c *Config) DomainPeriods() ([]domain.Period, error) {
	if len(c.Periods) == 0 {
		return nil, nil
	}

	periods := make([]domain.Period, 0, len(c.Periods))
	for _, p := range c.Periods {
		start, err := types.NewTimeStringFromString(p.Start)
		if err != nil {
			return nil, fmt.Errorf("period %d start: %w", p.Number, err)
		}
		end, err := types.NewTimeStringFromString(p.End)
		if err != nil {
			return nil, fmt.Errorf("period %d end: %w", p.Number, err)
		}

		blocks := make([]int, len(p.Blocks))
		copy(blocks, p.Blocks)

		periods = append(periods, domain.Period{
			Number: p.Number,
			Time:   domain.TimeRange{Start: start, End: end},
			Blocks: blocks,
		})
	}

	return periods, nil
}
