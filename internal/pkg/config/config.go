package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	CORS      CORSConfig
	Log       LogConfig
	JWT       JWTConfig
	Payment   PaymentConfig
	Broker    BrokerConfig
	Redis     RedisConfig
	Worker    WorkerConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host       string `envconfig:"DB_HOST" default:"localhost"`
	Port       string `envconfig:"DB_PORT" default:"5432"`
	User       string `envconfig:"DB_USER" required:"true"`
	Password   string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" required:"true"`
	SSLMode    string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone   string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns   int32  `envconfig:"DB_MAX_CONNS" default:"50"`
	MinConns   int32  `envconfig:"DB_MIN_CONNS" default:"2"`
	MaxRetries int    `envconfig:"DB_MAX_TX_RETRIES" default:"3"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Location"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

// Tokens are issued by the external identity provider; only verification happens here.
type JWTConfig struct {
	Secret string `envconfig:"JWT_SECRET" required:"true"`
	Issuer string `envconfig:"JWT_ISSUER" default:""`
}

type PaymentConfig struct {
	Provider             string        `envconfig:"PAYMENT_PROVIDER" default:"simulated"`
	Currency             string        `envconfig:"PAYMENT_CURRENCY" default:"usd"`
	Timeout              time.Duration `envconfig:"PAYMENT_TIMEOUT" default:"10s"`
	SimulatedFailureRate float64       `envconfig:"PAYMENT_SIMULATED_FAILURE_RATE" default:"0.1"`
	StripeSecretKey      string        `envconfig:"STRIPE_SECRET_KEY" default:""`
	StripePaymentMethod  string        `envconfig:"STRIPE_PAYMENT_METHOD" default:"pm_card_visa"`
}

// An empty URL disables publishing; outbox events are then only marked as relayed.
type BrokerConfig struct {
	URL      string `envconfig:"AMQP_URL" default:""`
	Exchange string `envconfig:"AMQP_EXCHANGE" default:"parking.events"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:""`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type WorkerConfig struct {
	Enabled          bool          `envconfig:"WORKER_ENABLED" default:"true"`
	SweepSchedule    string        `envconfig:"WORKER_SWEEP_SCHEDULE" default:"@every 1m"`
	SweepBatchSize   int           `envconfig:"WORKER_SWEEP_BATCH_SIZE" default:"200"`
	RelaySchedule    string        `envconfig:"WORKER_RELAY_SCHEDULE" default:"@every 5s"`
	RelayBatchSize   int           `envconfig:"WORKER_RELAY_BATCH_SIZE" default:"100"`
	RelayMaxAttempts int           `envconfig:"WORKER_RELAY_MAX_ATTEMPTS" default:"10"`
	LockTTL          time.Duration `envconfig:"WORKER_LOCK_TTL" default:"55s"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `envconfig:"RATE_LIMIT_RPS" default:"20"`
	Burst             int     `envconfig:"RATE_LIMIT_BURST" default:"40"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:       "localhost",
			Port:       "15433", // Test DB port
			User:       "test",
			Password:   "test",
			DBName:     "test_db",
			SSLMode:    "disable",
			TimeZone:   "UTC",
			MaxConns:   20,
			MinConns:   1,
			MaxRetries: 3,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		JWT: JWTConfig{
			Secret: "test-secret",
		},
		Payment: PaymentConfig{
			Provider:             "simulated",
			Currency:             "usd",
			Timeout:              2 * time.Second,
			SimulatedFailureRate: 0,
		},
		Worker: WorkerConfig{
			Enabled:          false,
			SweepSchedule:    "@every 1m",
			SweepBatchSize:   50,
			RelaySchedule:    "@every 5s",
			RelayBatchSize:   50,
			RelayMaxAttempts: 3,
			LockTTL:          30 * time.Second,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 1000,
			Burst:             1000,
		},
	}
}
