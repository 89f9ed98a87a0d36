package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

// EnvPrefix namespaces every AeroCommerce environment variable.
const EnvPrefix = "AEROCOMMERCE"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	FeatureFlags FeatureFlagsConfig
	Checkout     CheckoutConfig
	Admin        AdminConfig
	OpenAI       OpenAIConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
	Outbox       OutboxConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Checkout.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"AEROCOMMERCE_APP_ENV" required:"true"`
	Port         string `envconfig:"AEROCOMMERCE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"AEROCOMMERCE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"AEROCOMMERCE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"AEROCOMMERCE_DB_DSN"`
	Driver string `envconfig:"AEROCOMMERCE_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"AEROCOMMERCE_DB_HOST"`
	Port     int    `envconfig:"AEROCOMMERCE_DB_PORT" default:"5432"`
	User     string `envconfig:"AEROCOMMERCE_DB_USER"`
	Password string `envconfig:"AEROCOMMERCE_DB_PASSWORD"`
	Name     string `envconfig:"AEROCOMMERCE_DB_NAME"`
	SSLMode  string `envconfig:"AEROCOMMERCE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"AEROCOMMERCE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"AEROCOMMERCE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"AEROCOMMERCE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"AEROCOMMERCE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"AEROCOMMERCE_REDIS_URL" required:"true"`
	Password     string        `envconfig:"AEROCOMMERCE_REDIS_PASSWORD"`
	DB           int           `envconfig:"AEROCOMMERCE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"AEROCOMMERCE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"AEROCOMMERCE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"AEROCOMMERCE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"AEROCOMMERCE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"AEROCOMMERCE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"AEROCOMMERCE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"AEROCOMMERCE_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"AEROCOMMERCE_JWT_EXPIRATION_MINUTES" required:"true"`
	SessionTTLMinutes int    `envconfig:"AEROCOMMERCE_SESSION_TTL_MINUTES" default:"43200"`
}

// SessionTTL returns the redis session TTL configured in minutes.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"AEROCOMMERCE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"AEROCOMMERCE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"AEROCOMMERCE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"AEROCOMMERCE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"AEROCOMMERCE_ARGON_KEY_LEN" default:"32"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"AEROCOMMERCE_AUTO_MIGRATE" default:"false"`
}

// MissingProductPolicy names the checkout behavior for cart lines whose
// product no longer exists.
type MissingProductPolicy string

const (
	MissingProductSkip MissingProductPolicy = "skip"
	MissingProductFail MissingProductPolicy = "fail"
)

type CheckoutConfig struct {
	ShippingFee          string               `envconfig:"AEROCOMMERCE_CHECKOUT_SHIPPING_FEE" default:"5"`
	MissingProductPolicy MissingProductPolicy `envconfig:"AEROCOMMERCE_CHECKOUT_MISSING_PRODUCT_POLICY" default:"skip"`
}

// ShippingFeeAmount parses the configured flat shipping fee.
func (c CheckoutConfig) ShippingFeeAmount() decimal.Decimal {
	fee, err := decimal.NewFromString(strings.TrimSpace(c.ShippingFee))
	if err != nil {
		return decimal.NewFromInt(5)
	}
	return fee
}

func (c CheckoutConfig) validate() error {
	if _, err := decimal.NewFromString(strings.TrimSpace(c.ShippingFee)); err != nil {
		return fmt.Errorf("invalid shipping fee %q: %w", c.ShippingFee, err)
	}
	switch c.MissingProductPolicy {
	case MissingProductSkip, MissingProductFail:
		return nil
	default:
		return fmt.Errorf("invalid missing product policy %q", c.MissingProductPolicy)
	}
}

type AdminConfig struct {
	// Emails is the comma-separated allow-list consulted by the admin gate.
	Emails string `envconfig:"AEROCOMMERCE_ADMIN_EMAILS"`
}

// AllowedEmails splits the configured allow-list. Matching is case-sensitive.
func (a AdminConfig) AllowedEmails() []string {
	if strings.TrimSpace(a.Emails) == "" {
		return nil
	}
	parts := strings.Split(a.Emails, ",")
	emails := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			emails = append(emails, trimmed)
		}
	}
	return emails
}

type OpenAIConfig struct {
	APIKey  string `envconfig:"AEROCOMMERCE_OPENAI_API_KEY"`
	BaseURL string `envconfig:"AEROCOMMERCE_OPENAI_BASE_URL"`
}

type GCPConfig struct {
	ProjectID string `envconfig:"AEROCOMMERCE_GCP_PROJECT_ID"`
}

type PubSubConfig struct {
	OrdersTopic        string `envconfig:"AEROCOMMERCE_PUBSUB_ORDERS_TOPIC" default:"aero-order-events"`
	OrdersSubscription string `envconfig:"AEROCOMMERCE_PUBSUB_ORDERS_SUBSCRIPTION"`
}

type OutboxConfig struct {
	BatchSize      int `envconfig:"AEROCOMMERCE_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int `envconfig:"AEROCOMMERCE_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int `envconfig:"AEROCOMMERCE_OUTBOX_MAX_ATTEMPTS" default:"10"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	required := []struct {
		env string
		val string
	}{
		{"AEROCOMMERCE_DB_HOST", db.Host},
		{"AEROCOMMERCE_DB_USER", db.User},
		{"AEROCOMMERCE_DB_NAME", db.Name},
	}
	for _, req := range required {
		if req.val == "" {
			missing = append(missing, req.env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either AEROCOMMERCE_DB_DSN or %s are required", strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
