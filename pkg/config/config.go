package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	CORS          CORSConfig
	Stripe        StripeConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ORIENTA_APP_ENV" required:"true"`
	Port         string `envconfig:"ORIENTA_APP_PORT" default:"8080"`
	BaseURL      string `envconfig:"ORIENTA_APP_BASE_URL" default:"http://localhost:8080"`
	LogLevel     string `envconfig:"ORIENTA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ORIENTA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"ORIENTA_DB_DSN"`
	Driver string `envconfig:"ORIENTA_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"ORIENTA_DB_HOST"`
	Port     int    `envconfig:"ORIENTA_DB_PORT" default:"5432"`
	User     string `envconfig:"ORIENTA_DB_USER"`
	Password string `envconfig:"ORIENTA_DB_PASSWORD"`
	Name     string `envconfig:"ORIENTA_DB_NAME"`
	SSLMode  string `envconfig:"ORIENTA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ORIENTA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ORIENTA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ORIENTA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ORIENTA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ORIENTA_REDIS_URL"`
	Address      string        `envconfig:"ORIENTA_REDIS_ADDR"`
	Password     string        `envconfig:"ORIENTA_REDIS_PASSWORD"`
	DB           int           `envconfig:"ORIENTA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ORIENTA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ORIENTA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ORIENTA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ORIENTA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ORIENTA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis endpoint was configured at all.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"ORIENTA_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"ORIENTA_JWT_ISSUER" default:"orienta"`
	ExpirationMinutes int    `envconfig:"ORIENTA_JWT_EXPIRATION_MINUTES" default:"10080"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"ORIENTA_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"ORIENTA_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"ORIENTA_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"ORIENTA_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"ORIENTA_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"ORIENTA_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"ORIENTA_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"ORIENTA_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"ORIENTA_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"ORIENTA_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"ORIENTA_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"ORIENTA_CORS_ORIGINS" default:"http://localhost:3000"`
}

type StripeConfig struct {
	APIKey string `envconfig:"ORIENTA_STRIPE_API_KEY"`
	Env    string `envconfig:"ORIENTA_STRIPE_ENV" default:"test"`
}

// Environment returns the normalized Stripe environment (test/live).
func (s StripeConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "test"
	}
	return env
}

// Enabled reports whether a provider key is configured; checkout creation is
// rejected without one.
func (s StripeConfig) Enabled() bool {
	return strings.TrimSpace(s.APIKey) != ""
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"ORIENTA_AUTO_MIGRATE" default:"false"`
	SeedOnBoot  bool `envconfig:"ORIENTA_SEED_ON_BOOT" default:"true"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	parts := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range requiredDBEnvVars {
		if parts[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
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
