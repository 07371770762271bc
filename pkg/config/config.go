package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Pricing      PricingConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string `envconfig:"SWIFTCARGO_APP_ENV" required:"true"`
	Port         string `envconfig:"SWIFTCARGO_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SWIFTCARGO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SWIFTCARGO_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SWIFTCARGO_DB_DSN"`
	Driver string `envconfig:"SWIFTCARGO_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SWIFTCARGO_DB_HOST"`
	LegacyPort     int    `envconfig:"SWIFTCARGO_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SWIFTCARGO_DB_USER"`
	LegacyPassword string `envconfig:"SWIFTCARGO_DB_PASSWORD"`
	LegacyName     string `envconfig:"SWIFTCARGO_DB_NAME"`
	LegacySSLMode  string `envconfig:"SWIFTCARGO_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SWIFTCARGO_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SWIFTCARGO_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SWIFTCARGO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SWIFTCARGO_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SWIFTCARGO_REDIS_URL"`
	Address      string        `envconfig:"SWIFTCARGO_REDIS_ADDR"`
	Password     string        `envconfig:"SWIFTCARGO_REDIS_PASSWORD"`
	DB           int           `envconfig:"SWIFTCARGO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SWIFTCARGO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SWIFTCARGO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SWIFTCARGO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SWIFTCARGO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SWIFTCARGO_REDIS_WRITE_TIMEOUT" default:"5s"`
	TariffTTL    time.Duration `envconfig:"SWIFTCARGO_REDIS_TARIFF_TTL" default:"5m"`
}

type JWTConfig struct {
	Secret            string `envconfig:"SWIFTCARGO_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"SWIFTCARGO_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"SWIFTCARGO_JWT_EXPIRATION_MINUTES" default:"60"`
}

// PricingConfig carries platform-wide pricing defaults applied on every quote.
type PricingConfig struct {
	VATPercent        float64 `envconfig:"SWIFTCARGO_PRICING_VAT_PCT" default:"20"`
	ApplyVAT          bool    `envconfig:"SWIFTCARGO_PRICING_APPLY_VAT" default:"true"`
	VolumetricDivisor float64 `envconfig:"SWIFTCARGO_PRICING_VOLUMETRIC_DIVISOR" default:"5000"`
	WeightRoundStepKg float64 `envconfig:"SWIFTCARGO_PRICING_WEIGHT_ROUND_STEP_KG" default:"0.5"`
	MoneyDecimals     int32   `envconfig:"SWIFTCARGO_PRICING_MONEY_DECIMALS" default:"2"`
	CutoffHourLocal   int     `envconfig:"SWIFTCARGO_PRICING_CUTOFF_HOUR" default:"16"`
	BusinessDaysOnly  bool    `envconfig:"SWIFTCARGO_PRICING_BUSINESS_DAYS_ONLY" default:"true"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SWIFTCARGO_AUTO_MIGRATE" default:"false"`
	TariffCache bool `envconfig:"SWIFTCARGO_TARIFF_CACHE" default:"true"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
