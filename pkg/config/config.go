package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix namespaces every environment variable read by Load.
	EnvPrefix = "CARTAQR"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvDBDSN  = "CARTAQR_DB_DSN"
	EnvDBHost = "CARTAQR_DB_HOST"
	EnvDBUser = "CARTAQR_DB_USER"
	EnvDBName = "CARTAQR_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	AuthRateLimit AuthRateLimitConfig
	Invitaciones  InvitacionesConfig
	SMTP          SMTPConfig
	GCP           GCPConfig
	PubSub        PubSubConfig
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
	Env          string `envconfig:"CARTAQR_APP_ENV" required:"true"`
	Port         string `envconfig:"CARTAQR_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CARTAQR_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CARTAQR_LOG_WARN_STACK" default:"false"`
	PublicURL    string `envconfig:"CARTAQR_PUBLIC_URL" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"CARTAQR_DB_DSN"`
	Driver string `envconfig:"CARTAQR_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"CARTAQR_DB_HOST"`
	LegacyPort     int    `envconfig:"CARTAQR_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"CARTAQR_DB_USER"`
	LegacyPassword string `envconfig:"CARTAQR_DB_PASSWORD"`
	LegacyName     string `envconfig:"CARTAQR_DB_NAME"`
	LegacySSLMode  string `envconfig:"CARTAQR_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CARTAQR_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CARTAQR_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CARTAQR_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CARTAQR_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CARTAQR_REDIS_URL" required:"true"`
	Address      string        `envconfig:"CARTAQR_REDIS_ADDR"`
	Password     string        `envconfig:"CARTAQR_REDIS_PASSWORD"`
	DB           int           `envconfig:"CARTAQR_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CARTAQR_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CARTAQR_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CARTAQR_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CARTAQR_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CARTAQR_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"CARTAQR_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"CARTAQR_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"CARTAQR_JWT_EXPIRATION_MINUTES" default:"720"`
	SessionTTLMinutes int    `envconfig:"CARTAQR_SESSION_TTL_MINUTES" default:"43200"`
}

// SessionTTL returns the server-side session lifetime.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"CARTAQR_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginIPLimit    int           `envconfig:"CARTAQR_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"5"`
	LoginEmailLimit int           `envconfig:"CARTAQR_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
}

type InvitacionesConfig struct {
	TTL time.Duration `envconfig:"CARTAQR_INVITACION_TTL" default:"168h"`
}

type SMTPConfig struct {
	Host     string `envconfig:"CARTAQR_SMTP_HOST"`
	Port     int    `envconfig:"CARTAQR_SMTP_PORT" default:"587"`
	User     string `envconfig:"CARTAQR_SMTP_USER"`
	Password string `envconfig:"CARTAQR_SMTP_PASSWORD"`
	From     string `envconfig:"CARTAQR_SMTP_FROM"`
}

// Enabled reports whether the mailer has enough configuration to send.
func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.From != ""
}

type GCPConfig struct {
	ProjectID       string `envconfig:"CARTAQR_GCP_PROJECT_ID"`
	CredentialsJSON string `envconfig:"CARTAQR_GCP_CREDENTIALS_JSON"`
}

type PubSubConfig struct {
	EventsTopic string `envconfig:"CARTAQR_PUBSUB_EVENTS_TOPIC" default:"cartaqr-pedido-events"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"CARTAQR_AUTO_MIGRATE" default:"false"`
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
