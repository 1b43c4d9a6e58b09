package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"`
		LogLevel string `envconfig:"LOG_LEVEL"`
		Port     string `envconfig:"PORT"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"APP_NAME"`
		Timezone string `envconfig:"TIMEZONE"`
		CORS     struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS"`
		} `envconfig:"RATE_LIMITER"`
		APIKey string `envconfig:"API_KEY"`
		Hotel  struct {
			Name     string `envconfig:"NAME"     default:"Oman Grand Hotel"`
			Currency string `envconfig:"CURRENCY" default:"OMR"`
		} `envconfig:"HOTEL"`
	} `envconfig:"APP"`

	Storage struct {
		// Driver selects the repository backend: "postgres" or "kv".
		Driver string `envconfig:"DRIVER" default:"postgres"`
		KV     struct {
			Prefix string `envconfig:"PREFIX" default:"hotel"`
		} `envconfig:"KV"`
	} `envconfig:"STORAGE"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL"`
	} `envconfig:"CACHE"`

	JWT struct {
		AccessSecret     string `envconfig:"ACCESS_SECRET"`
		RefreshSecret    string `envconfig:"REFRESH_SECRET"`
		AccessExpireMin  int    `envconfig:"ACCESS_EXPIRE_MIN"`
		RefreshExpireMin int    `envconfig:"REFRESH_EXPIRE_MIN"`
	} `envconfig:"JWT"`

	DB struct {
		Postgres struct {
			MaxRetry       int          `envconfig:"MAX_RETRY"`
			RetryWaitTime  int          `envconfig:"RETRY_WAIT_TIME"`
			MigrationTable string       `envconfig:"MIGRATION_TABLE"`
			AutoMigrate    bool         `envconfig:"AUTO_MIGRATE"`
			Prefix         string       `envconfig:"PREFIX"`
			Read           PostgresNode `envconfig:"READ"`
			Write          PostgresNode `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	Kafka struct {
		Enable        bool     `envconfig:"ENABLE"`
		Brokers       []string `envconfig:"BROKERS"`
		ConsumerGroup string   `envconfig:"CONSUMER_GROUP"`
		Topic         string   `envconfig:"TOPIC" default:"hotel.booking.events"`
		SASL          struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
	} `envconfig:"KAFKA"`

	Seed struct {
		Admin struct {
			Username string `envconfig:"USERNAME" default:"admin"`
			Password string `envconfig:"PASSWORD" default:"admin123"`
			Email    string `envconfig:"EMAIL"    default:"admin@omangrandhotel.com"`
		} `envconfig:"ADMIN"`
	} `envconfig:"SEED"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
		S3 struct {
			APIEndpoint     string `envconfig:"API_ENDPOINT"`
			AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
			SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
			BucketName      string `envconfig:"BUCKET_NAME"`
			PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
		} `envconfig:"S3"`
		Webhook struct {
			URL            string `envconfig:"URL"`
			Secret         string `envconfig:"SECRET"`
			TimeoutSeconds int    `envconfig:"TIMEOUT_SECONDS" default:"10"`
		} `envconfig:"WEBHOOK"`
	} `envconfig:"EXTERNAL"`
}

// PostgresNode is one endpoint of the read/write pair.
type PostgresNode struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"`
	Username string `envconfig:"USER"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"`
	SSLMode  string `envconfig:"SSL_MODE" default:"disable"`
}

var (
	conf Config
	once sync.Once
)

// Get loads .env (when present) and the environment once, and returns the shared Config.
// A malformed variable is fatal.
func Get() *Config {
	once.Do(load)

	return &conf
}

func load() {
	if err := godotenv.Load(".env"); err != nil {
		log.Warn().Err(err).Msg("No .env file loaded, using the process environment")
	} else {
		log.Info().Msg("Loaded variables from .env")
	}

	if err := envconfig.Process("", &conf); err != nil {
		log.Fatal().Err(err).Msg("Failed to process environment variables")
	}

	log.Info().Str("storage", conf.Storage.Driver).Msg("Service configuration initialized")
}
