package config // package config loads application configuration from environment variables

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Nested structs group the settings of a single
// concern so they can be handed to the component that owns it.
type Config struct {
	Env            string        `env:"APP_ENV" envDefault:"dev"`      // application environment (dev/test/prod)
	Port           string        `env:"APP_PORT" envDefault:"8080"`    // port to bind the HTTP server
	BackendURL     string        `env:"BACKEND_URL,required,notEmpty"` // base URL of the booking REST API
	JWTSecret      string        `env:"JWT_SECRET"`                    // verifies backend tokens when set
	BackendTimeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"10s"`

	Session   SessionConfig
	Favorites FavoritesConfig
	Search    SearchConfig
	Approval  ApprovalConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Redis     RedisConfig
	Rabbit    RabbitConfig
	DB        DBConfig
}

// SessionConfig controls the token/user cookies.
type SessionConfig struct {
	TTL         time.Duration `env:"SESSION_TTL" envDefault:"168h"`
	RememberTTL time.Duration `env:"SESSION_REMEMBER_TTL" envDefault:"720h"`
	Domain      string        `env:"SESSION_COOKIE_DOMAIN"`
}

// FavoritesConfig controls the local favorites lists kept in Redis.
type FavoritesConfig struct {
	TTL    time.Duration `env:"FAVORITES_TTL" envDefault:"24h"`
	Prefix string        `env:"FAVORITES_PREFIX" envDefault:"fav"`
}

// SearchConfig controls the debounced hotel search.
type SearchConfig struct {
	Debounce time.Duration `env:"SEARCH_DEBOUNCE" envDefault:"500ms"`
}

// ApprovalConfig controls pending hotel-owner polling.
type ApprovalConfig struct {
	Schedule string `env:"APPROVAL_POLL_SCHEDULE" envDefault:"@every 30s"`
}

// CacheConfig defines settings for the response cache middleware.
// When Enabled is false or no Redis client is configured, caching will be disabled.
// Methods lists the HTTP methods to cache (e.g. GET, HEAD).  TTL defines the
// lifetime of cache entries.  KeyStrategy determines which parts of the request
// contribute to the cache key.
type CacheConfig struct {
	Enabled      bool          `env:"CACHE_ENABLED" envDefault:"true"`
	Methods      []string      `env:"CACHE_METHODS" envDefault:"GET" envSeparator:","`
	TTL          time.Duration `env:"CACHE_TTL" envDefault:"30s"`
	KeyStrategy  string        `env:"CACHE_KEY_STRATEGY" envDefault:"route_query"`
	Prefix       string        `env:"CACHE_PREFIX" envDefault:"cache"`
	MaxBodyBytes int           `env:"CACHE_MAX_BODY_BYTES" envDefault:"1048576"`
}

// Cacheable reports whether responses to the given method are cached.
func (c CacheConfig) Cacheable(method string) bool {
	for _, m := range c.Methods {
		if strings.EqualFold(strings.TrimSpace(m), method) {
			return true
		}
	}
	return false
}

// RateLimitConfig configures the Redis token bucket.
type RateLimitConfig struct {
	Enabled        bool          `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	Capacity       int           `env:"RATE_LIMIT_CAPACITY" envDefault:"60"`
	RefillTokens   int           `env:"RATE_LIMIT_REFILL_TOKENS" envDefault:"1"`
	RefillInterval time.Duration `env:"RATE_LIMIT_REFILL_INTERVAL" envDefault:"1s"`
	TTL            time.Duration `env:"RATE_LIMIT_TTL" envDefault:"10m"`
	KeyStrategy    string        `env:"RATE_LIMIT_KEY_STRATEGY" envDefault:"ip_user_route"`
	Prefix         string        `env:"RATE_LIMIT_PREFIX" envDefault:"rl"`
	Debug          bool          `env:"RATE_LIMIT_DEBUG" envDefault:"false"`
}

// normalize clamps values that would break the limiter script.
func (r *RateLimitConfig) normalize() {
	if r.Capacity < 1 {
		r.Capacity = 1
	}
	if r.RefillTokens < 1 {
		r.RefillTokens = 1
	}
	if r.RefillInterval <= 0 {
		r.RefillInterval = time.Second
	}
	if minTTL := 5 * r.RefillInterval; r.TTL < minTTL {
		r.TTL = minTTL
	}
}

// RedisConfig locates the Redis server used for caching, rate limiting and favorites.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Host     string `env:"REDIS_HOST"`
	Port     string `env:"REDIS_PORT"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	TLS      bool   `env:"REDIS_TLS" envDefault:"false"`
}

// RabbitConfig locates the broker for booking events.  An empty URL disables
// publishing and the consumer.
type RabbitConfig struct {
	URL string `env:"RABBITMQ_URL"`
}

// DBConfig holds the MySQL connection used for booking history.  An empty
// host disables the history store.
type DBConfig struct {
	User string `env:"DB_USER"`
	Pass string `env:"DB_PASS"`
	Host string `env:"DB_HOST"`
	Port string `env:"DB_PORT" envDefault:"3306"`
	Name string `env:"DB_NAME"`
}

// Enabled reports whether enough settings are present to open the database.
func (d DBConfig) Enabled() bool { return d.Host != "" && d.Name != "" && d.User != "" }

// IsProduction reports whether cookies must be marked Secure.
func (c Config) IsProduction() bool {
	switch strings.ToLower(c.Env) {
	case "prod", "production":
		return true
	}
	return false
}

// Parse reads configuration from the environment without touching .env files.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.BackendURL = strings.TrimRight(cfg.BackendURL, "/")
	cfg.RateLimit.normalize()
	return cfg, nil
}

// Load reads an optional .env file and then the environment.  Missing
// required values cause the program to exit with a fatal log message.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("config: .env file not found, reading from system environment variables")
	}
	cfg, err := Parse()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}
