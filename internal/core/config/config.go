package config

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Cache drivers accepted by CACHE_DRIVER.
const (
	CacheDriverMemory = "memory"
	CacheDriverRedis  = "redis"
)

// Strategies accepted by DEFAULT_ALGORITHM.
var algorithms = []string{"dijkstra", "astar", "genetic"}

// AppConfig holds the configuration for the engine.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development" required:"true"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info" required:"true"`
	// ServerPort is the port where the API listens.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`
	// RandomSeed seeds the synthetic world and the simulators. 0 picks a time-based seed.
	RandomSeed uint64 `mapstructure:"RANDOM_SEED" default:"0"`

	Routing RoutingConfig `mapstructure:",squash"`

	Tracking TrackingConfig `mapstructure:",squash"`

	Verification VerificationConfig `mapstructure:",squash"`
}

// RoutingConfig tunes the route optimizer.
type RoutingConfig struct {
	// DefaultAlgorithm is used when a request does not name one.
	DefaultAlgorithm string `mapstructure:"DEFAULT_ALGORITHM" default:"dijkstra"`
	// GAPopulation is the genetic search population size.
	GAPopulation int `mapstructure:"GA_POPULATION" default:"50"`
	// GAGenerations is the number of genetic search generations.
	GAGenerations int `mapstructure:"GA_GENERATIONS" default:"100"`
	// GAMutationRate is the per-child waypoint mutation probability.
	GAMutationRate float64 `mapstructure:"GA_MUTATION_RATE" default:"0.1"`
}

// TrackingConfig tunes the shipment simulator.
type TrackingConfig struct {
	// TickInterval is the time between two simulated progress updates.
	TickInterval time.Duration `mapstructure:"TRACKING_TICK_INTERVAL" default:"30s"`
}

// VerificationConfig holds the verification cache settings.
type VerificationConfig struct {
	// CacheTTL is how long a verification result is served from cache.
	CacheTTL time.Duration `mapstructure:"VERIFICATION_CACHE_TTL" default:"24h"`
	// CacheDriver selects the result cache backend: memory or redis.
	CacheDriver string `mapstructure:"CACHE_DRIVER" default:"memory"`
	// RedisURL is required when CacheDriver is redis.
	RedisURL string `mapstructure:"REDIS_URL"`
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// validate checks cross-field rules the tags cannot express.
func (c *AppConfig) validate() error {
	switch c.Verification.CacheDriver {
	case CacheDriverMemory:
	case CacheDriverRedis:
		if c.Verification.RedisURL == "" {
			return fmt.Errorf("missing required configuration: REDIS_URL (CACHE_DRIVER=%s)", CacheDriverRedis)
		}
	default:
		return fmt.Errorf("invalid CACHE_DRIVER %q", c.Verification.CacheDriver)
	}

	c.Routing.DefaultAlgorithm = strings.ToLower(c.Routing.DefaultAlgorithm)
	if !slices.Contains(algorithms, c.Routing.DefaultAlgorithm) {
		return fmt.Errorf("invalid DEFAULT_ALGORITHM %q", c.Routing.DefaultAlgorithm)
	}
	if c.Tracking.TickInterval <= 0 {
		return fmt.Errorf("invalid TRACKING_TICK_INTERVAL %s", c.Tracking.TickInterval)
	}
	if c.Routing.GAMutationRate < 0 || c.Routing.GAMutationRate > 1 {
		return fmt.Errorf("invalid GA_MUTATION_RATE %v", c.Routing.GAMutationRate)
	}
	return nil
}

// processTags walks the struct fields, binds env keys and registers defaults in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		if key == "" {
			continue
		}

		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("bind %s: %w", key, err)
		}

		if defaultValue := field.Tag.Get("default"); defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		if field.Tag.Get("required") == "true" && isZero(val.Field(i)) {
			return fmt.Errorf("missing required configuration: %s", field.Tag.Get("mapstructure"))
		}
	}
	return nil
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}
