package config

import (
	"errors"
	"net"
	"net/url"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/spf13/viper"

	"github.com/hamed0406/statuscheck/internal/domain"
)

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// EnvPrefix is prepended to every environment override, e.g.
// STATUSCHECK_OUTPUT_FILE.
const EnvPrefix = "STATUSCHECK"

// DefaultTargets is the built-in target list used when none is configured.
var DefaultTargets = []string{
	"https://google.com",
	"https://github.com",
	"https://nonexistent.xyz",
}

type LogConfig struct {
	File  string `mapstructure:"file"`  // append-only check log
	Level string `mapstructure:"level"` // process log level (stderr)
}

type OutputConfig struct {
	File   string `mapstructure:"file"`
	Schema string `mapstructure:"schema"` // "legacy" or "tagged"
}

type APIConfig struct {
	Addr string `mapstructure:"addr"` // e.g. "127.0.0.1:8080"
}

type Config struct {
	Targets     []string     `mapstructure:"targets"`
	Concurrency int          `mapstructure:"concurrency"`
	Timeout     string       `mapstructure:"timeout"`
	Log         LogConfig    `mapstructure:"log"`
	Output      OutputConfig `mapstructure:"output"`
	API         APIConfig    `mapstructure:"api"`
}

// Load reads statuscheck.yaml from the given directories (default "." and
// "./config"), then applies STATUSCHECK_* environment overrides. A missing
// file is not an error: the defaults reproduce the built-in behavior.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetDefault("targets", DefaultTargets)
	v.SetDefault("concurrency", 5)
	v.SetDefault("timeout", "5s")
	v.SetDefault("log.file", "status_checker.log")
	v.SetDefault("log.level", LogLevelWarn)
	v.SetDefault("output.file", "status_results.json")
	v.SetDefault("output.schema", string(domain.SchemaLegacy))
	v.SetDefault("api.addr", "127.0.0.1:8080")

	v.SetConfigName("statuscheck")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{".", "./config"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Targets,
			validation.Required,
			validation.Each(validation.By(validateTargetURL)),
		),
		validation.Field(&c.Concurrency, validation.Required, validation.Min(1)),
		validation.Field(&c.Timeout, validation.Required, validation.By(validateDuration)),
		validation.Field(&c.Log,
			validation.By(func(value interface{}) error {
				lc, ok := value.(LogConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a LogConfig")
				}
				return validation.ValidateStruct(&lc,
					validation.Field(&lc.File, validation.Required),
					validation.Field(&lc.Level,
						validation.Required,
						validation.In(LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError),
					),
				)
			}),
		),
		validation.Field(&c.Output,
			validation.By(func(value interface{}) error {
				oc, ok := value.(OutputConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be an OutputConfig")
				}
				return validation.ValidateStruct(&oc,
					validation.Field(&oc.File, validation.Required),
					validation.Field(&oc.Schema,
						validation.Required,
						validation.In(string(domain.SchemaLegacy), string(domain.SchemaTagged)),
					),
				)
			}),
		),
		validation.Field(&c.API,
			validation.By(func(value interface{}) error {
				ac, ok := value.(APIConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be an APIConfig")
				}
				return validation.ValidateStruct(&ac,
					validation.Field(&ac.Addr, validation.Required, validation.By(validateHostPort)),
				)
			}),
		),
	)
}

// Endpoints returns the configured targets in order.
func (c *Config) Endpoints() []domain.Endpoint {
	out := make([]domain.Endpoint, len(c.Targets))
	for i, t := range c.Targets {
		out[i] = domain.Endpoint(t)
	}
	return out
}

// CheckTimeout is the per-request timeout. Validate guarantees it parses.
func (c *Config) CheckTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

func (c *Config) Schema() domain.Schema {
	return domain.Schema(c.Output.Schema)
}

func validateTargetURL(value interface{}) error {
	raw, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}
	if err := is.URL.Validate(raw); err != nil {
		return validation.NewError("validation_invalid_url", "must be a valid URL")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return validation.NewError("validation_invalid_url", "must be a valid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return validation.NewError("validation_invalid_scheme", "URL must use http or https scheme")
	}
	if u.Host == "" {
		return validation.NewError("validation_missing_host", "URL must have a host")
	}
	return nil
}

func validateDuration(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return validation.NewError("validation_invalid_duration", "must be a valid duration (e.g., 500ms, 5s)")
	}
	if d <= 0 {
		return validation.NewError("validation_non_positive_duration", "must be greater than zero")
	}
	return nil
}

func validateHostPort(value interface{}) error {
	addr, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return validation.NewError("validation_invalid_hostport", "must be in host:port format")
	}
	if port == "" {
		return validation.NewError("validation_invalid_port", "port cannot be empty")
	}
	if host != "" {
		if err := is.Host.Validate(host); err != nil {
			return validation.NewError("validation_invalid_host", "invalid host")
		}
	}
	return nil
}
