package webhookauth

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/xraph/webhookauth/algorithm"
)

// DefaultTTL is the maximum envelope age used when none is configured.
const DefaultTTL = 300 * time.Second

// Config holds the configuration for an Auth instance.
// Fields can be set programmatically via Option functions or loaded from
// YAML with LoadConfig.
type Config struct {
	// Secret is the shared key used to sign and verify.
	Secret string `json:"secret" yaml:"secret" validate:"required"`

	// Algorithm is the digest algorithm for new envelopes and for envelopes
	// that do not record one (default: "sha256").
	Algorithm algorithm.Algorithm `json:"algorithm" yaml:"algorithm" validate:"omitempty,digest"`

	// TTL is the maximum accepted envelope age in seconds. Zero selects
	// DefaultTTL.
	TTL int64 `json:"ttl" yaml:"ttl" validate:"gte=0"`

	// AllowedAlgorithms restricts which recorded algorithms verification
	// accepts. Empty allows every supported algorithm.
	AllowedAlgorithms []algorithm.Algorithm `json:"allowed_algorithms" yaml:"allowed_algorithms" validate:"dive,digest"`
}

// DefaultConfig returns a Config with sensible defaults and no secret.
func DefaultConfig() Config {
	return Config{
		Algorithm: algorithm.Default,
		TTL:       int64(DefaultTTL / time.Second),
	}
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func configValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Registration only fails for an empty tag or nil func.
		_ = validate.RegisterValidation("digest", func(fl validator.FieldLevel) bool {
			return algorithm.IsSupported(algorithm.Algorithm(fl.Field().String()))
		})
	})
	return validate
}

// Validate checks the struct constraints on c.
func (c Config) Validate() error {
	if err := configValidator().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s failed %q", ErrInvalidConfig, fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// ToOptions converts c into Option values.
func (c Config) ToOptions() []Option {
	var opts []Option

	if c.Secret != "" {
		opts = append(opts, WithSecret(c.Secret))
	}
	if c.Algorithm != "" {
		opts = append(opts, WithAlgorithm(c.Algorithm))
	}
	if c.TTL != 0 {
		opts = append(opts, WithTTL(time.Duration(c.TTL)*time.Second))
	}
	if len(c.AllowedAlgorithms) > 0 {
		opts = append(opts, WithAllowedAlgorithms(c.AllowedAlgorithms...))
	}

	return opts
}

// LoadConfig decodes YAML from r on top of DefaultConfig and validates the
// result. Unknown keys are rejected.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("webhookauth: decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile is LoadConfig for the named file.
func LoadConfigFile(fname string) (Config, error) {
	file, err := os.Open(fname)
	if err != nil {
		return Config{}, fmt.Errorf("webhookauth: open config: %w", err)
	}
	defer file.Close()

	cfg, err := LoadConfig(file)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", fname, err)
	}
	return cfg, nil
}
