// internal/form/config.go
package form

import (
	"time"

	"github.com/google/uuid"

	"club-signup/internal/common/logger"
	"club-signup/internal/common/observability"
	"club-signup/internal/common/validation"
)

const DefaultCollection = "students"

type Config struct {
	Collection   string
	WriteTimeout time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		Collection:   DefaultCollection,
		WriteTimeout: 10 * time.Second,
	}
}

// Option customizes a Form.
type Option func(*Form)

func WithConfig(cfg *Config) Option {
	return func(f *Form) {
		if cfg == nil {
			return
		}
		if cfg.Collection != "" {
			f.collection = cfg.Collection
		}
		f.writeTimeout = cfg.WriteTimeout
	}
}

func WithRuleSet(rs *validation.RuleSet) Option {
	return func(f *Form) { f.rules = rs }
}

func WithLogger(log logger.Logger) Option {
	return func(f *Form) { f.logger = log }
}

func WithObservability(obs *observability.Observability) Option {
	return func(f *Form) { f.obs = obs }
}

// WithIDGenerator replaces the UUIDv4 generator, mainly for tests.
func WithIDGenerator(gen func() string) Option {
	return func(f *Form) { f.newID = gen }
}

func newDocumentID() string {
	return uuid.New().String()
}
