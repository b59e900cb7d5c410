// Copyright (c) 2021-2026 Rustam Gilyazov and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package config resolves the process settings from the environment.
//
// The settings are resolved once and cached for the lifetime of the process.
// Reset clears the cache, so that the next Resolve reads the environment
// again.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/rusq/osenv/v2"
)

// Environment variable names.
const (
	EnvAPIKey            = "REDASH_API_KEY"
	EnvBaseURL           = "REDASH_BASE_URL"
	EnvDefaultDataSource = "DEFAULT_DATA_SOURCE_ID"
	EnvPort              = "PORT"
	EnvRateLimit         = "REDASH_RATE_LIMIT"
	EnvBurst             = "REDASH_RATE_BURST"
	EnvTimeout           = "REDASH_QUERY_TIMEOUT"
	EnvPollInterval      = "REDASH_POLL_INTERVAL"

	// aliases
	envAPIKeyAlias        = "API_KEY"
	envBaseURLAlias       = "BASE_URL"
	envDataSourceIDLegacy = "DATA_SOURCE_ID"
)

const (
	DefPort         = 3000
	DefBurst        = 1
	DefTimeout      = 60 * time.Second
	DefPollInterval = 1 * time.Second
)

// Config is the resolved configuration.
type Config struct {
	APIKey  string `env:"REDASH_API_KEY" validate:"required"`
	BaseURL string `env:"REDASH_BASE_URL" validate:"required,http_url"`
	// DefaultDataSourceID is used by the query execution, when the caller
	// does not specify a data source.  Zero means there is no default.
	DefaultDataSourceID int `env:"DEFAULT_DATA_SOURCE_ID" validate:"gte=0"`
	Port                int `env:"PORT" validate:"gte=1,lte=65535"`
	// RateLimit is the number of requests per second to the backend, 0 means
	// unlimited.
	RateLimit    float64       `env:"REDASH_RATE_LIMIT" validate:"gte=0"`
	Burst        int           `env:"REDASH_RATE_BURST" validate:"gte=1"`
	Timeout      time.Duration `env:"REDASH_QUERY_TIMEOUT" validate:"gt=0"`
	PollInterval time.Duration `env:"REDASH_POLL_INTERVAL" validate:"gt=0"`
}

// Error is the configuration error.  It lists all problems found.
type Error struct {
	Problems []string
}

func (e *Error) Error() string {
	if len(e.Problems) == 1 {
		return "invalid configuration: " + e.Problems[0]
	}
	return "invalid configuration:\n\t" + strings.Join(e.Problems, "\n\t")
}

var (
	validate *validator.Validate
	trans    ut.Translator
)

func init() {
	english := en.New()
	uni := ut.New(english, english)
	trans, _ = uni.GetTranslator("en")

	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("env"); name != "" {
			return name
		}
		return fld.Name
	})
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		panic(err)
	}
	if err := validate.RegisterTranslation("http_url", trans, func(ut ut.Translator) error {
		return ut.Add("http_url", "{0} must be an http or https URL", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("http_url", fe.Field())
		return t
	}); err != nil {
		panic(err)
	}
}

var (
	mu     sync.Mutex
	cached *Config
)

// Resolve returns the process configuration.  The first successful result is
// cached, and returned on the subsequent calls until Reset is called.
// Failures are not cached.
func Resolve() (*Config, error) {
	mu.Lock()
	defer mu.Unlock()
	if cached != nil {
		return cached, nil
	}
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	cached = cfg
	return cached, nil
}

// Reset clears the cached configuration.
func Reset() {
	mu.Lock()
	cached = nil
	mu.Unlock()
}

// Load reads and validates the configuration from the environment, bypassing
// the cache.
func Load() (*Config, error) {
	var p parser
	cfg := Config{
		APIKey:              firstOf(EnvAPIKey, envAPIKeyAlias),
		BaseURL:             strings.TrimRight(firstOf(EnvBaseURL, envBaseURLAlias), "/"),
		DefaultDataSourceID: p.int(EnvDefaultDataSource, envDataSourceIDLegacy, 0),
		Port:                p.int(EnvPort, "", DefPort),
		RateLimit:           p.float(EnvRateLimit, 0),
		Burst:               p.int(EnvBurst, "", DefBurst),
		Timeout:             p.duration(EnvTimeout, DefTimeout),
		PollInterval:        p.duration(EnvPollInterval, DefPollInterval),
	}
	if err := cfg.Validate(); err != nil {
		var e *Error
		if errors.As(err, &e) {
			p.problems = append(p.problems, e.Problems...)
		} else {
			return nil, err
		}
	}
	if len(p.problems) > 0 {
		return nil, &Error{Problems: p.problems}
	}
	return &cfg, nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var vErr validator.ValidationErrors
	if !errors.As(err, &vErr) {
		return err
	}
	e := new(Error)
	for _, fe := range vErr {
		e.Problems = append(e.Problems, fe.Translate(trans))
	}
	return e
}

// firstOf returns the value of the first non-empty variable.
func firstOf(names ...string) string {
	for _, name := range names {
		if name == "" {
			continue
		}
		if v := osenv.Value(name, ""); v != "" {
			return v
		}
	}
	return ""
}

// parser collects parse problems, so that all of them can be reported at
// once.
type parser struct {
	problems []string
}

func (p *parser) int(name, alias string, def int) int {
	s := strings.TrimSpace(firstOf(name, alias))
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		p.problems = append(p.problems, fmt.Sprintf("%s must be an integer, got %q", name, s))
		return def
	}
	return n
}

func (p *parser) float(name string, def float64) float64 {
	s := strings.TrimSpace(firstOf(name))
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		p.problems = append(p.problems, fmt.Sprintf("%s must be a number, got %q", name, s))
		return def
	}
	return f
}

// duration accepts Go durations ("90s", "1m") and bare numbers, which are
// treated as milliseconds.
func (p *parser) duration(name string, def time.Duration) time.Duration {
	s := strings.TrimSpace(firstOf(name))
	if s == "" {
		return def
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		p.problems = append(p.problems, fmt.Sprintf("%s must be a duration, got %q", name, s))
		return def
	}
	return d
}
