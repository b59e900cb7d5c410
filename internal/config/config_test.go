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

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allVars = []string{
	EnvAPIKey, EnvBaseURL, EnvDefaultDataSource, EnvPort, EnvRateLimit,
	EnvBurst, EnvTimeout, EnvPollInterval,
	envAPIKeyAlias, envBaseURLAlias, envDataSourceIDLegacy,
}

// clearEnv blanks all configuration variables for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range allVars {
		t.Setenv(name, "")
	}
	Reset()
	t.Cleanup(Reset)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		want    *Config
		wantErr []string
	}{
		{
			name: "defaults",
			env:  map[string]string{EnvAPIKey: "key", EnvBaseURL: "https://redash.example.com/"},
			want: &Config{
				APIKey:       "key",
				BaseURL:      "https://redash.example.com",
				Port:         DefPort,
				Burst:        DefBurst,
				Timeout:      DefTimeout,
				PollInterval: DefPollInterval,
			},
		},
		{
			name: "all set",
			env: map[string]string{
				EnvAPIKey:            "key",
				EnvBaseURL:           "http://localhost:5000",
				EnvDefaultDataSource: "3",
				EnvPort:              "8080",
				EnvRateLimit:         "2.5",
				EnvBurst:             "4",
				EnvTimeout:           "2m",
				EnvPollInterval:      "500",
			},
			want: &Config{
				APIKey:              "key",
				BaseURL:             "http://localhost:5000",
				DefaultDataSourceID: 3,
				Port:                8080,
				RateLimit:           2.5,
				Burst:               4,
				Timeout:             2 * time.Minute,
				PollInterval:        500 * time.Millisecond,
			},
		},
		{
			name: "aliases",
			env: map[string]string{
				envAPIKeyAlias:        "alias-key",
				envBaseURLAlias:       "https://alias.example.com",
				envDataSourceIDLegacy: "7",
			},
			want: &Config{
				APIKey:              "alias-key",
				BaseURL:             "https://alias.example.com",
				DefaultDataSourceID: 7,
				Port:                DefPort,
				Burst:               DefBurst,
				Timeout:             DefTimeout,
				PollInterval:        DefPollInterval,
			},
		},
		{
			name: "primary wins over alias",
			env: map[string]string{
				EnvAPIKey:             "primary",
				envAPIKeyAlias:        "alias",
				EnvBaseURL:            "https://redash.example.com",
				EnvDefaultDataSource:  "1",
				envDataSourceIDLegacy: "2",
			},
			want: &Config{
				APIKey:              "primary",
				BaseURL:             "https://redash.example.com",
				DefaultDataSourceID: 1,
				Port:                DefPort,
				Burst:               DefBurst,
				Timeout:             DefTimeout,
				PollInterval:        DefPollInterval,
			},
		},
		{
			name:    "missing required",
			env:     map[string]string{},
			wantErr: []string{"REDASH_API_KEY is a required field", "REDASH_BASE_URL is a required field"},
		},
		{
			name:    "bad url",
			env:     map[string]string{EnvAPIKey: "key", EnvBaseURL: "ftp://example.com"},
			wantErr: []string{"REDASH_BASE_URL must be an http or https URL"},
		},
		{
			name: "bad numbers",
			env: map[string]string{
				EnvAPIKey:            "key",
				EnvBaseURL:           "https://redash.example.com",
				EnvDefaultDataSource: "one",
				EnvTimeout:           "soon",
			},
			wantErr: []string{
				`DEFAULT_DATA_SOURCE_ID must be an integer, got "one"`,
				`REDASH_QUERY_TIMEOUT must be a duration, got "soon"`,
			},
		},
		{
			name:    "port out of range",
			env:     map[string]string{EnvAPIKey: "key", EnvBaseURL: "https://redash.example.com", EnvPort: "70000"},
			wantErr: []string{"PORT must be 65,535 or less"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			got, err := Load()
			if tt.wantErr != nil {
				var e *Error
				require.ErrorAs(t, err, &e)
				assert.Equal(t, tt.wantErr, e.Problems)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_cached(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAPIKey, "first")
	t.Setenv(EnvBaseURL, "https://redash.example.com")

	c1, err := Resolve()
	require.NoError(t, err)
	t.Setenv(EnvAPIKey, "second")

	c2, err := Resolve()
	require.NoError(t, err)
	assert.Same(t, c1, c2)
	assert.Equal(t, "first", c2.APIKey)

	Reset()
	c3, err := Resolve()
	require.NoError(t, err)
	assert.Equal(t, "second", c3.APIKey)
}

func TestResolve_failureNotCached(t *testing.T) {
	clearEnv(t)
	_, err := Resolve()
	require.Error(t, err)

	t.Setenv(EnvAPIKey, "key")
	t.Setenv(EnvBaseURL, "https://redash.example.com")
	c, err := Resolve()
	require.NoError(t, err)
	assert.Equal(t, "key", c.APIKey)
}

func TestResolve_concurrent(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAPIKey, "key")
	t.Setenv(EnvBaseURL, "https://redash.example.com")

	const n = 16
	results := make(chan *Config, n)
	for range n {
		go func() {
			c, err := Resolve()
			assert.NoError(t, err)
			results <- c
		}()
	}
	first := <-results
	for range n - 1 {
		assert.Same(t, first, <-results)
	}
}

func TestError_Error(t *testing.T) {
	assert.Equal(t, "invalid configuration: a", (&Error{Problems: []string{"a"}}).Error())
	assert.Equal(t, "invalid configuration:\n\ta\n\tb", (&Error{Problems: []string{"a", "b"}}).Error())
}
