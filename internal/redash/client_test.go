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

package redash

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL+"/", "secret", WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		apiKey  string
		wantURL string
		wantErr bool
	}{
		{"ok", "https://redash.example.com", "key", "https://redash.example.com", false},
		{"trailing slash", "https://redash.example.com//", "key", "https://redash.example.com", false},
		{"empty url", "", "key", "", true},
		{"empty key", "https://redash.example.com", "", "", true},
		{"bad scheme", "ftp://redash.example.com", "key", "", true},
		{"not a url", "://", "key", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(tt.baseURL, tt.apiKey)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, got.baseURL)
			assert.Equal(t, defUserAgent, got.ua)
		})
	}
}

func TestClient_Get_headers(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/data_sources/1", r.URL.Path)
		assert.Equal(t, "Key secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		io.WriteString(w, `{"id":1,"name":"pg","type":"pg"}`)
	})
	WithUserAgent("test-agent")(c)

	ds, err := Get[DataSource](t.Context(), c, "api/data_sources/1")
	require.NoError(t, err)
	assert.Equal(t, DataSource{ID: 1, Name: "pg", Type: "pg"}, ds)
}

func TestClient_Post_body(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var got map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, map[string]any{"data_source_id": float64(2), "query": "SELECT 1"}, got)
		io.WriteString(w, `{"job":{"id":"j1","status":1}}`)
	})
	resp, err := Post[submitResponse](t.Context(), c, "/api/query_results", QueryParams{DataSourceID: 2, Query: "SELECT 1"})
	require.NoError(t, err)
	require.NotNil(t, resp.Job)
	assert.Equal(t, "j1", resp.Job.ID)
	assert.Equal(t, JobQueued, resp.Job.Status)
}

func TestClient_statusErrors(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		wantKind Kind
		wantMsg  string
		sentinel error
	}{
		{"400", http.StatusBadRequest, KindValidation, "Invalid request parameters", ErrValidation},
		{"401", http.StatusUnauthorized, KindAuthentication, "Invalid API key or unauthorized access", ErrAuthentication},
		{"404", http.StatusNotFound, KindNotFound, "Resource not found", ErrNotFound},
		{"429", http.StatusTooManyRequests, KindRateLimit, "API rate limit exceeded", ErrRateLimit},
		{"500", http.StatusInternalServerError, KindServer, "Redash server error", ErrServer},
		{"418", http.StatusTeapot, KindGeneric, "API request failed: I'm a teapot", nil},
		{"503", http.StatusServiceUnavailable, KindGeneric, "API request failed: Service Unavailable", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
				io.WriteString(w, `{"message":"boom"}`)
			})
			err := c.Get(t.Context(), "/api/queries/1", nil)
			require.Error(t, err)
			e, ok := AsError(err)
			require.True(t, ok, "want *Error, got %T", err)
			assert.Equal(t, tt.wantKind, e.Kind)
			assert.Equal(t, tt.code, e.StatusCode)
			assert.Equal(t, tt.wantMsg, e.Error())
			assert.Equal(t, `{"message":"boom"}`, e.Body)
			if tt.sentinel != nil {
				assert.ErrorIs(t, err, tt.sentinel)
			}
		})
	}
}

func TestClient_invalidJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `not json`)
	})
	_, err := Get[DataSource](t.Context(), c, "/api/data_sources/1")
	require.Error(t, err)
	_, ok := AsError(err)
	assert.False(t, ok, "decode failure must not be a typed error")
	assert.Contains(t, err.Error(), "decode response")
}

func TestClient_cancelled(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	err := c.Get(ctx, "/api/data_sources", nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestClient_limiter(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[]`)
	})
	// zero rate and zero burst never allows a request.
	WithLimiter(rate.NewLimiter(0, 0))(c)
	err := c.Get(t.Context(), "/api/data_sources", nil)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrServer))
}
