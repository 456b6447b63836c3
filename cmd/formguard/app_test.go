package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formguard/modules/registration"
	"github.com/dmitrymomot/formguard/pkg/config"
	form "github.com/dmitrymomot/formguard/pkg/registration"
	"github.com/dmitrymomot/formguard/pkg/requestid"
	"github.com/dmitrymomot/formguard/pkg/validator"
)

var discard = slog.New(slog.DiscardHandler)

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	require.NoError(t, config.Load(&cfg, config.WithEnvironment(map[string]string{})))

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, "https://restcountries.com", cfg.Countries.BaseURL)
	assert.Equal(t, 24*time.Hour, cfg.Countries.CacheTTL)
	assert.Equal(t, 2, cfg.Countries.MaxRetries)
	assert.True(t, cfg.Countries.WarmOnStart)
	assert.Equal(t, time.Minute, cfg.Countries.FailureTTL)
	assert.Less(t, cfg.Countries.Deadline, cfg.HTTP.WriteTimeout)
}

func TestNewEngine(t *testing.T) {
	t.Run("built-in rules", func(t *testing.T) {
		engine, err := newEngine(Config{}, discard)
		require.NoError(t, err)
		assert.Equal(t, form.Registry().Names(), engine.Registry().Names())
	})

	t.Run("rules file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rules.yaml")
		require.NoError(t, os.WriteFile(path, form.RuleFile(), 0o600))

		engine, err := newEngine(Config{RulesFile: path}, discard)
		require.NoError(t, err)
		assert.Equal(t, form.Registry().Names(), engine.Registry().Names())
		assert.False(t, engine.EvaluateForm(validator.Values{}).Valid)
	})

	t.Run("missing rules file", func(t *testing.T) {
		_, err := newEngine(Config{RulesFile: filepath.Join(t.TempDir(), "none.yaml")}, discard)
		assert.ErrorIs(t, err, validator.ErrInvalidRuleFile)
	})

	t.Run("duplicate rules", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rules.yaml")
		require.NoError(t, os.WriteFile(path, []byte("rules:\n  - {name: a, pattern: x}\n  - {name: a, pattern: y}\n"), 0o600))
		_, err := newEngine(Config{RulesFile: path}, discard)
		assert.ErrorIs(t, err, validator.ErrDuplicateRule)
	})
}

func TestNewCountrySource(t *testing.T) {
	t.Run("invalid language", func(t *testing.T) {
		_, err := newCountrySource(CountriesConfig{Language: "!!"}, nil, discard)
		assert.ErrorIs(t, err, errInvalidLanguage)
	})

	t.Run("fetches once and caches", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			_, _ = w.Write([]byte(`[{"name":{"common":"Peru"}},{"name":{"common":"Chile"}}]`))
		}))
		defer server.Close()

		src, err := newCountrySource(CountriesConfig{BaseURL: server.URL, Language: "en", CacheTTL: time.Hour}, nil, discard)
		require.NoError(t, err)

		for range 2 {
			names, err := src.Countries(context.Background())
			require.NoError(t, err)
			assert.Equal(t, []string{"Chile", "Peru"}, names)
		}
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("unavailable api falls back", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		src, err := newCountrySource(CountriesConfig{BaseURL: server.URL, Language: "en"}, nil, discard)
		require.NoError(t, err)

		names, err := src.Countries(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"Other"}, names)
	})

	t.Run("failing api is not retried on every request", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		src, err := newCountrySource(CountriesConfig{
			BaseURL:    server.URL,
			Language:   "en",
			MaxRetries: 2,
			Deadline:   10 * time.Second,
			FailureTTL: time.Hour,
		}, nil, discard)
		require.NoError(t, err)

		for range 3 {
			names, err := src.Countries(context.Background())
			require.NoError(t, err)
			assert.Equal(t, []string{"Other"}, names)
		}
		assert.Equal(t, int32(3), calls.Load(), "only the first request pays for the retries")
	})

	t.Run("hanging api is cut by the deadline", func(t *testing.T) {
		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-release:
			}
		}))
		defer server.Close()
		defer close(release)

		src, err := newCountrySource(CountriesConfig{
			BaseURL:    server.URL,
			Language:   "en",
			Timeout:    time.Minute,
			MaxRetries: 2,
			Deadline:   100 * time.Millisecond,
		}, nil, discard)
		require.NoError(t, err)

		start := time.Now()
		names, err := src.Countries(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"Other"}, names)
		assert.Less(t, time.Since(start), 5*time.Second)
	})
}

func TestNewRouter(t *testing.T) {
	svc := registration.NewService(form.NewEngine(discard))

	t.Run("probes", func(t *testing.T) {
		h := newRouter(svc, discard)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get(requestid.Header))

		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("failing readiness check", func(t *testing.T) {
		h := newRouter(svc, discard, func(context.Context) error { return errors.New("redis down") })

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("module is mounted", func(t *testing.T) {
		h := newRouter(svc, discard)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/countries", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"data":["Other"]}`, rec.Body.String())
	})
}
