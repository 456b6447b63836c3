package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/formguard/modules/registration"
	"github.com/dmitrymomot/formguard/pkg/cache"
	"github.com/dmitrymomot/formguard/pkg/countries"
	"github.com/dmitrymomot/formguard/pkg/httpserver"
	"github.com/dmitrymomot/formguard/pkg/logger"
	form "github.com/dmitrymomot/formguard/pkg/registration"
	"github.com/dmitrymomot/formguard/pkg/redis"
	"github.com/dmitrymomot/formguard/pkg/requestid"
	"github.com/dmitrymomot/formguard/pkg/validator"
)

var errInvalidLanguage = errors.New("invalid COUNTRIES_LANGUAGE")

// newEngine loads RULES_FILE when set and falls back to the built-in
// registration rules otherwise.
func newEngine(cfg Config, log *slog.Logger) (*validator.Engine, error) {
	if cfg.RulesFile == "" {
		return form.NewEngine(log), nil
	}

	set, err := validator.LoadRulesFile(cfg.RulesFile, nil)
	if err != nil {
		return nil, err
	}
	engine, err := set.Engine(validator.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("rules file %s: %w", cfg.RulesFile, err)
	}
	log.Info("loaded rules file",
		slog.String("path", cfg.RulesFile),
		slog.Int("rules", engine.Registry().Len()),
	)
	return engine, nil
}

// newCountrySource stacks the decorators around the REST source: Redis
// (when a client is given) below the in-process LRU, an overall deadline
// above it, and Fallback on top so the selector always has at least one
// option. Failures are held for FailureTTL so a dead upstream is not retried
// on every request.
func newCountrySource(cfg CountriesConfig, rdb goredis.UniversalClient, log *slog.Logger) (countries.Source, error) {
	tag, err := language.Parse(cfg.Language)
	if err != nil {
		return nil, errors.Join(errInvalidLanguage, err)
	}

	log = log.With(logger.Component("countries"))

	var src countries.Source = countries.NewRESTSource(
		countries.WithBaseURL(cfg.BaseURL),
		countries.WithTimeout(cfg.Timeout),
		countries.WithMaxRetries(cfg.MaxRetries),
		countries.WithLanguage(tag),
		countries.WithRESTLogger(log),
	)
	if rdb != nil {
		src = countries.RedisCached(src, rdb, cfg.RedisKey, cfg.CacheTTL, log)
	}
	src = countries.Cached(src,
		cache.NewLRUCache[string, []string](1, cache.WithTTL(cfg.CacheTTL)),
		countries.WithFailureTTL(cfg.FailureTTL),
	)
	src = countries.Deadline(src, cfg.Deadline)
	return countries.Fallback(src, log), nil
}

// newRouter mounts the probes and the registration module behind the
// request id and panic recovery middleware.
func newRouter(svc *registration.Service, log *slog.Logger, checks ...func(context.Context) error) http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", httpserver.LivenessHandler())
	r.Get("/readyz", httpserver.ReadinessHandler(log, checks...))
	r.Mount("/", svc.Handle())
	return r
}

func run(ctx context.Context, cfg Config, log *slog.Logger) error {
	engine, err := newEngine(cfg, log)
	if err != nil {
		return err
	}

	var (
		rdb    goredis.UniversalClient
		checks []func(context.Context) error
	)
	if cfg.Redis.Enabled() {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()
		rdb = client
		checks = append(checks, redis.Healthcheck(client))
	}

	src, err := newCountrySource(cfg.Countries, rdb, log)
	if err != nil {
		return err
	}
	if cfg.Countries.WarmOnStart {
		go func() {
			names, _ := src.Countries(context.WithoutCancel(ctx))
			log.Debug("country list warmed", slog.Int("count", len(names)))
		}()
	}

	svc := registration.NewService(engine,
		registration.WithCountries(src),
		registration.WithLogger(log),
	)

	srv := httpserver.New(cfg.HTTP, newRouter(svc, log, checks...), httpserver.WithLogger(log))
	return srv.Run(ctx)
}
