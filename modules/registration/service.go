package registration

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/formguard/pkg/countries"
	"github.com/dmitrymomot/formguard/pkg/sanitizer"
	"github.com/dmitrymomot/formguard/pkg/validator"
)

const (
	// DefaultMaxBodyBytes bounds the size of a submitted form.
	DefaultMaxBodyBytes = 1 << 20
	// DefaultMaxFieldLength caps each posted value, in runes.
	DefaultMaxFieldLength = 1024
)

// Service serves the registration form checks over HTTP.
type Service struct {
	engine    *validator.Engine
	countries countries.Source
	log       *slog.Logger
	maxBody   int64
	maxField  int
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the request logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithCountries sets the source of GET /countries. Without it the endpoint
// only offers countries.FallbackOption.
func WithCountries(src countries.Source) Option {
	return func(s *Service) {
		if src != nil {
			s.countries = src
		}
	}
}

// WithMaxBodyBytes overrides DefaultMaxBodyBytes.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// WithMaxFieldLength overrides DefaultMaxFieldLength. Longer values are
// truncated before evaluation.
func WithMaxFieldLength(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxField = n
		}
	}
}

// NewService returns a Service evaluating forms with engine.
func NewService(engine *validator.Engine, opts ...Option) *Service {
	if engine == nil {
		engine = validator.New(nil)
	}
	s := &Service{
		engine:    engine,
		countries: countries.Static(countries.FallbackOption),
		log:       slog.New(slog.DiscardHandler),
		maxBody:   DefaultMaxBodyBytes,
		maxField:  DefaultMaxFieldLength,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handle returns the module router:
//
//	POST /fields/{name}  evaluate one field against the posted form
//	POST /submit         evaluate the whole form
//	GET  /countries      country selector options
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	r.Post("/fields/{name}", s.checkField)
	r.Post("/submit", s.submit)
	r.Get("/countries", s.listCountries)
	return r
}

// sanitize strips control characters, caps the length and removes each
// field's disallowed characters in place, as the form would after write-back.
func (s *Service) sanitize(form map[string][]string) {
	for name, values := range form {
		clean := sanitizer.Compose(
			sanitizer.RemoveControlChars,
			func(v string) string { return sanitizer.MaxLength(v, s.maxField) },
			func(v string) string { return s.engine.Sanitize(v, name) },
		)
		for i, v := range values {
			values[i] = clean(v)
		}
	}
}
