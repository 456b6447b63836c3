package registration

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/formguard/pkg/logger"
	"github.com/dmitrymomot/formguard/pkg/validator"
)

const (
	codeBadRequest        = "bad_request"
	codeTooLarge          = "payload_too_large"
	codeValidationFailed  = "validation_failed"
	codeCountriesDown     = "countries_unavailable"
	validationFailedTitle = "validation failed"
)

// parseForm reads a url-encoded or multipart body, sanitizes it and returns
// the resulting snapshot. It writes the error response itself.
func (s *Service) parseForm(w http.ResponseWriter, r *http.Request) (validator.Values, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)

	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		err = r.ParseMultipartForm(s.maxBody)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, s.log, http.StatusRequestEntityTooLarge, codeTooLarge, "form is too large")
			return validator.Values{}, false
		}
		writeError(w, r, s.log, http.StatusBadRequest, codeBadRequest, "malformed form body")
		return validator.Values{}, false
	}

	s.sanitize(r.PostForm)
	return validator.FromURLValues(r.PostForm), true
}

func (s *Service) checkField(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	submit, _ := strconv.ParseBool(r.URL.Query().Get("submit"))

	snap, ok := s.parseForm(w, r)
	if !ok {
		return
	}

	value := snap.Value(name)
	valid := s.engine.EvaluateField(name, snap)

	writeJSON(w, r, s.log, http.StatusOK, Response{Data: FieldResult{
		Field:     name,
		Value:     value,
		Valid:     valid,
		ShowError: s.engine.ShowError(name, valid, value, submit),
	}})
}

func (s *Service) submit(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.parseForm(w, r)
	if !ok {
		return
	}

	verdict := s.engine.EvaluateForm(snap)
	if verdict.Valid {
		s.log.InfoContext(r.Context(), "registration accepted", logger.Valid(true))
		writeJSON(w, r, s.log, http.StatusOK, Response{Data: SubmitResult{Valid: true}})
		return
	}

	first, _ := verdict.FirstInvalid()
	s.log.InfoContext(r.Context(), "registration rejected",
		logger.Valid(false),
		logger.Fields(verdict.Invalid()),
	)
	writeJSON(w, r, s.log, http.StatusUnprocessableEntity, Response{
		Error: &ErrorDetail{
			Code:    codeValidationFailed,
			Message: validationFailedTitle,
			Details: verdict.Errors().Map(),
		},
		Meta: map[string]any{
			"first_invalid": first,
			"visible":       s.engine.Visible(verdict, snap, true),
		},
	})
}

func (s *Service) listCountries(w http.ResponseWriter, r *http.Request) {
	names, err := s.countries.Countries(r.Context())
	if err != nil {
		s.log.ErrorContext(r.Context(), "country list unavailable", logger.Error(err))
		writeError(w, r, s.log, http.StatusBadGateway, codeCountriesDown, "country list is unavailable")
		return
	}
	writeJSON(w, r, s.log, http.StatusOK, Response{Data: names})
}
