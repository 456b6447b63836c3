package registration_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formguard/modules/registration"
	"github.com/dmitrymomot/formguard/pkg/countries"
	form "github.com/dmitrymomot/formguard/pkg/registration"
)

func validValues() url.Values {
	return url.Values{
		form.FirstName:       {"Anne-Marie"},
		form.LastName:        {"O'Brien"},
		form.City:            {"Saint Paul"},
		form.Phone:           {"(555) 010-9999"},
		form.Zipcode:         {"55101"},
		form.Email:           {"anne@example.com"},
		form.Username:        {"annemarie"},
		form.Password:        {"abc12345"},
		form.Address:         {"12 Summit Avenue"},
		form.Birthdate:       {"1990-04-12"},
		form.ConfirmPassword: {"abc12345"},
		form.Country:         {"Ireland"},
		form.Terms:           {"on"},
		form.Gender:          {"female"},
	}
}

type envelope struct {
	Data  json.RawMessage           `json:"data"`
	Meta  map[string]any            `json:"meta"`
	Error *registration.ErrorDetail `json:"error"`
}

func newHandler(opts ...registration.Option) http.Handler {
	return registration.NewService(form.NewEngine(nil), opts...).Handle()
}

func post(t *testing.T, h http.Handler, target string, values url.Values) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func fieldResult(t *testing.T, env envelope) registration.FieldResult {
	t.Helper()
	var res registration.FieldResult
	require.NoError(t, json.Unmarshal(env.Data, &res))
	return res
}

func TestCheckField(t *testing.T) {
	h := newHandler()

	t.Run("sanitizes before evaluating", func(t *testing.T) {
		values := url.Values{form.Zipcode: {"55-101"}}
		rec, env := post(t, h, "/fields/zipcode", values)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

		res := fieldResult(t, env)
		assert.Equal(t, registration.FieldResult{Field: "zipcode", Value: "55101", Valid: true}, res)
	})

	t.Run("typed invalid value shows its error", func(t *testing.T) {
		_, env := post(t, h, "/fields/email", url.Values{form.Email: {"anne@"}})
		res := fieldResult(t, env)
		assert.False(t, res.Valid)
		assert.True(t, res.ShowError)
	})

	t.Run("empty free text stays quiet until submit", func(t *testing.T) {
		_, env := post(t, h, "/fields/username", url.Values{})
		res := fieldResult(t, env)
		assert.False(t, res.Valid)
		assert.False(t, res.ShowError)

		_, env = post(t, h, "/fields/username?submit=true", url.Values{})
		assert.True(t, fieldResult(t, env).ShowError)
	})

	t.Run("eager fields show immediately", func(t *testing.T) {
		_, env := post(t, h, "/fields/terms", url.Values{})
		res := fieldResult(t, env)
		assert.False(t, res.Valid)
		assert.True(t, res.ShowError)
	})

	t.Run("confirmation reads the rest of the form", func(t *testing.T) {
		values := url.Values{form.Password: {"abc12345"}, form.ConfirmPassword: {"abc12345"}}
		_, env := post(t, h, "/fields/confirmPassword", values)
		assert.True(t, fieldResult(t, env).Valid)

		values.Set(form.Password, "different1")
		_, env = post(t, h, "/fields/confirmPassword", values)
		assert.False(t, fieldResult(t, env).Valid)
	})

	t.Run("unregistered field is valid", func(t *testing.T) {
		_, env := post(t, h, "/fields/nickname", url.Values{"nickname": {"!!"}})
		res := fieldResult(t, env)
		assert.True(t, res.Valid)
		assert.Equal(t, "!!", res.Value)
	})

	t.Run("gender group is checked on its own", func(t *testing.T) {
		_, env := post(t, h, "/fields/gender?submit=true", url.Values{form.FirstName: {"Anne"}})
		assert.Equal(t, registration.FieldResult{Field: "gender", Valid: false, ShowError: true}, fieldResult(t, env))

		_, env = post(t, h, "/fields/gender", url.Values{})
		res := fieldResult(t, env)
		assert.False(t, res.Valid)
		assert.False(t, res.ShowError, "an untouched group waits for submit")

		_, env = post(t, h, "/fields/gender?submit=true", url.Values{form.Gender: {"female"}})
		res = fieldResult(t, env)
		assert.True(t, res.Valid)
		assert.Equal(t, "female", res.Value)
	})

	t.Run("long values are truncated", func(t *testing.T) {
		_, env := post(t, h, "/fields/address", url.Values{form.Address: {strings.Repeat("a", 5000)}})
		res := fieldResult(t, env)
		assert.Len(t, res.Value, registration.DefaultMaxFieldLength)
		assert.True(t, res.Valid)

		short := newHandler(registration.WithMaxFieldLength(4))
		_, env = post(t, short, "/fields/zipcode", url.Values{form.Zipcode: {"123456"}})
		assert.Equal(t, "1234", fieldResult(t, env).Value)
	})

	t.Run("control characters are stripped", func(t *testing.T) {
		_, env := post(t, h, "/fields/username", url.Values{form.Username: {"anne\x00\x07"}})
		assert.Equal(t, "anne", fieldResult(t, env).Value)
	})
}

func TestSubmit(t *testing.T) {
	h := newHandler()

	t.Run("valid form", func(t *testing.T) {
		rec, env := post(t, h, "/submit", validValues())
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"valid":true}`, string(env.Data))
		assert.Nil(t, env.Error)
	})

	t.Run("sanitizable input is accepted", func(t *testing.T) {
		values := validValues()
		values.Set(form.FirstName, "Anne3")
		rec, _ := post(t, h, "/submit", values)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("invalid form", func(t *testing.T) {
		values := validValues()
		values.Set(form.Email, "not-an-email")
		values.Del(form.Gender)
		values.Del(form.Terms)

		rec, env := post(t, h, "/submit", values)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "validation_failed", env.Error.Code)
		assert.Equal(t, map[string][]string{
			"email":  {"must be a valid email address"},
			"terms":  {"must be accepted"},
			"gender": {"selection is required"},
		}, env.Error.Details)
		assert.Equal(t, "email", env.Meta["first_invalid"])
		assert.Equal(t, []any{"email", "terms", "gender"}, env.Meta["visible"])
	})

	t.Run("empty form reports every field", func(t *testing.T) {
		rec, env := post(t, h, "/submit", url.Values{})
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Len(t, env.Error.Details, 14)
		assert.Equal(t, "firstName", env.Meta["first_invalid"])
	})

	t.Run("oversized body", func(t *testing.T) {
		small := newHandler(registration.WithMaxBodyBytes(16))
		rec, env := post(t, small, "/submit", validValues())
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		assert.Equal(t, "payload_too_large", env.Error.Code)
	})

	t.Run("multipart body", func(t *testing.T) {
		body := &strings.Builder{}
		body.WriteString("--b\r\nContent-Disposition: form-data; name=\"zipcode\"\r\n\r\n1-2-3\r\n--b--\r\n")
		req := httptest.NewRequest(http.MethodPost, "/fields/zipcode", strings.NewReader(body.String()))
		req.Header.Set("Content-Type", "multipart/form-data; boundary=b")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var env envelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		assert.Equal(t, "123", fieldResult(t, env).Value)
	})
}

func TestCountries(t *testing.T) {
	get := func(h http.Handler) (*httptest.ResponseRecorder, envelope) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/countries", nil))
		var env envelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		return rec, env
	}

	t.Run("default offers the fallback option", func(t *testing.T) {
		rec, env := get(newHandler())
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `["Other"]`, string(env.Data))
	})

	t.Run("configured source", func(t *testing.T) {
		_, env := get(newHandler(registration.WithCountries(countries.Static("Chile", "Ireland"))))
		assert.JSONEq(t, `["Chile","Ireland"]`, string(env.Data))
	})

	t.Run("failing source", func(t *testing.T) {
		failing := countries.SourceFunc(func(context.Context) ([]string, error) {
			return nil, errors.New("boom")
		})
		rec, env := get(newHandler(registration.WithCountries(failing)))
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Equal(t, "countries_unavailable", env.Error.Code)
	})

	t.Run("fallback wrapped source never fails", func(t *testing.T) {
		failing := countries.SourceFunc(func(context.Context) ([]string, error) {
			return nil, errors.New("boom")
		})
		rec, env := get(newHandler(registration.WithCountries(countries.Fallback(failing, nil))))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `["Other"]`, string(env.Data))
	})
}

func TestMethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	newHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/submit", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
