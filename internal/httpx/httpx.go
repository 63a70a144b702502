// Package httpx holds the request/response helpers shared by all handlers:
// JSON responding, body binding with validation, and the mapping from the
// apperr taxonomy to HTTP status codes.
package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/ranimhaddad/tijara-backend/internal/apperr"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so validator tags like
	// min=0, gt=0 work on money fields without panicking.
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// Respond writes v as a JSON body with the given status.
func Respond(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Bind decodes the JSON body into req and runs its validator tags.
// Returns false after writing the error response; the caller should
// return immediately.
func Bind(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		Respond(w, http.StatusBadRequest, map[string]string{"detail": "invalid JSON body"})
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fields[strings.ToLower(fe.Field())] = fe.Tag()
			}
		}
		Error(w, &apperr.ValidationError{Fields: fields})
		return false
	}
	return true
}

// Error maps a service error onto the wire. Validation failures carry the
// field map; everything else is a {detail} envelope.
func Error(w http.ResponseWriter, err error) {
	var verr *apperr.ValidationError
	if errors.As(err, &verr) {
		Respond(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"detail": "validation failed",
			"fields": verr.Fields,
		})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperr.ErrInsufficientStock):
		status = http.StatusConflict
	case errors.Is(err, apperr.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, apperr.ErrStorageUnavailable):
		status = http.StatusServiceUnavailable
	}
	Respond(w, status, map[string]string{"detail": err.Error()})
}
