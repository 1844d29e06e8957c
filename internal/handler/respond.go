package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"fsanano/garden-shop/internal/model"
)

const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// Decimals are compared as float64 by tags like gte. That is a coarse check: types that need
	// an exact one implement checker.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	return v
}

// checker is implemented by request types with checks the struct tags cannot express.
type checker interface {
	Check() error
}

// decode reads a JSON body into dst and validates it.
func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return model.NewValidationError("invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return model.NewValidationError("%s failed on '%s'", fe.Namespace(), fe.Tag())
		}
		return model.NewValidationError("invalid request body")
	}
	if c, ok := dst.(checker); ok {
		return c.Check()
	}
	return nil
}

func idParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, model.NewValidationError("%s must be a positive integer", name)
	}
	return id, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type resultResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// classify maps err to a status and a message that is safe to return.
func classify(err error) (int, string) {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Msg
	case errors.Is(err, model.ErrInsufficientBalance):
		return http.StatusBadRequest, model.ErrInsufficientBalance.Error()
	case errors.Is(err, model.ErrNotFound):
		for _, nf := range []error{model.ErrUserNotFound, model.ErrItemNotFound, model.ErrPlantNotFound} {
			if errors.Is(err, nf) {
				return http.StatusNotFound, nf.Error()
			}
		}
		return http.StatusNotFound, model.ErrNotFound.Error()
	case errors.Is(err, model.ErrConflict):
		return http.StatusConflict, "resource already exists"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// failure logs server errors and returns what the client should see.
func failure(log *logrus.Logger, r *http.Request, err error) (int, string) {
	status, msg := classify(err)
	if status >= http.StatusInternalServerError {
		log.WithFields(logrus.Fields{
			"request_id": middleware.GetReqID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
		}).WithError(err).Error("request failed")
	}
	return status, msg
}

func writeError(w http.ResponseWriter, r *http.Request, log *logrus.Logger, err error) {
	status, msg := failure(log, r, err)
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeResultError answers in the {success:false, error} envelope.
func writeResultError(w http.ResponseWriter, r *http.Request, log *logrus.Logger, err error) {
	status, msg := failure(log, r, err)
	writeJSON(w, status, resultResponse{Success: false, Error: msg})
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorResponse{Error: fmt.Sprintf("no route for %s %s", r.Method, r.URL.Path)})
}
