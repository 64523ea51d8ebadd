package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/designhouse/printdesk/internal/metrics"
	"github.com/designhouse/printdesk/internal/storage"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func respondFields(w http.ResponseWriter, fields map[string][]string) {
	respondJSON(w, http.StatusBadRequest, map[string]any{"errors": fields})
}

// writeError maps service errors onto HTTP responses.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErr *storage.ValidationError
		forbiddenErr  *storage.ForbiddenError
	)

	switch {
	case errors.As(err, &validationErr):
		respondFields(w, validationErr.Fields)
	case errors.As(err, &forbiddenErr):
		respondError(w, http.StatusForbidden, forbiddenErr.Reason)
	case errors.Is(err, storage.ErrNotFound):
		respondError(w, http.StatusNotFound, "Not found.")
	case errors.Is(err, storage.ErrConflict):
		respondError(w, http.StatusConflict, "Cannot delete this record because it is still referenced.")
	case errors.Is(err, storage.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "Invalid credentials.")
	case errors.Is(err, storage.ErrKeyExhausted):
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "Could not allocate a unique secret key, try again later.",
			"code":  "secret_key_exhausted",
		})
	default:
		metrics.OperationErrorsTotal.WithLabelValues("http").Inc()
		s.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Internal server error.")
	}
}

// bind decodes the JSON body into dst and validates it. It writes the error
// response itself and reports whether the handler may continue.
func bind(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return false
		}
		fields := make(map[string][]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields[fe.Field()] = append(fields[fe.Field()], fieldMessage(fe))
		}
		respondFields(w, fields)
		return false
	}
	return true
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "min":
		return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
	case "gt":
		return fmt.Sprintf("Ensure this value is greater than %s.", fe.Param())
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "oneof":
		return fmt.Sprintf("%q is not a valid choice.", fmt.Sprint(fe.Value()))
	case "email":
		return "Enter a valid email address."
	default:
		return "Invalid value."
	}
}

// pathID reads an integer path variable. Routes only match digits, so a
// failure means the value overflowed.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// queryParams collects typed query values and their field errors.
type queryParams struct {
	values url.Values
	errs   storage.ValidationError
}

func newQueryParams(r *http.Request) *queryParams {
	return &queryParams{values: r.URL.Query()}
}

func (q *queryParams) String(key string) string {
	return strings.TrimSpace(q.values.Get(key))
}

func (q *queryParams) OptionalString(key string) *string {
	if !q.values.Has(key) {
		return nil
	}
	v := q.String(key)
	return &v
}

func (q *queryParams) Int(key string) int {
	raw := q.String(key)
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		q.errs.Add(key, "A valid integer is required.")
		return 0
	}
	return v
}

func (q *queryParams) Int64(key string) *int64 {
	raw := q.String(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		q.errs.Add(key, "A valid integer is required.")
		return nil
	}
	return &v
}

func (q *queryParams) Bool(key string) *bool {
	raw := q.String(key)
	if raw == "" {
		return nil
	}
	switch strings.ToLower(raw) {
	case "true", "1", "yes", "on":
		v := true
		return &v
	case "false", "0", "no", "off":
		v := false
		return &v
	}
	q.errs.Add(key, "Must be a valid boolean.")
	return nil
}

// Valid writes a 400 response when any value failed to parse.
func (q *queryParams) Valid(w http.ResponseWriter) bool {
	if len(q.errs.Fields) > 0 {
		respondFields(w, q.errs.Fields)
		return false
	}
	return true
}
