// Package httpapi exposes the symptom checker over REST. It owns request
// decoding and validation, API-key authentication, and the mapping from
// service errors to HTTP statuses; all business logic lives in the services.
package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/medassist/symptomchecker/internal/common"
	"github.com/medassist/symptomchecker/internal/logging"
	"github.com/medassist/symptomchecker/internal/server/symptomchecks"
	"github.com/medassist/symptomchecker/internal/server/users"
)

const serviceVersion = "1.0.0"

// HealthChecker reports reachability of the external analysis provider.
type HealthChecker interface {
	HealthCheck(ctx context.Context) bool
}

type Handlers struct {
	users    *users.Service
	checks   *symptomchecks.Service
	health   HealthChecker
	db       *sql.DB
	validate *validator.Validate
	logger   logging.Logger
}

func NewHandlers(us *users.Service, cs *symptomchecks.Service, health HealthChecker, db *sql.DB, logger logging.Logger) *Handlers {
	return &Handlers{
		users:    us,
		checks:   cs,
		health:   health,
		db:       db,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger.With("module", "httpapi"),
	}
}

// Signup handles POST /auth/signup.
func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, common.ErrorAlreadyExists):
			writeError(w, http.StatusConflict, "user with this email already exists")
		default:
			h.logger.Error(r.Context(), "signup error", "error", err.Error())
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, newUserResponse(user))
}

// Signin handles POST /auth/signin.
func (h *Handlers) Signin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		h.logger.Error(r.Context(), "signin error", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, newUserResponse(user))
}

// SymptomCheck handles POST /symptom-check.
func (h *Handlers) SymptomCheck(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "API key required")
		return
	}

	var req symptomCheckRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	check, err := h.checks.Submit(r.Context(), user.ID, req.submission())
	if err != nil {
		h.logger.Error(r.Context(), "symptom check error", "user_id", user.ID, "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Failed to process symptom check")
		return
	}

	writeJSON(w, http.StatusOK, newSymptomCheckResponse(check))
}

// SymptomHistory handles GET /symptom-history.
func (h *Handlers) SymptomHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "API key required")
		return
	}

	checks, err := h.checks.History(r.Context(), user.ID)
	if err != nil {
		h.logger.Error(r.Context(), "symptom history error", "user_id", user.ID, "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Failed to retrieve symptom history")
		return
	}

	resp := historyResponse{
		Checks:     make([]symptomCheckResponse, 0, len(checks)),
		TotalCount: len(checks),
	}
	for _, c := range checks {
		resp.Checks = append(resp.Checks, newSymptomCheckResponse(c))
	}

	writeJSON(w, http.StatusOK, resp)
}

// Health handles GET /health, probing the database and the analysis
// provider. Probe failures degrade the reported status, never the endpoint.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	dbStatus := "healthy"
	if err := h.db.PingContext(r.Context()); err != nil {
		h.logger.Error(r.Context(), "database health check failed", "error", err.Error())
		dbStatus = "unhealthy"
	}

	providerStatus := "healthy"
	if !h.health.HealthCheck(r.Context()) {
		providerStatus = "unhealthy"
	}

	status := "healthy"
	if dbStatus != "healthy" || providerStatus != "healthy" {
		status = "unhealthy"
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":    status,
		"database":  dbStatus,
		"openai":    providerStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Root handles GET /.
func (h *Handlers) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Medical Symptom Checker API",
		"version": serviceVersion,
		"health":  "/health",
	})
}

// decodeAndValidate decodes the JSON body into dst and runs struct
// validation, writing a 400 response on failure.
func (h *Handlers) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}

	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			writeError(w, http.StatusBadRequest, validationDetail(verrs[0]))
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid request")
		return false
	}

	return true
}

func validationDetail(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field " + fe.Field() + " is required"
	case "min":
		return "field " + fe.Field() + " is below the allowed minimum (" + fe.Param() + ")"
	case "max":
		return "field " + fe.Field() + " is above the allowed maximum (" + fe.Param() + ")"
	default:
		return "field " + fe.Field() + " is invalid"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}
