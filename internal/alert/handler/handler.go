package handler

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/alert"
	"github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/alert/dto"
	"github.com/ripifopo/PROGRA-PRO-CS-sub000/pkg/api"
	"github.com/ripifopo/PROGRA-PRO-CS-sub000/pkg/logger"
)

type AlertHandler struct {
	uc        alert.UseCase
	cronToken string
	logger    logger.ZapLogger
}

func NewAlertHandler(uc alert.UseCase, cronToken string, log logger.ZapLogger) *AlertHandler {
	return &AlertHandler{uc: uc, cronToken: cronToken, logger: log}
}

func (h *AlertHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/alerts", h.CreateAlert)
	mux.HandleFunc("GET /api/alerts", h.ListAlerts)
	mux.HandleFunc("DELETE /api/alerts/{id}", h.DeleteAlert)
	mux.HandleFunc("POST /api/alerts/check", h.CheckAlerts)
}

func (h *AlertHandler) CreateAlert(w http.ResponseWriter, r *http.Request) {
	var input dto.CreateAlertInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.WriteBadRequest(w, "invalid json body", r.URL.Path)
		return
	}

	var missing []string
	for field, value := range map[string]string{
		"email":        input.UserEmail,
		"medicineName": input.MedicineName,
		"pharmacy":     input.Pharmacy,
		"category":     input.Category,
	} {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		api.WriteBadRequest(w, "missing required fields: "+strings.Join(missing, ", "), r.URL.Path)
		return
	}

	created, err := h.uc.CreateAlert(r.Context(), &input)
	if err != nil {
		h.logger.Error("failed to create alert", zap.Error(err))
		api.WriteInternalServerError(w, r.URL.Path)
		return
	}
	api.WriteJSON(w, http.StatusCreated, created)
}

func (h *AlertHandler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		api.WriteBadRequest(w, "email is required", r.URL.Path)
		return
	}

	alerts, err := h.uc.ListAlerts(r.Context(), email)
	if err != nil {
		h.logger.Error("failed to list alerts", zap.Error(err))
		api.WriteInternalServerError(w, r.URL.Path)
		return
	}
	api.WriteJSON(w, http.StatusOK, alerts)
}

func (h *AlertHandler) DeleteAlert(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	err := h.uc.DeleteAlert(r.Context(), id)
	if err != nil {
		if errors.Is(err, alert.ErrNotFound) {
			api.WriteNotFound(w, "no alert with id "+id, r.URL.Path)
			return
		}
		h.logger.Error("failed to delete alert", zap.String("id", id), zap.Error(err))
		api.WriteInternalServerError(w, r.URL.Path)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CheckAlerts is the cron entrypoint. A shared bearer token is weak
// protection but the endpoint only triggers work that is idempotent and
// internally locked.
func (h *AlertHandler) CheckAlerts(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		api.WriteUnauthorized(w, "invalid or missing bearer token", r.URL.Path)
		return
	}

	report, err := h.uc.CheckAll(r.Context())
	if err != nil {
		if errors.Is(err, alert.ErrCheckRunning) {
			api.WriteConflict(w, "an alert check is already running", r.URL.Path)
			return
		}
		h.logger.Error("alert check failed", zap.Error(err))
		api.WriteInternalServerError(w, r.URL.Path)
		return
	}
	api.WriteJSON(w, http.StatusOK, report)
}

func (h *AlertHandler) authorized(r *http.Request) bool {
	if h.cronToken == "" {
		return false
	}
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(h.cronToken)) == 1
}
