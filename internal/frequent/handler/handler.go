package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/frequent"
	"github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/frequent/dto"
	"github.com/ripifopo/PROGRA-PRO-CS-sub000/pkg/api"
	"github.com/ripifopo/PROGRA-PRO-CS-sub000/pkg/logger"
)

type FrequentHandler struct {
	uc     frequent.UseCase
	logger logger.ZapLogger
}

func NewFrequentHandler(uc frequent.UseCase, log logger.ZapLogger) *FrequentHandler {
	return &FrequentHandler{uc: uc, logger: log}
}

func (h *FrequentHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/frequents", h.SaveFrequent)
	mux.HandleFunc("GET /api/frequents", h.ListFrequents)
	mux.HandleFunc("DELETE /api/frequents/{id}", h.DeleteFrequent)
}

func (h *FrequentHandler) SaveFrequent(w http.ResponseWriter, r *http.Request) {
	var input dto.CreateFrequentInput
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

	created, err := h.uc.SaveFrequent(r.Context(), &input)
	if err != nil {
		h.logger.Error("failed to save frequent medicine", zap.Error(err))
		api.WriteInternalServerError(w, r.URL.Path)
		return
	}
	api.WriteJSON(w, http.StatusCreated, created)
}

func (h *FrequentHandler) ListFrequents(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		api.WriteBadRequest(w, "email is required", r.URL.Path)
		return
	}

	fms, err := h.uc.ListFrequents(r.Context(), email)
	if err != nil {
		h.logger.Error("failed to list frequent medicines", zap.Error(err))
		api.WriteInternalServerError(w, r.URL.Path)
		return
	}
	api.WriteJSON(w, http.StatusOK, fms)
}

func (h *FrequentHandler) DeleteFrequent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	err := h.uc.DeleteFrequent(r.Context(), id)
	if err != nil {
		if errors.Is(err, frequent.ErrNotFound) {
			api.WriteNotFound(w, "no frequent medicine with id "+id, r.URL.Path)
			return
		}
		h.logger.Error("failed to delete frequent medicine", zap.String("id", id), zap.Error(err))
		api.WriteInternalServerError(w, r.URL.Path)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
