package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/catalog"
	"github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/catalog/dto"
	"github.com/ripifopo/PROGRA-PRO-CS-sub000/pkg/api"
	"github.com/ripifopo/PROGRA-PRO-CS-sub000/pkg/logger"
)

type CatalogHandler struct {
	uc     catalog.UseCase
	logger logger.ZapLogger
}

func NewCatalogHandler(uc catalog.UseCase, log logger.ZapLogger) *CatalogHandler {
	return &CatalogHandler{uc: uc, logger: log}
}

func (h *CatalogHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/pharmacies", h.ListPharmacies)
	mux.HandleFunc("GET /api/categories", h.ListCategories)
	mux.HandleFunc("GET /api/history", h.MedicineHistory)
}

func (h *CatalogHandler) ListPharmacies(w http.ResponseWriter, r *http.Request) {
	views, err := h.uc.ListCatalogs(r.Context())
	if err != nil {
		h.logger.Error("failed to list catalogs", zap.Error(err))
		api.WriteInternalServerError(w, r.URL.Path)
		return
	}
	api.WriteJSON(w, http.StatusOK, views)
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.uc.ListCategories(r.Context())
	if err != nil {
		h.logger.Error("failed to list categories", zap.Error(err))
		api.WriteInternalServerError(w, r.URL.Path)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	api.WriteJSON(w, http.StatusOK, categories)
}

func (h *CatalogHandler) MedicineHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := &dto.HistoryQuery{
		MedicineID: q.Get("medicineId"),
		Name:       q.Get("name"),
		Pharmacy:   q.Get("pharmacy"),
	}
	if query.Pharmacy == "" {
		api.WriteBadRequest(w, "pharmacy is required", r.URL.Path)
		return
	}
	if query.MedicineID == "" && query.Name == "" {
		api.WriteBadRequest(w, "medicineId or name is required", r.URL.Path)
		return
	}

	history, err := h.uc.MedicineHistory(r.Context(), query)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			api.WriteNotFound(w, "no price history for that medicine", r.URL.Path)
			return
		}
		h.logger.Error("failed to fetch medicine history", zap.Error(err))
		api.WriteInternalServerError(w, r.URL.Path)
		return
	}
	api.WriteJSON(w, http.StatusOK, history)
}
