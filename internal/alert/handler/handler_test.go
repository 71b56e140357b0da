package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/alert"
	"github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/alert/dto"
	"github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/model"
	"github.com/ripifopo/PROGRA-PRO-CS-sub000/pkg/logger"
)

type fakeUC struct {
	created   *dto.CreateAlertInput
	deleteErr error
	checks    int
}

func (f *fakeUC) CreateAlert(_ context.Context, input *dto.CreateAlertInput) (*model.Alert, error) {
	f.created = input
	return &model.Alert{BaseModel: model.BaseModel{ID: "new-id"}}, nil
}

func (f *fakeUC) ListAlerts(context.Context, string) ([]model.Alert, error) {
	return []model.Alert{}, nil
}

func (f *fakeUC) DeleteAlert(context.Context, string) error {
	return f.deleteErr
}

func (f *fakeUC) CheckAll(context.Context) (*dto.CheckReport, error) {
	f.checks++
	return &dto.CheckReport{}, nil
}

func newTestMux(uc alert.UseCase) *http.ServeMux {
	mux := http.NewServeMux()
	NewAlertHandler(uc, "secret-token", logger.NewNop()).Register(mux)
	return mux
}

func TestCreateAlertRejectsMissingFields(t *testing.T) {
	mux := newTestMux(&fakeUC{})

	body := `{"email": "ana@example.com", "pharmacy": "Cruz Verde"}`
	req := httptest.NewRequest(http.MethodPost, "/api/alerts", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("content type = %q", ct)
	}
}

func TestCreateAlertAcceptsValidInput(t *testing.T) {
	uc := &fakeUC{}
	mux := newTestMux(uc)

	body := `{"email": "ana@example.com", "medicineName": "Paracetamol", "pharmacy": "Cruz Verde", "category": "dolor y fiebre"}`
	req := httptest.NewRequest(http.MethodPost, "/api/alerts", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", rec.Code, rec.Body.String())
	}
	if uc.created == nil || uc.created.MedicineName != "Paracetamol" {
		t.Errorf("usecase input = %+v", uc.created)
	}
}

func TestDeleteAlertNotFound(t *testing.T) {
	mux := newTestMux(&fakeUC{deleteErr: alert.ErrNotFound})

	req := httptest.NewRequest(http.MethodDelete, "/api/alerts/ghost", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestCheckAlertsRequiresBearerToken(t *testing.T) {
	uc := &fakeUC{}
	mux := newTestMux(uc)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong token", "Bearer nope", http.StatusUnauthorized},
		{"not bearer", "Basic secret-token", http.StatusUnauthorized},
		{"valid", "Bearer secret-token", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/alerts/check", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}

	if uc.checks != 1 {
		t.Errorf("checker ran %d times, want 1", uc.checks)
	}
}
