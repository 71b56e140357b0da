package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ProblemDetails follows RFC 7807 for machine-readable HTTP errors.
type ProblemDetails struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail"`
	Instance string `json:"instance,omitempty"`
}

func (pd *ProblemDetails) Error() string {
	return fmt.Sprintf("%d %s: %s", pd.Status, pd.Title, pd.Detail)
}

func WriteError(w http.ResponseWriter, status int, title, detail, instance string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)

	json.NewEncoder(w).Encode(&ProblemDetails{
		Type:     "about:blank",
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: instance,
	})
}

func WriteBadRequest(w http.ResponseWriter, detail, instance string) {
	WriteError(w, http.StatusBadRequest, "Bad Request", detail, instance)
}

func WriteNotFound(w http.ResponseWriter, detail, instance string) {
	WriteError(w, http.StatusNotFound, "Not Found", detail, instance)
}

func WriteUnauthorized(w http.ResponseWriter, detail, instance string) {
	WriteError(w, http.StatusUnauthorized, "Unauthorized", detail, instance)
}

func WriteConflict(w http.ResponseWriter, detail, instance string) {
	WriteError(w, http.StatusConflict, "Conflict", detail, instance)
}

// WriteInternalServerError hides the underlying error from the client; the
// caller is expected to log it server-side.
func WriteInternalServerError(w http.ResponseWriter, instance string) {
	WriteError(w, http.StatusInternalServerError, "Internal Server Error", "unexpected error", instance)
}

// WriteJSON writes a success payload.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
