package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/ayusman/glimmer/internal/app"
	"github.com/ayusman/glimmer/internal/store"
	"github.com/ayusman/glimmer/internal/tuning"
)

// SettingsHandler serves /api/settings and /api/settings/{key}. Overrides
// take effect on the next start.
type SettingsHandler struct {
	store *store.Store
}

// NewSettingsHandler creates a SettingsHandler backed by s.
func NewSettingsHandler(s *store.Store) *SettingsHandler {
	return &SettingsHandler{store: s}
}

type settingsResponse struct {
	Values    map[string]float64 `json:"values"`
	Overrides []store.Setting    `json:"overrides"`
}

type updateSettingsRequest struct {
	Settings map[string]string `json:"settings"`
}

func (h *SettingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(strings.TrimPrefix(r.URL.Path, "/api/settings"), "/")

	if key != "" {
		if r.Method != http.MethodDelete {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.delete(w, key)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w)
	case http.MethodPut:
		h.put(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *SettingsHandler) get(w http.ResponseWriter) {
	resp, err := h.current()
	if err != nil {
		log.Printf("Failed to read settings: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to read settings")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *SettingsHandler) put(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if len(req.Settings) == 0 {
		writeError(w, http.StatusBadRequest, "No settings given")
		return
	}

	// Validate everything before writing anything.
	for k, v := range req.Settings {
		if _, err := tuning.Parse(k, v); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	repo := h.store.Settings()
	for k, v := range req.Settings {
		if err := repo.Set(k, v); err != nil {
			log.Printf("Failed to save setting %s: %v", k, err)
			writeError(w, http.StatusInternalServerError, "Failed to save settings")
			return
		}
	}

	resp, err := h.current()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read settings")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *SettingsHandler) delete(w http.ResponseWriter, key string) {
	err := h.store.Settings().Delete(key)
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "Setting not found")
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Failed to delete setting")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

// current returns defaults with stored overrides applied.
func (h *SettingsHandler) current() (settingsResponse, error) {
	repo := h.store.Settings()

	overrides, err := repo.List()
	if err != nil {
		return settingsResponse{}, err
	}
	if overrides == nil {
		overrides = []store.Setting{}
	}

	cfg := app.DefaultConfig()
	if _, err := tuning.Apply(&cfg, repo); err != nil {
		return settingsResponse{}, err
	}

	return settingsResponse{Values: tuning.Values(cfg), Overrides: overrides}, nil
}
