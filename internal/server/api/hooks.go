package api

import (
	"log"
	"net/http"

	"github.com/ayusman/glimmer/internal/hook"
)

// HooksHandler serves /api/hooks. GET lists discovered hooks; POST rescans
// the hook directory.
type HooksHandler struct {
	manager *hook.Manager
}

// NewHooksHandler creates a HooksHandler backed by m.
func NewHooksHandler(m *hook.Manager) *HooksHandler {
	return &HooksHandler{manager: m}
}

type hookInfo struct {
	Name        string       `json:"name"`
	Version     string       `json:"version"`
	Description string       `json:"description"`
	Events      []hook.Event `json:"events"`
}

type listHooksResponse struct {
	Dir   string     `json:"dir"`
	Hooks []hookInfo `json:"hooks"`
}

func (h *HooksHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
	case http.MethodPost:
		if err := h.manager.Discover(); err != nil {
			log.Printf("Failed to rescan hooks: %v", err)
			writeError(w, http.StatusInternalServerError, "Failed to rescan hooks")
			return
		}
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	resp := listHooksResponse{Dir: h.manager.Dir(), Hooks: []hookInfo{}}
	for _, hk := range h.manager.List() {
		resp.Hooks = append(resp.Hooks, hookInfo{
			Name:        hk.Manifest.Name,
			Version:     hk.Manifest.Version,
			Description: hk.Manifest.Description,
			Events:      hk.Manifest.Events,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
