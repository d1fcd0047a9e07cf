package hook

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// ManifestName is the file each hook directory must contain.
const ManifestName = "hook.json"

// ErrHookNotFound is returned when a requested hook does not exist.
var ErrHookNotFound = errors.New("hook not found")

// Manager discovers hooks under a directory.
type Manager struct {
	dir   string
	hooks map[string]*Hook
	mu    sync.RWMutex
}

// NewManager creates a Manager for dir. Nothing is loaded until Discover.
func NewManager(dir string) *Manager {
	return &Manager{
		dir:   dir,
		hooks: make(map[string]*Hook),
	}
}

// Discover rescans the directory. A missing directory means no hooks;
// unreadable or invalid manifests are logged and skipped.
func (m *Manager) Discover() error {
	hooks := make(map[string]*Hook)

	entries, err := os.ReadDir(m.dir)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		hookPath := filepath.Join(m.dir, entry.Name())
		data, err := os.ReadFile(filepath.Join(hookPath, ManifestName))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			log.Printf("Skipping hook %s: %v", entry.Name(), err)
			continue
		}

		var manifest Manifest
		if err := json.Unmarshal(data, &manifest); err != nil {
			log.Printf("Skipping hook %s: invalid manifest: %v", entry.Name(), err)
			continue
		}
		if manifest.Name == "" {
			manifest.Name = entry.Name()
		}

		hooks[manifest.Name] = &Hook{
			Manifest:   manifest,
			Path:       hookPath,
			Executable: filepath.Join(hookPath, manifest.Executable),
		}
	}

	m.mu.Lock()
	m.hooks = hooks
	m.mu.Unlock()
	return nil
}

// Get returns a hook by name.
func (m *Manager) Get(name string) (*Hook, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	h, ok := m.hooks[name]
	if !ok {
		return nil, ErrHookNotFound
	}
	return h, nil
}

// List returns every discovered hook ordered by name.
func (m *Manager) List() []*Hook {
	m.mu.RLock()
	defer m.mu.RUnlock()

	hooks := make([]*Hook, 0, len(m.hooks))
	for _, h := range m.hooks {
		hooks = append(hooks, h)
	}
	sort.Slice(hooks, func(i, j int) bool { return hooks[i].Manifest.Name < hooks[j].Manifest.Name })
	return hooks
}

// For returns the hooks subscribed to ev, ordered by name.
func (m *Manager) For(ev Event) []*Hook {
	var out []*Hook
	for _, h := range m.List() {
		if h.Handles(ev) {
			out = append(out, h)
		}
	}
	return out
}

// Dir returns the hook directory.
func (m *Manager) Dir() string {
	return m.dir
}
