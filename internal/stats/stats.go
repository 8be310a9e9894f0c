package stats

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/lumipallolabs/pollwatch/internal/model"
	"github.com/lumipallolabs/pollwatch/internal/observer"
)

// Stats holds persistent statistics
type Stats struct {
	Lifetime   model.Counts `json:"lifetime"`
	LastTarget string       `json:"last_target,omitempty"` // Path watched most recently
}

// Manager handles loading and saving stats
type Manager struct {
	path         string
	stats        Stats
	mu           sync.RWMutex
	dirty        bool
	saveTimer    *time.Timer
	saveDuration time.Duration
}

// NewManager creates a stats manager backed by path. An empty path uses
// DefaultPath.
func NewManager(path string) *Manager {
	if path == "" {
		path = DefaultPath()
	}
	return &Manager{
		path:         path,
		saveDuration: 2 * time.Second, // Debounce saves
	}
}

// DefaultPath returns the default stats file path
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pollwatch-stats.json"
	}
	return filepath.Join(home, ".pollwatch", "stats.json")
}

// Load loads stats from disk
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			// No stats file yet, start fresh
			m.stats = Stats{}
			return nil
		}
		return err
	}

	return json.Unmarshal(data, &m.stats)
}

// Save saves stats to disk immediately
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.saveLocked()
}

// saveLocked saves stats without acquiring the lock (caller must hold lock)
func (m *Manager) saveLocked() error {
	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(m.stats, "", "  ")
	if err != nil {
		return err
	}

	m.dirty = false
	return os.WriteFile(m.path, data, 0644)
}

// Lifetime returns the all-time change counts
func (m *Manager) Lifetime() model.Counts {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats.Lifetime
}

// LastTarget returns the most recently watched path
func (m *Manager) LastTarget() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats.LastTarget
}

// SetLastTarget records the watched path and schedules a save
func (m *Manager) SetLastTarget(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stats.LastTarget == path {
		return
	}

	m.stats.LastTarget = path
	m.scheduleSaveLocked()
}

// Record counts one change and schedules a save
func (m *Manager) Record(kind observer.ChangeKind) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stats.Lifetime.Add(kind)
	m.scheduleSaveLocked()
}

// scheduleSaveLocked marks stats dirty and (re)arms the debounced save
func (m *Manager) scheduleSaveLocked() {
	m.dirty = true

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(m.saveDuration, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.dirty {
			_ = m.saveLocked() // Ignore errors for background save
		}
	})
}

// Close ensures any pending saves are written
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveTimer != nil {
		m.saveTimer.Stop()
		m.saveTimer = nil
	}

	if m.dirty {
		return m.saveLocked()
	}
	return nil
}
