package workspace

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Registry tracks the active workspace per window, persisted as a single
// JSON file in the runtime dir. Every operation reads and rewrites the
// whole file; the registry is small and the daemon is its only writer.
type Registry struct {
	path string
}

// NewRegistry returns a registry persisted at path.
func NewRegistry(path string) *Registry {
	return &Registry{path: path}
}

type registryFile struct {
	Windows map[uint32]ActiveWorkspace `json:"windows"`
}

func (r *Registry) load() (*registryFile, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &registryFile{Windows: make(map[uint32]ActiveWorkspace)}, nil
		}
		return nil, fmt.Errorf("failed to read workspace registry: %w", err)
	}

	var reg registryFile
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("failed to parse workspace registry: %w", err)
	}
	if reg.Windows == nil {
		reg.Windows = make(map[uint32]ActiveWorkspace)
	}
	return &reg, nil
}

func (r *Registry) save(reg *registryFile) error {
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode workspace registry: %w", err)
	}
	if err := os.WriteFile(r.path, append(data, '\n'), 0600); err != nil {
		return fmt.Errorf("failed to write workspace registry: %w", err)
	}
	return nil
}

// SetActive records that a window has the given workspace open.
func (r *Registry) SetActive(windowID uint32, workspaceID, configPath string) error {
	reg, err := r.load()
	if err != nil {
		return err
	}

	reg.Windows[windowID] = ActiveWorkspace{
		WorkspaceID: workspaceID,
		ConfigPath:  configPath,
		OpenedAt:    time.Now(),
	}
	return r.save(reg)
}

// Active returns the workspace a window has open, if any.
func (r *Registry) Active(windowID uint32) (ActiveWorkspace, bool) {
	reg, err := r.load()
	if err != nil {
		return ActiveWorkspace{}, false
	}
	ws, ok := reg.Windows[windowID]
	return ws, ok
}

// Remove clears the active workspace entry for a window.
func (r *Registry) Remove(windowID uint32) error {
	reg, err := r.load()
	if err != nil {
		return err
	}
	delete(reg.Windows, windowID)
	return r.save(reg)
}

// All returns every active workspace entry keyed by window id.
func (r *Registry) All() (map[uint32]ActiveWorkspace, error) {
	reg, err := r.load()
	if err != nil {
		return nil, err
	}
	return reg.Windows, nil
}
