// Package workspace persists workspace definitions and tracks which
// workspace each window currently has open.
package workspace

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"time"
)

// Workspace is a saved workspace definition: a stable id derived from the
// config path, the path itself, and the folders it spans.
type Workspace struct {
	ID         string    `json:"id"`
	ConfigPath string    `json:"config_path"`
	Folders    []string  `json:"folders,omitempty"`
	SavedAt    time.Time `json:"saved_at"`
}

// ActiveWorkspace records which workspace a window has open.
type ActiveWorkspace struct {
	WorkspaceID string    `json:"workspace_id"`
	ConfigPath  string    `json:"config_path"`
	OpenedAt    time.Time `json:"opened_at"`
}

// IDForPath derives the stable workspace id for a config path. The same
// path always yields the same id, regardless of how it was spelled.
func IDForPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	sum := sha256.Sum256([]byte(filepath.Clean(abs)))
	return hex.EncodeToString(sum[:])[:16]
}
