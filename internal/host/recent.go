package host

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// RecentStore keeps a bounded most-recent-first list of opened workspaces
// and files, persisted as a JSON file under the config dir.
type RecentStore struct {
	mu    sync.Mutex
	path  string
	limit int
}

type recentFile struct {
	Workspaces []string `json:"workspaces"`
	Files      []string `json:"files"`
}

// NewRecentStore returns a store persisted at path, keeping at most limit
// entries per list.
func NewRecentStore(path string, limit int) *RecentStore {
	if limit < 1 {
		limit = 1
	}
	return &RecentStore{path: path, limit: limit}
}

// DefaultRecentPath returns the recently-opened file under the user
// config dir.
func DefaultRecentPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "winscope", "recent.json"), nil
}

func (s *RecentStore) load() (*recentFile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &recentFile{}, nil
		}
		return nil, fmt.Errorf("failed to read recently-opened list: %w", err)
	}
	var rf recentFile
	if err := json.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("failed to parse recently-opened list: %w", err)
	}
	return &rf, nil
}

func (s *RecentStore) save(rf *recentFile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	data, err := json.MarshalIndent(rf, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode recently-opened list: %w", err)
	}
	if err := os.WriteFile(s.path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write recently-opened list: %w", err)
	}
	return nil
}

// AddFiles prepends paths to the file list, deduplicating and trimming to
// the limit.
func (s *RecentStore) AddFiles(paths ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rf, err := s.load()
	if err != nil {
		return err
	}
	rf.Files = prepend(rf.Files, paths, s.limit)
	return s.save(rf)
}

// AddWorkspaces prepends paths to the workspace list.
func (s *RecentStore) AddWorkspaces(paths ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rf, err := s.load()
	if err != nil {
		return err
	}
	rf.Workspaces = prepend(rf.Workspaces, paths, s.limit)
	return s.save(rf)
}

// Get returns both lists, most recent first.
func (s *RecentStore) Get() (workspaces, files []string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rf, err := s.load()
	if err != nil {
		return nil, nil, err
	}
	return rf.Workspaces, rf.Files, nil
}

// prepend inserts entries at the front of list, newest last in entries
// ending up first, removing duplicates and trimming to limit.
func prepend(list, entries []string, limit int) []string {
	for _, entry := range entries {
		if entry == "" {
			continue
		}
		out := make([]string, 0, len(list)+1)
		out = append(out, entry)
		for _, existing := range list {
			if existing != entry {
				out = append(out, existing)
			}
		}
		list = out
	}
	if len(list) > limit {
		list = list[:limit]
	}
	return list
}
