package window

// Configuration is the immutable launch description of a window: the
// arguments and paths it was opened with and its startup flags. It is
// captured once at facade construction and returned by reference on
// query; the facade never mutates it.
type Configuration struct {
	Args          []string
	WorkspacePath string
	FolderPaths   []string
	FilesToOpen   []string
	Maximized     bool
	Fullscreen    bool
}
