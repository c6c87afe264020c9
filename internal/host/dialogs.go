package host

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/1broseidon/winscope/internal/platform"
)

// Exit codes reported by zenity and compatible dialog binaries.
const (
	exitOK       = 0
	exitCancel   = 1
	exitCtrlC    = 130
	exitTimedOut = 5
)

// CancelButton is the MessageBoxResult button index when the user
// dismissed the box without choosing.
const CancelButton = -1

// Dialogs runs an external dialog binary (zenity by default) for message
// boxes and file pickers. The window id is passed as an attachment hint so
// the dialog stacks over the requesting window.
type Dialogs struct {
	command string
}

// NewDialogs returns a dialog runner using the given binary.
func NewDialogs(command string) *Dialogs {
	return &Dialogs{command: command}
}

// MessageBox shows a modal message box and reports the chosen button
// index. Buttons[0] replaces the OK label; the rest become extra buttons.
func (d *Dialogs) MessageBox(ctx context.Context, opts platform.MessageBoxOptions) (platform.MessageBoxResult, error) {
	args := messageBoxArgs(opts)

	out, code, err := d.run(ctx, args)
	if err != nil {
		return platform.MessageBoxResult{}, err
	}

	switch code {
	case exitOK:
		return platform.MessageBoxResult{Button: 0}, nil
	case exitCancel, exitCtrlC:
		// Extra buttons also exit 1, distinguished by the label on stdout.
		label := strings.TrimSpace(out)
		for i, b := range opts.Buttons {
			if i > 0 && b == label {
				return platform.MessageBoxResult{Button: i}, nil
			}
		}
		return platform.MessageBoxResult{Button: CancelButton}, nil
	default:
		return platform.MessageBoxResult{}, fmt.Errorf("%s exited with code %d", d.command, code)
	}
}

// SaveDialog shows a save-file picker.
func (d *Dialogs) SaveDialog(ctx context.Context, opts platform.SaveDialogOptions) (platform.SaveDialogResult, error) {
	args := []string{"--file-selection", "--save"}
	args = appendAttach(args, opts.WindowID)
	if opts.Title != "" {
		args = append(args, "--title", opts.Title)
	}
	if opts.DefaultPath != "" {
		args = append(args, "--filename", opts.DefaultPath)
	}
	args = appendFilters(args, opts.Filters)

	out, code, err := d.run(ctx, args)
	if err != nil {
		return platform.SaveDialogResult{}, err
	}
	if code == exitCancel || code == exitCtrlC {
		return platform.SaveDialogResult{Canceled: true}, nil
	}
	if code != exitOK {
		return platform.SaveDialogResult{}, fmt.Errorf("%s exited with code %d", d.command, code)
	}
	return platform.SaveDialogResult{Path: strings.TrimSpace(out)}, nil
}

// OpenDialog shows an open-file/folder picker.
func (d *Dialogs) OpenDialog(ctx context.Context, opts platform.OpenDialogOptions) (platform.OpenDialogResult, error) {
	args := openDialogArgs(opts)

	out, code, err := d.run(ctx, args)
	if err != nil {
		return platform.OpenDialogResult{}, err
	}
	if code == exitCancel || code == exitCtrlC {
		return platform.OpenDialogResult{Canceled: true}, nil
	}
	if code != exitOK {
		return platform.OpenDialogResult{}, fmt.Errorf("%s exited with code %d", d.command, code)
	}

	var paths []string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			paths = append(paths, line)
		}
	}
	return platform.OpenDialogResult{Paths: paths}, nil
}

func messageBoxArgs(opts platform.MessageBoxOptions) []string {
	var args []string
	switch opts.Kind {
	case platform.MessageBoxWarning:
		args = []string{"--warning"}
	case platform.MessageBoxError:
		args = []string{"--error"}
	case platform.MessageBoxQuestion:
		args = []string{"--question"}
	default:
		args = []string{"--info"}
	}
	args = appendAttach(args, opts.WindowID)
	if opts.Title != "" {
		args = append(args, "--title", opts.Title)
	}
	text := opts.Message
	if opts.Detail != "" {
		text += "\n\n" + opts.Detail
	}
	if text != "" {
		args = append(args, "--text", text)
	}
	for i, b := range opts.Buttons {
		if i == 0 {
			args = append(args, "--ok-label", b)
			continue
		}
		args = append(args, "--extra-button", b)
	}
	return args
}

func openDialogArgs(opts platform.OpenDialogOptions) []string {
	args := []string{"--file-selection"}
	args = appendAttach(args, opts.WindowID)
	if opts.Title != "" {
		args = append(args, "--title", opts.Title)
	}
	if opts.DefaultPath != "" {
		args = append(args, "--filename", opts.DefaultPath)
	}
	if opts.PickFolders && !opts.PickFiles {
		args = append(args, "--directory")
	}
	if opts.AllowMultiple {
		args = append(args, "--multiple", "--separator", "\n")
	}
	return appendFilters(args, opts.Filters)
}

func appendAttach(args []string, id platform.WindowID) []string {
	if id == 0 {
		return args
	}
	return append(args, "--attach", fmt.Sprintf("%d", id))
}

func appendFilters(args []string, filters []platform.FileFilter) []string {
	for _, f := range filters {
		patterns := make([]string, 0, len(f.Extensions))
		for _, ext := range f.Extensions {
			patterns = append(patterns, "*."+strings.TrimPrefix(ext, "."))
		}
		args = append(args, "--file-filter", f.Name+" | "+strings.Join(patterns, " "))
	}
	return args
}

// run executes the dialog binary and returns its stdout and exit code.
// A missing binary or start failure is an error; a nonzero exit is not.
func (d *Dialogs) run(ctx context.Context, args []string) (string, int, error) {
	cmd := exec.CommandContext(ctx, d.command, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return string(out), exitErr.ExitCode(), nil
		}
		return "", 0, fmt.Errorf("%s failed to run: %w", d.command, err)
	}
	return string(out), exitOK, nil
}
