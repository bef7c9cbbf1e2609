// Package installer decides whether this binary was launched as the
// self-installer and, if so, installs it.
//
// The release page ships the same executable under the name
// wasm-pack-init(.exe). Running that copy installs wasm-pack instead of
// acting as the CLI, whatever arguments it was given.
package installer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// InstallerPrefix is the reserved file-name prefix of the installer binary.
const InstallerPrefix = "wasm-pack-init"

// ErrNoExecutableName means the running executable has no usable file name.
var ErrNoExecutableName = errors.New("executable should have a filename")

// Mode is how the process was invoked.
type Mode int

const (
	NormalMode Mode = iota
	InstallerMode
)

func (m Mode) String() string {
	switch m {
	case InstallerMode:
		return "installer"
	default:
		return "normal"
	}
}

// Identity is the classification of the running executable. It is computed
// once at startup and passed along, never recomputed.
type Identity struct {
	Mode Mode
	Stem string
}

// Classify derives the identity from an executable path. Only the file-name
// stem matters.
func Classify(exePath string) (Identity, error) {
	base := filepath.Base(exePath)
	if base == "." || base == ".." || base == string(filepath.Separator) {
		return Identity{}, fmt.Errorf("invalid executable path %q: %w", exePath, ErrNoExecutableName)
	}

	// A dot file is all stem.
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		stem = base
	}

	id := Identity{Mode: NormalMode, Stem: stem}
	if strings.HasPrefix(stem, InstallerPrefix) {
		id.Mode = InstallerMode
	}
	return id, nil
}

// Current classifies the running executable.
func Current() (Identity, error) {
	return current(os.Executable)
}

func current(executable func() (string, error)) (Identity, error) {
	exe, err := executable()
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrNoExecutableName, err)
	}
	return Classify(exe)
}
