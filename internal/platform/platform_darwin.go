//go:build darwin

package platform

import (
	"os/exec"
	"strings"
)

func detect() Info {
	return Info{Family: "darwin", Distribution: "macos", Release: darwinRelease()}
}

// darwinRelease returns the macOS version, e.g. "14.4".
func darwinRelease() string {
	out, err := exec.Command("sw_vers", "-productVersion").Output()
	if err != nil {
		return unknown
	}
	return strings.TrimSpace(string(out))
}
