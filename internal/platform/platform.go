// Package platform describes the operating system the binary runs on, for
// crash reports and diagnostics.
package platform

import (
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Info identifies the running operating system.
type Info struct {
	// e.g. "debian", "redhat", "darwin", "windows"
	Family string
	// e.g. "ubuntu", "fedora", "macos"
	Distribution string
	// e.g. "24.04", "14.4", "10.0.22631"
	Release string
	Arch    string
}

// Detect returns the platform info for the running system. Fields that cannot
// be determined are left as "unknown".
func Detect() Info {
	info := detect()
	info.Arch = runtime.GOARCH
	return info
}

// String renders the info the way crash reports show it, e.g.
// "Ubuntu 24.04 (amd64)".
func (i Info) String() string {
	name := displayName(i.Distribution)
	if i.Release != "" && i.Release != unknown {
		name += " " + i.Release
	}
	if i.Arch != "" {
		name = fmt.Sprintf("%s (%s)", name, i.Arch)
	}
	return name
}

const unknown = "unknown"

var displayNames = map[string]string{
	"macos":    "macOS",
	"opensuse": "openSUSE",
	"windows":  "Windows",
}

func displayName(distribution string) string {
	if distribution == "" {
		return cases.Title(language.English).String(unknown)
	}
	if name, ok := displayNames[distribution]; ok {
		return name
	}
	return cases.Title(language.English).String(strings.ReplaceAll(distribution, "-", " "))
}
