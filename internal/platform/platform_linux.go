//go:build linux

package platform

import "os"

func detect() Info {
	for _, path := range []string{"/etc/os-release", "/usr/lib/os-release"} {
		content, err := os.ReadFile(path)
		if err == nil {
			return parseOSRelease(string(content))
		}
	}
	return Info{Family: unknown, Distribution: "linux", Release: unknown}
}
