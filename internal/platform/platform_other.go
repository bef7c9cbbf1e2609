//go:build !linux && !darwin && !windows

package platform

import "runtime"

func detect() Info {
	return Info{Family: unknown, Distribution: runtime.GOOS, Release: unknown}
}
