//go:build windows

package platform

import (
	"fmt"

	"golang.org/x/sys/windows"
)

func detect() Info {
	return Info{Family: "windows", Distribution: "windows", Release: windowsRelease()}
}

// windowsRelease returns the kernel version, e.g. "10.0.22631". It is read
// with RtlGetVersion, which unlike GetVersionEx is not subject to manifest
// compatibility shims.
func windowsRelease() string {
	v := windows.RtlGetVersion()
	if v == nil {
		return unknown
	}
	return fmt.Sprintf("%d.%d.%d", v.MajorVersion, v.MinorVersion, v.BuildNumber)
}
