package platform

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOSRelease(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Info
	}{
		{
			name:    "ubuntu",
			content: "NAME=\"Ubuntu\"\nID=ubuntu\nID_LIKE=debian\nVERSION_ID=\"24.04\"\n",
			want:    Info{Family: "debian", Distribution: "ubuntu", Release: "24.04"},
		},
		{
			name:    "fedora",
			content: "ID=fedora\nVERSION_ID=40\n",
			want:    Info{Family: "redhat", Distribution: "fedora", Release: "40"},
		},
		{
			name:    "opensuse leap",
			content: "ID=\"opensuse-leap\"\nID_LIKE=\"suse opensuse\"\nVERSION_ID=\"15.5\"\n",
			want:    Info{Family: "suse", Distribution: "opensuse", Release: "15.5"},
		},
		{
			name:    "debian derivative",
			content: "ID=pop\nID_LIKE=\"ubuntu debian\"\nVERSION_ID=\"22.04\"\n",
			want:    Info{Family: "debian", Distribution: "pop", Release: "22.04"},
		},
		{
			name:    "rolling release without version",
			content: "ID=arch\n",
			want:    Info{Family: "unknown", Distribution: "arch", Release: "unknown"},
		},
		{
			name:    "empty",
			content: "",
			want:    Info{Family: "unknown", Distribution: "unknown", Release: "unknown"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseOSRelease(tt.content))
		})
	}
}

func TestInfoString(t *testing.T) {
	tests := []struct {
		info Info
		want string
	}{
		{Info{Distribution: "ubuntu", Release: "24.04", Arch: "amd64"}, "Ubuntu 24.04 (amd64)"},
		{Info{Distribution: "macos", Release: "14.4", Arch: "arm64"}, "macOS 14.4 (arm64)"},
		{Info{Distribution: "linux-mint", Release: "unknown"}, "Linux Mint"},
		{Info{}, "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.info.String())
		})
	}
}

func TestDetect(t *testing.T) {
	info := Detect()

	assert.Equal(t, runtime.GOARCH, info.Arch)
	assert.NotEmpty(t, info.Distribution)
	assert.NotEmpty(t, info.Release)
}
