package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rustwasm/wasm-pack/internal/installer"
)

func TestDispatch(t *testing.T) {
	tests := []struct {
		name     string
		exe      string
		wantMode string
	}{
		{name: "plain binary", exe: "/usr/local/bin/wasm-pack", wantMode: "normal"},
		{name: "installer", exe: "/tmp/wasm-pack-init", wantMode: "installer"},
		{name: "installer with suffix", exe: "/home/me/Downloads/wasm-pack-init-x86_64.exe", wantMode: "installer"},
		{name: "renamed binary", exe: "/opt/pack-wasm", wantMode: "normal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := installer.Classify(tt.exe)
			assert.NoError(t, err)

			var got string
			var gotArgs []string
			code := dispatch(context.Background(), identity, []string{"-f"},
				func(ctx context.Context, args []string) int { got, gotArgs = "normal", args; return 3 },
				func(args []string) int { got, gotArgs = "installer", args; return 4 },
			)

			assert.Equal(t, tt.wantMode, got)
			assert.Equal(t, []string{"-f"}, gotArgs)
			if tt.wantMode == "installer" {
				assert.Equal(t, 4, code)
			} else {
				assert.Equal(t, 3, code)
			}
		})
	}
}
