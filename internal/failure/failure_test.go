package failure

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCausesFlattensChain(t *testing.T) {
	root := errors.New("exit status 101")
	mid := fmt.Errorf("cargo build failed: %w", root)
	top := fmt.Errorf("compiling to wasm: %w", mid)

	assert.Equal(t, []string{"compiling to wasm", "cargo build failed", "exit status 101"}, Causes(top))
}

func TestCausesKeepsMessageWhenNotSuffixed(t *testing.T) {
	root := errors.New("permission denied")
	top := fmt.Errorf("%w (while writing pkg)", root)

	assert.Equal(t, []string{"permission denied (while writing pkg)", "permission denied"}, Causes(top))
}

func TestCausesNil(t *testing.T) {
	assert.Empty(t, Causes(nil))
}

func TestPrintOneLinePerCause(t *testing.T) {
	for n := 0; n <= 4; n++ {
		var err error = errors.New("cause 0")
		for i := 1; i <= n; i++ {
			err = fmt.Errorf("cause %d: %w", i, err)
		}

		var buf bytes.Buffer
		Print(&buf, err)

		lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
		assert.Len(t, lines, n+1)
		assert.Equal(t, fmt.Sprintf("Error: cause %d", n), lines[0])
		for i, line := range lines[1:] {
			assert.Equal(t, fmt.Sprintf("Caused by: cause %d", n-1-i), line)
		}
	}
}
