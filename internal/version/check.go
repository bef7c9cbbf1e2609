package version

import (
	"errors"
	"fmt"

	"github.com/rustwasm/wasm-pack/internal/utils/spinner"
	"github.com/spf13/cobra"
)

// CheckSelf is the entrypoint for 'wasm-pack self check'. Unlike the
// background notice it waits for the answer and reports every outcome.
func CheckSelf(cmd *cobra.Command, p Prober) error {
	if p == nil {
		return errors.New("no release source configured")
	}
	out := cmd.ErrOrStderr()

	stop := spinner.StartSpinner(out, "Checking for latest release...")
	current, latest, err := p.Versions(cmd.Context())
	stop()

	if errors.Is(err, ErrDevelopmentBuild) {
		fmt.Fprintf(out, "🛠️  This is a development release: %s\n", Version)
		return nil
	}
	if err != nil {
		return fmt.Errorf("checking latest release: %w", err)
	}

	fmt.Fprintln(out, "Current version:", current)
	fmt.Fprintln(out, "Latest version: ", latest)

	switch CompareVersions(current, latest) {
	case -1:
		fmt.Fprintf(out, "🚀 Upgrade available: %s → %s\n", current, latest)
		fmt.Fprintf(out, "To update, navigate to: %s\n", InstallerUrl)
	case 0:
		fmt.Fprintf(out, "🔄 No new release available, %s is up to date (%s).\n", Package, current)
	case 1:
		fmt.Fprintf(out, "🤯 You're ahead of the latest release: current=%s, release=%s\n", current, latest)
	}

	return nil
}
