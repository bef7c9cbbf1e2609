package version

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewSelfCommand creates the 'self' parent command, which adds some of the other
// commands in this file as subcommands. The prober is used by 'self check'.
//
// When adding this as a subcommand to another CLI, use:
//
//	cmd.AddCommand(version.NewSelfCommand(prober))
func NewSelfCommand(p Prober) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "self",
		Short: "Inspect this wasm-pack binary",
		Long:  "Self-management operations for wasm-pack, e.g. check for a newer release.",
	}

	// Attach 'check' as a subcommand
	cmd.AddCommand(NewCheckCommand(p))
	// Attach 'info' as a subcommand
	cmd.AddCommand(NewPackageInfoCommand())

	return cmd
}

// NewVersionCommand adds a 'version' subcommand, which prints the package's version.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print CLI's version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			pkgInfo := GetPackageInfo()
			fmt.Fprintf(cmd.OutOrStdout(), "package: %s version:%s commit:%s date:%s\n",
				pkgInfo.PackageName,
				pkgInfo.PackageVersion,
				pkgInfo.PackageCommit,
				pkgInfo.PackageReleaseDate,
			)
		},
	}
}

// NewPackageInfoCommand adds a subcommand 'info' and prints info about the package.
func NewPackageInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show info about the current package",
		Args:  cobra.NoArgs,
		RunE:  showPackageInfo,
	}
}

// NewCheckCommand creates the 'self check' command.
func NewCheckCommand(p Prober) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check whether a newer wasm-pack release is available",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return CheckSelf(cmd, p)
		},
	}
}
