package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/rustwasm/wasm-pack/internal/pipeline"
)

var (
	buildTargets = []string{"bundler", "nodejs", "web", "no-modules", "deno"}
	accessLevels = []string{"public", "restricted"}
)

// splitArgs separates the optional crate path from arguments after "--",
// which are passed through to the underlying tool.
func splitArgs(cmd *cobra.Command, args []string) (string, []string, error) {
	positional, extra := args, []string(nil)
	if dash := cmd.ArgsLenAtDash(); dash >= 0 {
		positional, extra = args[:dash], args[dash:]
	}

	if len(positional) > 1 {
		return "", nil, fmt.Errorf("accepts at most 1 path, received %d", len(positional))
	}

	path := ""
	if len(positional) == 1 {
		path = positional[0]
	}
	return path, extra, nil
}

func oneOf(flag, value string, allowed []string) error {
	if !slices.Contains(allowed, value) {
		return fmt.Errorf("invalid value %q for --%s, expected one of %v", value, flag, allowed)
	}
	return nil
}

func newBuildCommand(capture func(pipeline.Command)) *cobra.Command {
	var (
		target, outDir          string
		dev, release, profiling bool
	)

	cmd := &cobra.Command{
		Use: "build [path] [-- cargo args]",
		// init predates build and still works, with a deprecation notice.
		Aliases: []string{"init"},
		Short:   "🏗️  build your npm package!",
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, extra, err := splitArgs(cmd, args)
			if err != nil {
				return err
			}
			if err := oneOf("target", target, buildTargets); err != nil {
				return err
			}

			profile := "release"
			switch {
			case dev:
				profile = "dev"
			case profiling:
				profile = "profiling"
			}

			capture(pipeline.Command{
				Name:      pipeline.Build,
				Path:      path,
				Target:    target,
				Profile:   profile,
				OutDir:    outDir,
				ExtraArgs: extra,
			})
			return nil
		},
	}

	cmd.Flags().StringVarP(&target, "target", "t", "bundler", "Target environment: bundler, nodejs, web, no-modules or deno")
	cmd.Flags().StringVarP(&outDir, "out-dir", "d", "pkg", "Output directory, relative to the crate")
	cmd.Flags().BoolVar(&dev, "dev", false, "Development profile: debug assertions, no optimizations")
	cmd.Flags().BoolVar(&release, "release", false, "Release profile: optimized, no debug assertions (default)")
	cmd.Flags().BoolVar(&profiling, "profiling", false, "Profiling profile: optimized, with debug info")
	cmd.MarkFlagsMutuallyExclusive("dev", "release", "profiling")

	return cmd
}

func newTestCommand(capture func(pipeline.Command)) *cobra.Command {
	var release bool

	cmd := &cobra.Command{
		Use:   "test [path] [-- cargo test args]",
		Short: "👩‍🔬  test your wasm!",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, extra, err := splitArgs(cmd, args)
			if err != nil {
				return err
			}
			if release {
				extra = append([]string{"--release"}, extra...)
			}

			capture(pipeline.Command{Name: pipeline.Test, Path: path, ExtraArgs: extra})
			return nil
		},
	}

	cmd.Flags().BoolVar(&release, "release", false, "Build with the release profile")

	return cmd
}

func newPackCommand(capture func(pipeline.Command)) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "pack [path]",
		Short: "🍱  create a tar of your npm package but don't publish!",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _, err := splitArgs(cmd, args)
			if err != nil {
				return err
			}

			capture(pipeline.Command{Name: pipeline.Pack, Path: path, OutDir: outDir})
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out-dir", "d", "pkg", "Package directory, relative to the crate")

	return cmd
}

func newPublishCommand(capture func(pipeline.Command)) *cobra.Command {
	var outDir, tag, access string

	cmd := &cobra.Command{
		Use:   "publish [path]",
		Short: "🎆  pack up your npm package and publish!",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _, err := splitArgs(cmd, args)
			if err != nil {
				return err
			}
			if access != "" {
				if err := oneOf("access", access, accessLevels); err != nil {
					return err
				}
			}

			capture(pipeline.Command{Name: pipeline.Publish, Path: path, OutDir: outDir, Tag: tag, Access: access})
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out-dir", "d", "pkg", "Package directory, relative to the crate")
	cmd.Flags().StringVar(&tag, "tag", "", "Registers the package under this dist-tag")
	cmd.Flags().StringVarP(&access, "access", "a", "", "Package access level: public or restricted")

	return cmd
}

func newLoginCommand(capture func(pipeline.Command)) *cobra.Command {
	var registry, scope string

	cmd := &cobra.Command{
		Use:     "login",
		Aliases: []string{"adduser", "add-user"},
		Short:   "👤  Add an npm registry user account!",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			capture(pipeline.Command{Name: pipeline.Login, Registry: registry, Scope: scope})
			return nil
		},
	}

	cmd.Flags().StringVarP(&registry, "registry", "r", "", "Registry base URL (default https://registry.npmjs.org/)")
	cmd.Flags().StringVarP(&scope, "scope", "s", "", "Associate an operation with a scope for a scoped registry")

	return cmd
}
