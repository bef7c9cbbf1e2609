// The root command for the CLI.
// This root 'composes' the subcommands and provides global config flags like --log-level.
package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/rustwasm/wasm-pack/internal/config"
	"github.com/rustwasm/wasm-pack/internal/logging"
	"github.com/rustwasm/wasm-pack/internal/pipeline"
	"github.com/rustwasm/wasm-pack/internal/version"
)

// NewRootCommand builds the command tree. Pipeline subcommands do not do any
// work themselves: they hand the parsed command to capture. ran is called
// once a subcommand is about to run, which never happens for --help or
// --version.
func NewRootCommand(p version.Prober, capture func(pipeline.Command), ran func()) *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		// The command you run to call the compiled binary
		Use:   "wasm-pack",
		Short: "📦 ✨  pack and publish your wasm!",
		Long: `wasm-pack builds Rust-generated WebAssembly packages and publishes them
to the npm registry.`,
		Version: version.Version,
		// The runner prints errors itself, with their causes.
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load(cmd.Flags(), cfgFile)
			if err != nil {
				return err
			}
			slog.SetDefault(logging.New(settings.Log.Level, settings.Log.Format, cmd.ErrOrStderr()))
			if ran != nil {
				ran()
			}
			return nil
		},
	}

	// Add flags to the CLI's root command, making them 'global'
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json, toml or .env)")
	cmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	cmd.PersistentFlags().String("log-format", "", "Log format: text or json")

	cmd.AddCommand(newBuildCommand(capture))
	cmd.AddCommand(newTestCommand(capture))
	cmd.AddCommand(newPackCommand(capture))
	cmd.AddCommand(newPublishCommand(capture))
	cmd.AddCommand(newLoginCommand(capture))
	cmd.AddCommand(version.NewSelfCommand(p))
	cmd.AddCommand(version.NewVersionCommand())

	return cmd
}
