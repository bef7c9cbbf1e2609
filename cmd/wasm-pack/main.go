package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/rustwasm/wasm-pack/cmd"
	"github.com/rustwasm/wasm-pack/internal/crash"
	"github.com/rustwasm/wasm-pack/internal/failure"
	"github.com/rustwasm/wasm-pack/internal/installer"
	"github.com/rustwasm/wasm-pack/internal/logging"
	"github.com/rustwasm/wasm-pack/internal/pipeline"
	"github.com/rustwasm/wasm-pack/internal/version"
)

func main() {
	slog.SetDefault(logging.New("warn", "text", os.Stderr))

	reporter := crash.Install(crash.Metadata{
		Name:     version.Package,
		Version:  version.Version,
		Authors:  version.Authors,
		Homepage: version.Homepage,
	})

	os.Exit(run(reporter))
}

// run is split from main so the deferred recover fires before os.Exit.
func run(reporter *crash.Reporter) int {
	defer reporter.Recover()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	identity, err := installer.Current()
	if err != nil {
		failure.Print(os.Stderr, err)
		return 1
	}
	slog.Debug("starting", "mode", identity.Mode, "stem", identity.Stem)

	return dispatch(ctx, identity, os.Args[1:], runNormal, runInstaller)
}

func dispatch(
	ctx context.Context,
	identity installer.Identity,
	args []string,
	normal func(context.Context, []string) int,
	install func([]string) int,
) int {
	if identity.Mode == installer.InstallerMode {
		return install(args)
	}
	return normal(ctx, args)
}

func runNormal(ctx context.Context, args []string) int {
	r := &cmd.Runner{
		Executor: pipeline.NewShell(),
		Prober:   version.NewGitHubProbe(version.DefaultAPI),
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	}
	return r.Run(ctx, args)
}

func runInstaller(args []string) int {
	return installer.New().Run(args)
}
