package cmd

import (
	"context"
	"io"

	"github.com/fatih/color"

	"github.com/rustwasm/wasm-pack/internal/failure"
	"github.com/rustwasm/wasm-pack/internal/pipeline"
	"github.com/rustwasm/wasm-pack/internal/version"
)

const deprecatedInitNotice = "wasm-pack init is deprecated, consider using wasm-pack build"

// Runner drives one normal-mode invocation of the CLI.
type Runner struct {
	Executor pipeline.Executor
	Prober   version.Prober
	Stdout   io.Writer
	Stderr   io.Writer
}

// Run parses args, executes the resulting command and returns the process
// exit status. The update check starts first and is never waited on.
func (r *Runner) Run(ctx context.Context, args []string) int {
	var update *version.Handle
	if r.Prober != nil {
		update = version.StartCheck(ctx, r.Prober)
	}

	if len(args) > 0 && args[0] == "init" {
		color.New(color.FgYellow).Fprintln(r.Stdout, deprecatedInitNotice)
	}

	var (
		parsed *pipeline.Command
		ran    bool
	)
	root := NewRootCommand(r.Prober,
		func(c pipeline.Command) { parsed = &c },
		func() { ran = true },
	)
	root.SetArgs(args)
	root.SetOut(r.Stdout)
	root.SetErr(r.Stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		failure.Print(r.Stderr, err)
		return 1
	}

	if parsed != nil {
		if err := r.Executor.Execute(ctx, *parsed); err != nil {
			failure.Print(r.Stderr, err)
			return 1
		}
	}

	if ran {
		if pair, ok := update.Poll(); ok {
			r.printUpdateNotice(pair)
		}
	}

	return 0
}

func (r *Runner) printUpdateNotice(pair version.Pair) {
	notice := color.New(color.FgYellow)
	notice.Fprintf(r.Stdout, "There's a newer version of wasm-pack available, the new version is: %s, you are using: %s. "+
		"To update, navigate to: %s\n", pair.Latest, pair.Local, version.InstallerUrl)
}
