// Package pipeline is the boundary between the CLI and the actual build work.
//
// The CLI only ever hands a parsed Command to an Executor. Shell is the
// executor shipped with the binary; it drives cargo, wasm-bindgen and npm.
package pipeline

import "context"

// Command names.
const (
	Build   = "build"
	Test    = "test"
	Pack    = "pack"
	Publish = "publish"
	Login   = "login"
)

// Command is one parsed invocation.
type Command struct {
	Name string

	// Path is the crate directory.
	Path string
	// Target is the wasm-bindgen output flavour: bundler, nodejs, web, no-modules.
	Target string
	// Profile is dev, profiling or release.
	Profile string
	// OutDir is the package directory, relative to Path unless absolute.
	OutDir string
	Scope  string

	// publish
	Tag    string
	Access string

	// login
	Registry string

	// Passed through to the underlying tool.
	ExtraArgs []string
}

// Executor runs a command.
type Executor interface {
	Execute(ctx context.Context, cmd Command) error
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx context.Context, cmd Command) error

func (f ExecutorFunc) Execute(ctx context.Context, cmd Command) error {
	return f(ctx, cmd)
}
