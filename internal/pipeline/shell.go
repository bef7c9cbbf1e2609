package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/rustwasm/wasm-pack/internal/utils"
)

const wasmTarget = "wasm32-unknown-unknown"

// ErrMissingTool means a required program is not on PATH.
var ErrMissingTool = errors.New("required tool not found in PATH")

// Runner starts an external program in dir and waits for it.
type Runner func(ctx context.Context, dir, name string, args ...string) error

// Shell executes commands by running cargo, wasm-bindgen and npm.
type Shell struct {
	Stdout io.Writer
	Stderr io.Writer

	// Run defaults to running the program with os/exec.
	Run Runner
	// Available defaults to looking the program up in PATH.
	Available func(name string) bool
}

// NewShell returns a Shell attached to the process's standard streams.
func NewShell() *Shell {
	return &Shell{Stdout: os.Stdout, Stderr: os.Stderr}
}

func (s *Shell) Execute(ctx context.Context, cmd Command) error {
	switch cmd.Name {
	case Build:
		return s.build(ctx, cmd)
	case Test:
		return s.test(ctx, cmd)
	case Pack:
		return s.npm(ctx, cmd, "pack", nil)
	case Publish:
		var args []string
		if cmd.Tag != "" {
			args = append(args, "--tag", cmd.Tag)
		}
		if cmd.Access != "" {
			args = append(args, "--access", cmd.Access)
		}
		return s.npm(ctx, cmd, "publish", args)
	case Login:
		return s.login(ctx, cmd)
	default:
		return fmt.Errorf("unknown command %q", cmd.Name)
	}
}

func (s *Shell) build(ctx context.Context, cmd Command) error {
	dir := crateDir(cmd)

	manifest, err := readManifest(dir)
	if err != nil {
		return fmt.Errorf("checking crate configuration: %w", err)
	}
	if err := s.require("cargo", "wasm-bindgen"); err != nil {
		return err
	}

	profileDir := "release"
	cargoArgs := []string{"build", "--lib", "--target", wasmTarget}
	switch cmd.Profile {
	case "dev":
		profileDir = "debug"
	case "", "release":
		cargoArgs = append(cargoArgs, "--release")
	case "profiling":
		// Optimized, but with debug info kept through to the final wasm.
		cargoArgs = append(cargoArgs, "--release", "--config", "profile.release.debug=true")
	default:
		return fmt.Errorf("unknown build profile %q", cmd.Profile)
	}
	cargoArgs = append(cargoArgs, cmd.ExtraArgs...)

	slog.Info("compiling to wasm", "crate", manifest.Package.Name, "profile", profileDir)
	if err := s.run(ctx, dir, "cargo", cargoArgs...); err != nil {
		return fmt.Errorf("compiling to wasm: %w", err)
	}

	target := cmd.Target
	if target == "" {
		target = "bundler"
	}
	wasm := filepath.Join(dir, "target", wasmTarget, profileDir,
		strings.ReplaceAll(manifest.Package.Name, "-", "_")+".wasm")

	bindgenArgs := []string{wasm, "--out-dir", outDir(cmd), "--target", target}
	switch cmd.Profile {
	case "dev":
		bindgenArgs = append(bindgenArgs, "--debug")
	case "profiling":
		bindgenArgs = append(bindgenArgs, "--keep-debug")
	}

	slog.Info("generating bindings", "target", target, "out", outDir(cmd))
	if err := s.run(ctx, dir, "wasm-bindgen", bindgenArgs...); err != nil {
		return fmt.Errorf("running wasm-bindgen: %w", err)
	}

	fmt.Fprintf(s.Stderr, "Your wasm pkg is ready to publish at %s.\n", outDir(cmd))
	return nil
}

func (s *Shell) test(ctx context.Context, cmd Command) error {
	dir := crateDir(cmd)
	if _, err := readManifest(dir); err != nil {
		return fmt.Errorf("checking crate configuration: %w", err)
	}
	if err := s.require("cargo"); err != nil {
		return err
	}

	args := append([]string{"test"}, cmd.ExtraArgs...)
	if err := s.run(ctx, dir, "cargo", args...); err != nil {
		return fmt.Errorf("running tests: %w", err)
	}
	return nil
}

func (s *Shell) npm(ctx context.Context, cmd Command, sub string, args []string) error {
	if err := s.require("npm"); err != nil {
		return err
	}

	pkg := outDir(cmd)
	if _, err := os.Stat(filepath.Join(pkg, "package.json")); err != nil {
		return fmt.Errorf("unable to find the pkg directory at path %s, set the path as the parent of the pkg directory: %w", pkg, err)
	}

	all := append([]string{sub}, args...)
	all = append(all, cmd.ExtraArgs...)
	if err := s.run(ctx, pkg, "npm", all...); err != nil {
		return fmt.Errorf("npm %s failed: %w", sub, err)
	}
	return nil
}

func (s *Shell) login(ctx context.Context, cmd Command) error {
	if err := s.require("npm"); err != nil {
		return err
	}

	args := []string{"adduser"}
	if cmd.Registry != "" {
		args = append(args, "--registry", cmd.Registry)
	}
	if cmd.Scope != "" {
		args = append(args, "--scope", cmd.Scope)
	}
	args = append(args, cmd.ExtraArgs...)

	if err := s.run(ctx, crateDir(cmd), "npm", args...); err != nil {
		return fmt.Errorf("login to registry failed: %w", err)
	}
	return nil
}

func (s *Shell) require(tools ...string) error {
	available := s.Available
	if available == nil {
		available = utils.IsCommandAvailable
	}
	for _, tool := range tools {
		if !available(tool) {
			return fmt.Errorf("%w: %s", ErrMissingTool, tool)
		}
	}
	return nil
}

func (s *Shell) run(ctx context.Context, dir, name string, args ...string) error {
	slog.Debug("running", "dir", dir, "cmd", name, "args", args)
	if s.Run != nil {
		return s.Run(ctx, dir, name, args...)
	}

	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	c.Stdout = s.Stdout
	c.Stderr = s.Stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("`%s %s`: %w", name, strings.Join(args, " "), err)
	}
	return nil
}

type manifest struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
	Lib struct {
		CrateType []string `toml:"crate-type"`
	} `toml:"lib"`
}

func readManifest(dir string) (manifest, error) {
	var m manifest

	data, err := os.ReadFile(filepath.Join(dir, "Cargo.toml"))
	if err != nil {
		return m, fmt.Errorf("reading Cargo.toml: %w", err)
	}
	if err := toml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("parsing Cargo.toml: %w", err)
	}
	if m.Package.Name == "" {
		return m, errors.New("Cargo.toml has no [package] name")
	}
	if !slices.Contains(m.Lib.CrateType, "cdylib") {
		return m, errors.New("crate-type must be cdylib to compile to wasm32-unknown-unknown. Add the following to your Cargo.toml file:\n\n[lib]\ncrate-type = [\"cdylib\", \"rlib\"]")
	}
	return m, nil
}

// crateDir is absolute whenever it can be, so paths handed to tools running
// inside it stay valid.
func crateDir(cmd Command) string {
	dir := cmd.Path
	if dir == "" {
		dir = "."
	}
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}

func outDir(cmd Command) string {
	out := cmd.OutDir
	if out == "" {
		out = "pkg"
	}
	if filepath.IsAbs(out) {
		return out
	}
	return filepath.Join(crateDir(cmd), out)
}
