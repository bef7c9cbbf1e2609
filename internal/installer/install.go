package installer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"github.com/rustwasm/wasm-pack/internal/config"
	"github.com/rustwasm/wasm-pack/internal/failure"
	"github.com/rustwasm/wasm-pack/internal/logging"
	"github.com/rustwasm/wasm-pack/internal/utils/convert"
	"github.com/rustwasm/wasm-pack/internal/utils/path"
)

// AnchorTool is the program whose directory wasm-pack is installed next to.
const AnchorTool = "rustup"

// ErrToolNotFound means the anchor tool is not on PATH.
var ErrToolNotFound = errors.New("failed to find an installation of `rustup` in `PATH`, is rustup already installed?")

// Installer copies the running executable into place as wasm-pack.
type Installer struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Dir overrides the destination directory. "~" is expanded.
	Dir string

	// Executable returns the path of the binary to copy. Defaults to os.Executable.
	Executable func() (string, error)
	// LookPath finds the anchor tool. Defaults to exec.LookPath.
	LookPath func(string) (string, error)
	// Interactive reports whether the user can be asked questions.
	// Defaults to checking whether stdin is a terminal.
	Interactive func() bool
}

// New returns an installer wired to the process's standard streams.
func New() *Installer {
	return &Installer{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run parses the installer's own flags, performs the installation and
// returns the process exit status. The installer is picked by executable
// name alone, so flags it does not know and positional arguments are ignored.
func (in *Installer) Run(args []string) int {
	flags := pflag.NewFlagSet(InstallerPrefix, pflag.ContinueOnError)
	flags.ParseErrorsAllowlist.UnknownFlags = true
	flags.SetOutput(in.Stderr)
	force := flags.BoolP("force", "f", false, "Overwrite an existing wasm-pack without asking")
	flags.String("install-dir", "", "Install into this directory instead of next to rustup")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	flags.String("log-format", "", "Log format: text or json")

	code := 0
	if err := flags.Parse(args); err != nil {
		if !errors.Is(err, pflag.ErrHelp) {
			failure.Print(in.Stderr, err)
			code = 1
		}
	} else if err := in.configure(flags); err != nil {
		failure.Print(in.Stderr, err)
		code = 1
	} else if err := in.install(*force); err != nil {
		failure.Print(in.Stderr, err)
		code = 1
	}

	// On Windows the installer most likely opened its own console window,
	// which closes the moment we exit.
	if runtime.GOOS == "windows" {
		fmt.Fprintln(in.Stdout, "Press enter to close this window...")
		_, _ = bufio.NewReader(in.Stdin).ReadString('\n')
	}

	return code
}

// configure layers WASM_PACK_* settings and the parsed flags. An explicit
// --install-dir wins over Dir, which wins over the environment.
func (in *Installer) configure(flags *pflag.FlagSet) error {
	settings, err := config.Load(flags, "")
	if err != nil {
		return err
	}
	slog.SetDefault(logging.New(settings.Log.Level, settings.Log.Format, in.Stderr))

	if settings.Install.Dir != "" && (in.Dir == "" || flags.Changed("install-dir")) {
		in.Dir = settings.Install.Dir
	}
	return nil
}

func (in *Installer) install(force bool) error {
	dir, err := in.destinationDir()
	if err != nil {
		return err
	}

	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("installation directory `%s` is not usable: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("installation path `%s` is not a directory", dir)
	}

	executable := in.Executable
	if executable == nil {
		executable = os.Executable
	}
	me, err := executable()
	if err != nil {
		return fmt.Errorf("failed to locate the running executable: %w", err)
	}

	destination := filepath.Join(dir, binaryName())
	if sameFile(me, destination) {
		return fmt.Errorf("wasm-pack is already installed at `%s`", destination)
	}

	if _, err := os.Stat(destination); err == nil && !force {
		ok, err := in.confirmOverwrite(destination)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("not overwriting existing `%s`, rerun with -f to replace it", destination)
		}
	}

	size, err := copyFile(me, destination)
	if err != nil {
		if os.IsPermission(err) {
			fmt.Fprintf(in.Stderr, "Permission denied: try running %s with elevated privileges\n", filepath.Base(me))
		}
		return fmt.Errorf("failed to copy executable to `%s`: %w", destination, err)
	}

	fmt.Fprintf(in.Stdout, "info: successfully installed wasm-pack to `%s` (%s)\n", destination, convert.BytesToHumanReadable(uint64(size)))
	return nil
}

func (in *Installer) destinationDir() (string, error) {
	if in.Dir != "" {
		return path.ExpandPath(in.Dir)
	}

	lookPath := in.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	anchor, err := lookPath(binaryFile(AnchorTool))
	if err != nil {
		return "", ErrToolNotFound
	}

	return filepath.Dir(anchor), nil
}

func (in *Installer) confirmOverwrite(destination string) (bool, error) {
	interactive := in.Interactive
	if interactive == nil {
		interactive = stdinIsTerminal
	}
	if !interactive() {
		return false, nil
	}

	fmt.Fprintf(in.Stdout, "existing wasm-pack installation found at `%s`\n", destination)
	fmt.Fprint(in.Stdout, "Would you like to overwrite this file? [y/N]: ")

	line, err := bufio.NewReader(in.Stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func binaryName() string {
	return binaryFile("wasm-pack")
}

func binaryFile(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}

func sameFile(a, b string) bool {
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}

// copyFile copies src over dst as an executable and returns the bytes written.
func copyFile(src, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return 0, err
	}
	defer out.Close()

	n, err := io.Copy(out, in)
	if err != nil {
		return n, err
	}

	return n, out.Chmod(0755)
}
