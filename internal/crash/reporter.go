// Package crash turns an unrecovered panic into a report file the user can
// send upstream, instead of leaving them with nothing but a goroutine dump.
//
// The reporter is installed once at the top of main and armed with a deferred
// call:
//
//	r := crash.Install(meta)
//	defer r.Recover()
//
// Setting GOTRACEBACK (to anything) leaves the Go runtime's own panic output
// untouched.
//
// recover only works in the goroutine that panicked, so the reporter covers
// the main goroutine and nothing else. A goroutine started later crashes the
// process with the runtime's output unless it defers Recover itself.
package crash

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
)

// RawDiagnosticsEnv disables the reporter when present in the environment.
const RawDiagnosticsEnv = "GOTRACEBACK"

// ExitCode matches the status the Go runtime uses for an unrecovered panic.
const ExitCode = 2

// Metadata describes the program in the report and the message.
type Metadata struct {
	Name     string
	Version  string
	Authors  string
	Homepage string
}

// Info is what a Handler gets to see about a panic.
type Info struct {
	Value any
	Stack []byte
}

// Handler receives a recovered panic.
type Handler func(Info)

// State says which handler is in charge.
type State int

const (
	StateDefault State = iota
	StateAugmented
)

func (s State) String() string {
	if s == StateAugmented {
		return "augmented"
	}
	return "default"
}

// Reporter owns the process-wide panic boundary.
type Reporter struct {
	meta      Metadata
	prev      Handler
	state     State
	out       io.Writer
	reportDir string
	exit      func(int)
}

type options struct {
	out       io.Writer
	reportDir string
	exit      func(int)
	lookupEnv func(string) (string, bool)
	prev      Handler
}

// Option configures Install.
type Option func(*options)

// WithOutput sets where diagnostics and the message are written. Defaults to
// os.Stderr.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.out = w
	}
}

// WithReportDir sets the directory report files are written to. Defaults to
// os.TempDir().
func WithReportDir(dir string) Option {
	return func(o *options) {
		o.reportDir = dir
	}
}

// WithExit replaces os.Exit.
func WithExit(exit func(int)) Option {
	return func(o *options) {
		o.exit = exit
	}
}

// WithLookupEnv replaces os.LookupEnv when checking for RawDiagnosticsEnv.
func WithLookupEnv(lookup func(string) (string, bool)) Option {
	return func(o *options) {
		o.lookupEnv = lookup
	}
}

// WithPrevious replaces the default handler that the reporter chains to.
func WithPrevious(h Handler) Option {
	return func(o *options) {
		o.prev = h
	}
}

// Install builds the reporter. It must be called once, before anything else
// runs, and its Recover method deferred in main.
func Install(meta Metadata, opts ...Option) *Reporter {
	config := options{
		out:       os.Stderr,
		reportDir: os.TempDir(),
		exit:      os.Exit,
		lookupEnv: os.LookupEnv,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&config)
		}
	}
	if config.prev == nil {
		config.prev = defaultHandler(config.out)
	}

	r := &Reporter{
		meta:      meta,
		prev:      config.prev,
		state:     StateDefault,
		out:       config.out,
		reportDir: config.reportDir,
		exit:      config.exit,
	}

	if _, raw := config.lookupEnv(RawDiagnosticsEnv); !raw {
		r.state = StateAugmented
	}

	return r
}

// State reports which handler is active.
func (r *Reporter) State() State {
	return r.state
}

// Recover must be called directly by defer. In the default state it does
// nothing and the panic continues to the runtime. Otherwise it runs the
// previous handler, writes a report, tells the user where it is, and exits.
func (r *Reporter) Recover() {
	if r.state != StateAugmented {
		return
	}

	v := recover()
	if v == nil {
		return
	}

	r.handle(Info{Value: v, Stack: debug.Stack()})
	r.exit(ExitCode)
}

func (r *Reporter) handle(info Info) {
	r.prev(info)

	path, err := writeReport(r.reportDir, r.meta, info)
	if err != nil {
		panic(fmt.Errorf("crash: writing report: %w", err))
	}

	if err := printMessage(r.out, r.meta, path); err != nil {
		panic(fmt.Errorf("crash: printing message to console failed: %w", err))
	}
}

// defaultHandler prints the panic the way the runtime would.
func defaultHandler(w io.Writer) Handler {
	return func(info Info) {
		fmt.Fprintf(w, "panic: %v\n\n%s\n", info.Value, info.Stack)
	}
}
