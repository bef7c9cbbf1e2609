package crash

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"

	"github.com/rustwasm/wasm-pack/internal/platform"
)

// Report is the content of a crash report file.
type Report struct {
	Name            string `toml:"name"`
	OperatingSystem string `toml:"operating_system"`
	Version         string `toml:"version"`
	Explanation     string `toml:"explanation"`
	Cause           string `toml:"cause"`
	Method          string `toml:"method"`
	Backtrace       string `toml:"backtrace"`
}

func newReport(meta Metadata, info Info) Report {
	return Report{
		Name:            meta.Name,
		OperatingSystem: platform.Detect().String(),
		Version:         meta.Version,
		Explanation:     "Panic occurred in the main goroutine.",
		Cause:           fmt.Sprint(info.Value),
		Method:          "Panic",
		Backtrace:       string(info.Stack),
	}
}

// writeReport stores the report as report-<uuid>.toml in dir and returns the
// path of the new file.
func writeReport(dir string, meta Metadata, info Info) (string, error) {
	data, err := toml.Marshal(newReport(meta, info))
	if err != nil {
		return "", fmt.Errorf("encoding report: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("report-%s.toml", uuid.NewString()))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}

	return path, nil
}

func printMessage(w io.Writer, meta Metadata, path string) error {
	header := color.New(color.FgRed, color.Bold)
	if _, err := header.Fprintln(w, "Well, this is embarrassing."); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, `
%[1]s had a problem and crashed. To help us diagnose the problem you can send us a crash report.

We have generated a report file at "%[2]s". Submit an issue or email with the subject of "%[1]s Crash Report" and include the report as an attachment.

- Homepage: %[3]s
- Authors: %[4]s

We take privacy seriously, and do not perform any automated error collection. In order to improve the software, we rely on people to submit reports.

Thank you kindly!
`, meta.Name, path, meta.Homepage, meta.Authors)

	return err
}
