package spinner

import (
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// StartSpinner starts a terminal spinner with the given message on w.
// Returns a stop function to halt and clear the spinner.
//
// Usage: assign the spinner to a 'stop' variable, run some code, then call stop().
// i.e.:
//
//	stop := spinner.StartSpinner(os.Stderr, "Your message here ")
//	err := lib.SomeOperation()
//	stop()
//	if err != nil { return err }
func StartSpinner(w io.Writer, message string) func() {
	// CharSets[14] is the braille dots set.
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + message
	s.Start()

	return s.Stop
}
