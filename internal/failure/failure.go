// Package failure prints an error together with the chain of errors it wraps.
package failure

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Causes walks the errors.Unwrap chain of err and returns each layer's own
// message, outermost first. A layer built with fmt.Errorf("ctx: %w", cause)
// contributes "ctx" rather than repeating the cause's text.
//
// Only single-error wrapping is followed; for errors.Join style errors the
// joined message is reported as one layer.
func Causes(err error) []string {
	var msgs []string
	for err != nil {
		next := errors.Unwrap(err)
		msg := err.Error()
		if next != nil {
			msg = strings.TrimSuffix(msg, ": "+next.Error())
		}
		msgs = append(msgs, msg)
		err = next
	}
	return msgs
}

// Print writes "Error: <msg>" followed by one "Caused by: <msg>" line per
// wrapped cause.
func Print(w io.Writer, err error) {
	msgs := Causes(err)
	if len(msgs) == 0 {
		return
	}

	fmt.Fprintf(w, "Error: %s\n", msgs[0])
	for _, cause := range msgs[1:] {
		fmt.Fprintf(w, "Caused by: %s\n", cause)
	}
}
