package version

import (
	"context"
	"log/slog"
)

// Pair is the result of a successful version probe.
type Pair struct {
	Local  string
	Latest string
}

// Valid reports whether the pair is worth telling the user about.
func (p Pair) Valid() bool {
	return p.Local != "" && p.Latest != "" && p.Local != p.Latest
}

// Handle is the receiving end of a background update check.
type Handle struct {
	ch <-chan Pair
}

// StartCheck runs p once in its own goroutine and returns immediately. A valid
// pair is handed over through a one-slot channel; every other outcome,
// including a panic inside the probe, is dropped.
//
// Nobody waits for the goroutine. If the process exits first the result is
// simply lost.
func StartCheck(ctx context.Context, p Prober) *Handle {
	ch := make(chan Pair, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				slog.Debug("update check panicked", "panic", r)
			}
		}()

		local, latest, err := p.Versions(ctx)
		if err != nil {
			slog.Debug("update check failed", "err", err)
			return
		}

		pair := Pair{Local: local, Latest: latest}
		if !pair.Valid() {
			slog.Debug("no update available", "local", local, "latest", latest)
			return
		}

		ch <- pair
	}()

	return &Handle{ch: ch}
}

// Poll returns the pair if the check has already delivered one. It never
// blocks. Once a pair has been returned, further calls report false.
func (h *Handle) Poll() (Pair, bool) {
	if h == nil {
		return Pair{}, false
	}

	select {
	case pair := <-h.ch:
		return pair, true
	default:
		return Pair{}, false
	}
}
