package store

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Local precondition failures. They never reach the network but read like
// server failures to callers.
var (
	ErrNoCanonicalID = errors.New("record has no usable id")
	ErrMissingUserID = errors.New("a linked user account is required before changing roles")
)

const backgroundTimeout = 15 * time.Second

// background spawns a refresh whose outcome is deliberately discarded.
// Its error is logged and must never overwrite the result of the
// operation that triggered it.
func background(name string, run func(context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), backgroundTimeout)
		defer cancel()
		if err := run(ctx); err != nil {
			slog.Warn("background refresh failed", "name", name, "err", err)
		}
	}()
}

