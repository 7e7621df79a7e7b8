// Package observability wires optional error reporting.
package observability

import (
	"time"

	"github.com/getsentry/sentry-go"
)

// InitSentry initializes Sentry error reporting and returns a flush
// function to defer at shutdown. An empty DSN disables reporting and the
// returned flush is a no-op.
func InitSentry(dsn, environment, release string) (func(), error) {
	if dsn == "" {
		return func() {}, nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: environment,
		Release:     release,
	}); err != nil {
		return func() {}, err
	}
	return func() { sentry.Flush(2 * time.Second) }, nil
}

// CaptureErr reports a non-nil error. Safe to call when Sentry is disabled.
func CaptureErr(err error) {
	if err != nil {
		sentry.CaptureException(err)
	}
}
