package errutil

import (
	"context"
	"errors"

	"github.com/atelier-vert/rapport/pkg/utils/logging"
	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
)

// Handle logs the error with its structured context and forwards it to
// Sentry when a hub is configured. It returns the error unchanged so
// callers can keep their error flow.
func Handle(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}

	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error(msg,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error(msg, "error", err.Error())
	}

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	if hub.Client() != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			if ge != nil {
				for k, v := range ge.Values() {
					scope.SetExtra(k, v)
				}
			}
			hub.CaptureException(err)
		})
	}

	return err
}
