package middlewares

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrymomot/mnes/internal"
)

// DefaultTimeout is the default request timeout.
const DefaultTimeout = 30 * time.Second

// Timeout returns middleware that bounds the request context by d.
// Store and encoder calls that honor the context abort at the deadline. An
// error the handler returns after the deadline is joined with a *TimeoutError
// before the error handler renders it; a handler that returns nil without
// writing anything also fails with a *TimeoutError. Non-positive d uses
// DefaultTimeout.
func Timeout(d time.Duration) internal.Middleware {
	if d <= 0 {
		d = DefaultTimeout
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			ctx, cancel := context.WithTimeout(c.Context(), d)
			defer cancel()

			expired := func() bool { return errors.Is(ctx.Err(), context.DeadlineExceeded) }
			c.SetContext(internal.WithErrorWrapper(ctx, func(err error) error {
				if !expired() || IsTimeoutError(err) {
					return err
				}
				c.LogWarn("request timeout", "timeout", d.String())
				return errors.Join(&TimeoutError{Duration: d}, err)
			}))

			err := next(c)
			if err == nil && expired() && !c.Written() {
				c.LogWarn("request timeout", "timeout", d.String())
				return &TimeoutError{Duration: d}
			}
			return err
		}
	}
}
