// Package middlewares provides the HTTP middleware used by mnesd.
//
// Recommended order:
//
//	internal.WithMiddleware(
//	    middlewares.RequestID(),          // assign ID before anything logs
//	    middlewares.RequestLogger(),      // one line per request, with request_id
//	    middlewares.Recover(),            // panics become *PanicError
//	    middlewares.Timeout(10*time.Second),
//	)
//
// Pair RequestID with RequestIDExtractor so every log line written with a
// request context carries the ID:
//
//	internal.WithLogger("api", middlewares.RequestIDExtractor())
//
// Recover and Timeout do not write responses. They return *PanicError and
// *TimeoutError, which the application's error handler maps to 500 and 504.
// Timeout attaches its error through internal.WithErrorWrapper, so a handler
// that fails after the deadline is rendered as a timeout even though the
// router's error handler runs before global middleware regains control.
package middlewares
