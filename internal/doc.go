// Package internal is the HTTP application layer behind mnesd.
//
// It wraps chi with a small handler model: handlers take a Context and return
// an error, middleware wraps handlers, and a single ErrorHandler turns
// returned errors into responses.
//
//	app := internal.New(
//	    internal.WithLogger("api", middlewares.RequestIDExtractor()),
//	    internal.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    internal.WithHealthChecks(internal.WithReadinessCheck("db", db.Healthcheck(pool))),
//	    internal.WithJobs(manager),
//	    internal.WithHandlers(api.NewEncodeHandler(enc)),
//	)
//	err := app.Run(":8080", internal.Logger(log), internal.ShutdownHook(db.Shutdown(pool)))
//
// # Context
//
// Context embeds context.Context, so it can be passed directly to store and
// encoder calls. Values stored with Set are visible to later middleware and
// to log extractors through the request context.
//
// # Errors
//
// Handlers return *HTTPError for expected failures (bad input, unknown
// format). Anything else is treated as internal by the error handler the
// application installs. A response that was already written is never
// overwritten.
//
// # Lifecycle
//
// Run executes startup hooks, starts the job manager when one is attached,
// serves until SIGINT/SIGTERM or base-context cancellation, then shuts the
// server down and runs shutdown hooks within ShutdownTimeout.
package internal
