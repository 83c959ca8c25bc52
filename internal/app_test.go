package internal_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mnes/internal"
	"github.com/dmitrymomot/mnes/pkg/job"
	"github.com/dmitrymomot/mnes/pkg/storage"
)

type routes func(r internal.Router)

func (f routes) Routes(r internal.Router) { f(r) }

func jsonErrors(c internal.Context, err error) error {
	if httpErr := internal.AsHTTPError(err); httpErr != nil {
		return c.JSON(httpErr.Code, map[string]string{"error": httpErr.Message})
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal"})
}

func serve(t *testing.T, app *internal.App, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func TestApp_Routing(t *testing.T) {
	t.Parallel()

	type ctxKey struct{}

	var order []string
	var mu sync.Mutex
	record := func(name string) internal.Middleware {
		return func(next internal.HandlerFunc) internal.HandlerFunc {
			return func(c internal.Context) error {
				mu.Lock()
				order = append(order, name)
				mu.Unlock()
				return next(c)
			}
		}
	}

	app := internal.New(
		internal.WithErrorHandler(jsonErrors),
		internal.WithMiddleware(
			record("global"),
			func(next internal.HandlerFunc) internal.HandlerFunc {
				return func(c internal.Context) error {
					c.Set(ctxKey{}, "from-middleware")
					return next(c)
				}
			},
		),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.Route("/api", func(r internal.Router) {
				r.GET("/value", func(c internal.Context) error {
					return c.String(http.StatusOK, internal.ContextValue[string](c, ctxKey{}))
				}, record("route-1"), record("route-2"))
				r.GET("/fail", func(c internal.Context) error {
					return internal.ErrBadRequest("nope")
				})
				r.GET("/boom", func(c internal.Context) error {
					return errors.New("boom")
				})
				r.GET("/late", func(c internal.Context) error {
					_ = c.String(http.StatusOK, "done")
					return errors.New("after write")
				})
			})
		})),
	)

	t.Run("middleware values reach handlers in order", func(t *testing.T) {
		rec := serve(t, app, http.MethodGet, "/api/value", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "from-middleware", rec.Body.String())

		mu.Lock()
		defer mu.Unlock()
		require.Equal(t, []string{"global", "route-1", "route-2"}, order)
	})

	t.Run("http errors go through the error handler", func(t *testing.T) {
		rec := serve(t, app, http.MethodGet, "/api/fail", nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.JSONEq(t, `{"error":"nope"}`, rec.Body.String())
	})

	t.Run("plain errors become 500", func(t *testing.T) {
		rec := serve(t, app, http.MethodGet, "/api/boom", nil)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("written responses are kept", func(t *testing.T) {
		rec := serve(t, app, http.MethodGet, "/api/late", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "done", rec.Body.String())
	})
}

func TestApp_CustomFallbacks(t *testing.T) {
	t.Parallel()

	app := internal.New(
		internal.WithErrorHandler(jsonErrors),
		internal.WithNotFoundHandler(func(c internal.Context) error {
			return internal.ErrNotFound("no route")
		}),
		internal.WithMethodNotAllowedHandler(func(c internal.Context) error {
			return internal.ErrMethodNotAllowed("wrong method")
		}),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.POST("/things", func(c internal.Context) error { return c.NoContent(http.StatusCreated) })
		})),
	)

	rec := serve(t, app, http.MethodGet, "/missing", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"error":"no route"}`, rec.Body.String())

	rec = serve(t, app, http.MethodGet, "/things", nil)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.JSONEq(t, `{"error":"wrong method"}`, rec.Body.String())
}

func TestApp_HealthChecks(t *testing.T) {
	t.Parallel()

	app := internal.New(internal.WithHealthChecks(
		internal.WithReadinessCheck("ok", func(context.Context) error { return nil }),
		internal.WithReadinessCheck("down", func(context.Context) error { return errors.New("down") }),
		internal.WithReadinessCheck("ignored", nil),
	))

	rec := serve(t, app, http.MethodGet, "/health/live", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(t, app, http.MethodGet, "/health/ready?format=json", nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Contains(t, rec.Body.String(), `"down"`)
	require.NotContains(t, rec.Body.String(), `"ignored"`)
}

func TestApp_ErrorWrapper(t *testing.T) {
	t.Parallel()

	errOuter := errors.New("outer")
	errInner := errors.New("inner")
	wrapWith := func(tag error) internal.Middleware {
		return func(next internal.HandlerFunc) internal.HandlerFunc {
			return func(c internal.Context) error {
				c.SetContext(internal.WithErrorWrapper(c.Context(), func(err error) error {
					return errors.Join(tag, err)
				}))
				return next(c)
			}
		}
	}

	var captured error
	app := internal.New(
		internal.WithMiddleware(wrapWith(errOuter), wrapWith(errInner)),
		internal.WithErrorHandler(func(c internal.Context, err error) error {
			captured = err
			return c.NoContent(http.StatusTeapot)
		}),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.GET("/fail", func(c internal.Context) error { return io.ErrUnexpectedEOF })
			r.GET("/ok", func(c internal.Context) error { return c.NoContent(http.StatusNoContent) })
		})),
	)

	rec := serve(t, app, http.MethodGet, "/fail", nil)
	require.Equal(t, http.StatusTeapot, rec.Code)
	require.ErrorIs(t, captured, errOuter)
	require.ErrorIs(t, captured, errInner)
	require.ErrorIs(t, captured, io.ErrUnexpectedEOF)
	require.Equal(t, "outer\ninner\nunexpected EOF", captured.Error())

	captured = nil
	rec = serve(t, app, http.MethodGet, "/ok", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.NoError(t, captured)
}

func TestContext_BindJSON(t *testing.T) {
	t.Parallel()

	type payload struct {
		Name string `json:"name"`
	}

	app := internal.New(
		internal.WithErrorHandler(jsonErrors),
		internal.WithMaxBodyBytes(32),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.POST("/echo", func(c internal.Context) error {
				var p payload
				if err := c.BindJSON(&p); err != nil {
					return internal.ErrBadRequest(err.Error(), internal.WithError(err))
				}
				return c.JSON(http.StatusOK, p)
			})
		})),
	)

	rec := serve(t, app, http.MethodPost, "/echo", strings.NewReader(`{"name":"a"}`))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"name":"a"}`, rec.Body.String())

	rec = serve(t, app, http.MethodPost, "/echo", strings.NewReader(`{"other":1}`))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, app, http.MethodPost, "/echo", http.NoBody)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), internal.ErrEmptyBody.Error())

	rec = serve(t, app, http.MethodPost, "/echo", strings.NewReader(`{"name":"`+strings.Repeat("x", 64)+`"}`))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContext_OptionalServices(t *testing.T) {
	t.Parallel()

	var enqueueErr, storageErr error
	app := internal.New(internal.WithHandlers(routes(func(r internal.Router) {
		r.GET("/", func(c internal.Context) error {
			enqueueErr = c.Enqueue("export_history", nil)
			_, storageErr = c.Storage()
			return c.NoContent(http.StatusNoContent)
		})
	})))

	rec := serve(t, app, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.ErrorIs(t, enqueueErr, job.ErrNotConfigured)
	require.ErrorIs(t, storageErr, storage.ErrNotConfigured)
	require.Nil(t, app.Jobs())
}

func TestQueryHelpers(t *testing.T) {
	t.Parallel()

	var limit, top int
	var limitOK bool
	var asCSV bool
	app := internal.New(internal.WithHandlers(routes(func(r internal.Router) {
		r.GET("/", func(c internal.Context) error {
			limit, limitOK = internal.QueryInt(c, "limit", 20)
			top = internal.QueryDefault(c, "top", 5)
			asCSV = internal.QueryDefault(c, "csv", false)
			return c.NoContent(http.StatusNoContent)
		})
	})))

	serve(t, app, http.MethodGet, "/?limit=3&top=x&csv=true", nil)
	require.True(t, limitOK)
	require.Equal(t, 3, limit)
	require.Equal(t, 5, top)
	require.True(t, asCSV)

	serve(t, app, http.MethodGet, "/?limit=abc", nil)
	require.False(t, limitOK)

	serve(t, app, http.MethodGet, "/", nil)
	require.True(t, limitOK)
	require.Equal(t, 20, limit)
}

func TestApp_Run(t *testing.T) {
	t.Parallel()

	t.Run("stops on context cancel and runs hooks", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		var started, stopped bool

		done := make(chan error, 1)
		go func() {
			done <- internal.New().Run("127.0.0.1:0",
				internal.WithContext(ctx),
				internal.ShutdownTimeout(time.Second),
				internal.StartupHook(func(context.Context) error {
					started = true
					return nil
				}),
				internal.ShutdownHook(func(context.Context) error {
					stopped = true
					return nil
				}),
			)
		}()

		time.Sleep(50 * time.Millisecond)
		cancel()

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("server did not stop")
		}
		require.True(t, started)
		require.True(t, stopped)
	})

	t.Run("failing startup hook aborts", func(t *testing.T) {
		t.Parallel()

		hookErr := errors.New("migrate failed")
		err := internal.New().Run("127.0.0.1:0",
			internal.StartupHook(func(context.Context) error { return hookErr }),
		)
		require.ErrorIs(t, err, hookErr)
	})

	t.Run("shutdown hook errors are joined", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		hookErr := errors.New("close failed")
		err := internal.New().Run("127.0.0.1:0",
			internal.WithContext(ctx),
			internal.ShutdownHook(func(context.Context) error { return hookErr }),
		)
		require.ErrorIs(t, err, hookErr)
	})
}
