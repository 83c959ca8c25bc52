package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mnes"
	"github.com/dmitrymomot/mnes/internal"
	"github.com/dmitrymomot/mnes/internal/api"
	"github.com/dmitrymomot/mnes/middlewares"
	"github.com/dmitrymomot/mnes/pkg/history"
	"github.com/dmitrymomot/mnes/pkg/storage"
	"github.com/dmitrymomot/mnes/pkg/syllable"
	"github.com/dmitrymomot/mnes/pkg/usage"
)

const maungKyawHtun = "မောင်ကျော်ထွန်း"

func newApp(t *testing.T, enc *mnes.Encoder, opts ...internal.Option) *internal.App {
	t.Helper()
	base := []internal.Option{
		internal.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
		internal.WithErrorHandler(api.ErrorHandler),
		internal.WithNotFoundHandler(api.NotFound),
		internal.WithMethodNotAllowedHandler(api.MethodNotAllowed),
		internal.WithHandlers(api.NewEncodeHandler(enc)),
	}
	return internal.New(append(base, opts...)...)
}

func call(app *internal.App, method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader = http.NoBody
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestEncodeEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("encodes with the default format", func(t *testing.T) {
		t.Parallel()

		app := newApp(t, mnes.New(syllable.MustBuiltin()))
		rec := call(app, http.MethodPost, "/api/encode", `{"name":"`+maungKyawHtun+`"}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		res := decode[mnes.Result](t, rec)
		assert.Equal(t, "MgKT", res.Encoded)
		assert.EqualValues(t, "short", res.Format)
		assert.Equal(t, 3, res.SyllableCount)
		assert.Len(t, res.Syllables, 3)
		assert.NotEmpty(t, res.ID)
	})

	t.Run("explicit format and warnings", func(t *testing.T) {
		t.Parallel()

		app := newApp(t, mnes.New(syllable.MustBuiltin()))
		rec := call(app, http.MethodPost, "/api/encode", `{"name":"ကျော်AB","format":"long"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		res := decode[mnes.Result](t, rec)
		assert.Equal(t, "Kyaw", res.Encoded)
		assert.Len(t, res.Warnings, 2)
	})

	tests := []struct {
		name string
		body string
		code string
	}{
		{"empty name", `{"name":"   "}`, "empty_input"},
		{"unsupported format", `{"name":"ဦး","format":"morse"}`, "unsupported_format"},
		{"too long", `{"name":"` + strings.Repeat("မ", 51) + `"}`, "input_too_long"},
		{"malformed json", `{"name":`, "invalid_body"},
		{"unknown field", `{"nam":"x"}`, "invalid_body"},
		{"no body", ``, "invalid_body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			app := newApp(t, mnes.New(syllable.MustBuiltin()))
			rec := call(app, http.MethodPost, "/api/encode", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

			body := decode[api.ErrorBody](t, rec)
			assert.Equal(t, tt.code, body.Error.Code)
			assert.NotEmpty(t, body.Error.Message)
			assert.Equal(t, rec.Header().Get("X-Request-ID"), body.Error.RequestID)
		})
	}

	t.Run("strict script", func(t *testing.T) {
		t.Parallel()

		app := newApp(t, mnes.New(syllable.MustBuiltin(), mnes.WithStrictScript()))
		rec := call(app, http.MethodPost, "/api/encode", `{"name":"ကျော်A"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid_character", decode[api.ErrorBody](t, rec).Error.Code)
	})

	t.Run("oversized body", func(t *testing.T) {
		t.Parallel()

		app := newApp(t, mnes.New(syllable.MustBuiltin()), internal.WithMaxBodyBytes(16))
		rec := call(app, http.MethodPost, "/api/encode", `{"name":"`+strings.Repeat("a", 64)+`"}`)
		require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		assert.Equal(t, "body_too_large", decode[api.ErrorBody](t, rec).Error.Code)
	})
}

func TestReadEndpoints(t *testing.T) {
	t.Parallel()

	tracker := usage.New()
	log := history.NewLog(0)
	enc := mnes.New(syllable.MustBuiltin(), mnes.WithTracker(tracker), mnes.WithHistory(log))
	for _, name := range []string{maungKyawHtun, "ကျော်ဝင်း", "ကျော်"} {
		_, err := enc.Encode(name, "short")
		require.NoError(t, err)
	}
	_, err := enc.Encode("", "short")
	require.Error(t, err)

	app := newApp(t, enc)

	t.Run("formats", func(t *testing.T) {
		t.Parallel()

		rec := call(app, http.MethodGet, "/api/formats", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"formats":["short","long","academic","initial"],"default":"short"}`, rec.Body.String())
	})

	t.Run("syllables with category filter", func(t *testing.T) {
		t.Parallel()

		rec := call(app, http.MethodGet, "/api/syllables", "")
		require.Equal(t, http.StatusOK, rec.Code)
		all := decode[api.SyllablesResponse](t, rec)
		assert.Equal(t, enc.Dictionary().Len(), all.Count)

		rec = call(app, http.MethodGet, "/api/syllables?category=suffix", "")
		suffixes := decode[api.SyllablesResponse](t, rec)
		require.Equal(t, 2, suffixes.Count)
		for _, r := range suffixes.Syllables {
			assert.Equal(t, syllable.CategorySuffix, r.Category)
		}
	})

	t.Run("stats", func(t *testing.T) {
		t.Parallel()

		rec := call(app, http.MethodGet, "/api/stats?top=1", "")
		require.Equal(t, http.StatusOK, rec.Code)

		report := decode[mnes.Report](t, rec)
		assert.Equal(t, 3, report.TotalEncodings)
		assert.Equal(t, 1, report.Errors)
		assert.InDelta(t, 0.25, report.ErrorRate, 1e-9)
		require.Len(t, report.Top, 1)
		require.NotNil(t, report.MostUsed)
		assert.Equal(t, "ကျော်", report.MostUsed.Syllable)
		assert.Equal(t, 3, report.MostUsed.Count)

		rec = call(app, http.MethodGet, "/api/stats?top=-1", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("history json", func(t *testing.T) {
		t.Parallel()

		rec := call(app, http.MethodGet, "/api/history?limit=2", "")
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decode[api.HistoryResponse](t, rec)
		require.Equal(t, 2, resp.Count)
		assert.Equal(t, "KW", resp.Records[0].Encoded)
		assert.Equal(t, "K", resp.Records[1].Encoded)
	})

	t.Run("history csv", func(t *testing.T) {
		t.Parallel()

		rec := call(app, http.MethodGet, "/api/history?as=csv", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))

		lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
		assert.Len(t, lines, 4)
	})

	t.Run("history rejects bad limits", func(t *testing.T) {
		t.Parallel()

		for _, q := range []string{"limit=0", "limit=abc", "limit=5000"} {
			rec := call(app, http.MethodGet, "/api/history?"+q, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code, q)
			assert.Equal(t, "invalid_query", decode[api.ErrorBody](t, rec).Error.Code)
		}
	})

	t.Run("unknown route and wrong method", func(t *testing.T) {
		t.Parallel()

		rec := call(app, http.MethodGet, "/api/nope", "")
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "not_found", decode[api.ErrorBody](t, rec).Error.Code)

		rec = call(app, http.MethodGet, "/api/encode", "")
		require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.Equal(t, "method_not_allowed", decode[api.ErrorBody](t, rec).Error.Code)
	})
}

func TestExportEndpoint_Disabled(t *testing.T) {
	t.Parallel()

	app := newApp(t, mnes.New(syllable.MustBuiltin()))
	rec := call(app, http.MethodPost, "/api/history/export", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "export_disabled", decode[api.ErrorBody](t, rec).Error.Code)
}

func TestExportEndpoint_Validation(t *testing.T) {
	t.Parallel()

	app := newApp(t, mnes.New(syllable.MustBuiltin()))

	rec := call(app, http.MethodPost, "/api/history/export", `{"limit":-1}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decode[api.ErrorBody](t, rec)
	assert.Equal(t, "invalid_limit", body.Error.Code)
	assert.Equal(t, "limit must not be negative", body.Error.Message)

	rec = call(app, http.MethodPost, "/api/history/export", `{"limit":"all"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_body", decode[api.ErrorBody](t, rec).Error.Code)
}

type failingStore struct{}

func (failingStore) Append(context.Context, history.Record) error { return nil }
func (failingStore) List(context.Context, int) ([]history.Record, error) {
	return nil, history.ErrListFailed
}

func TestInternalErrorsAreOpaque(t *testing.T) {
	t.Parallel()

	app := newApp(t, mnes.New(syllable.MustBuiltin(), mnes.WithHistory(failingStore{})))
	rec := call(app, http.MethodGet, "/api/history", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	body := decode[api.ErrorBody](t, rec)
	assert.Equal(t, "internal", body.Error.Code)
	assert.Equal(t, "internal server error", body.Error.Message)
}

// blockingStore holds List until the request context is done.
type blockingStore struct{}

func (blockingStore) Append(context.Context, history.Record) error { return nil }
func (blockingStore) List(ctx context.Context, int) ([]history.Record, error) {
	<-ctx.Done()
	return nil, errors.Join(history.ErrListFailed, ctx.Err())
}

func TestRequestTimeout(t *testing.T) {
	t.Parallel()

	app := newApp(t, mnes.New(syllable.MustBuiltin(), mnes.WithHistory(blockingStore{})),
		internal.WithMiddleware(middlewares.Timeout(20*time.Millisecond)),
	)

	rec := call(app, http.MethodGet, "/api/history", "")
	require.Equal(t, http.StatusGatewayTimeout, rec.Code)

	body := decode[api.ErrorBody](t, rec)
	assert.Equal(t, "timeout", body.Error.Code)
	assert.Equal(t, "request timed out", body.Error.Message)
	assert.Equal(t, rec.Header().Get("X-Request-ID"), body.Error.RequestID)
	assert.NotEmpty(t, body.Error.RequestID)

	rec = call(app, http.MethodGet, "/api/formats", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

type memStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
	puts    int
}

func (m *memStorage) Put(_ context.Context, r io.Reader, size int64, opts ...storage.Option) (*storage.FileInfo, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	o := storage.ApplyOptions(opts...)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.objects == nil {
		m.objects = map[string][]byte{}
	}
	m.puts++
	key := fmt.Sprintf("%s/export-%d%s", o.Prefix, m.puts, storage.ExtFromContentType(o.ContentType))
	m.objects[key] = data
	return &storage.FileInfo{Key: key, ContentType: o.ContentType, Size: size}, nil
}

func (m *memStorage) Get(_ context.Context, key string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[key]; !ok {
		return storage.ErrNotFound
	}
	delete(m.objects, key)
	m.deleted = append(m.deleted, key)
	return nil
}

func TestExportTask(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("empty history uploads nothing", func(t *testing.T) {
		t.Parallel()

		st := &memStorage{}
		info, err := api.NewExportTask(history.NewLog(0), st).Run(ctx, api.ExportRequest{})
		require.NoError(t, err)
		assert.Nil(t, info)
		assert.Empty(t, st.objects)
	})

	t.Run("json export of the latest records", func(t *testing.T) {
		t.Parallel()

		log := history.NewLog(0)
		enc := mnes.New(syllable.MustBuiltin(), mnes.WithHistory(log))
		for _, name := range []string{"ဦး", "ကျော်", "ဝင်း"} {
			_, err := enc.Encode(name, "long")
			require.NoError(t, err)
		}

		st := &memStorage{}
		info, err := api.NewExportTask(log, st).Run(ctx, api.ExportRequest{Limit: 2})
		require.NoError(t, err)
		require.NotNil(t, info)
		assert.Equal(t, storage.ContentTypeJSON, info.ContentType)

		var doc history.Document
		require.NoError(t, json.Unmarshal(st.objects[info.Key], &doc))
		require.Equal(t, 2, doc.Count)
		assert.Equal(t, "Kyaw", doc.Records[0].Encoded)
		assert.Equal(t, "Win", doc.Records[1].Encoded)
	})

	t.Run("scheduled run honors csv", func(t *testing.T) {
		t.Parallel()

		log := history.NewLog(0)
		_, err := mnes.New(syllable.MustBuiltin(), mnes.WithHistory(log)).Encode("ဦး", "long")
		require.NoError(t, err)

		st := &memStorage{}
		task := api.NewExportTask(log, st, api.WithCSV(), api.WithSchedule("0 3 * * *"))
		assert.Equal(t, api.ExportTaskName, task.Name())
		assert.Equal(t, "0 3 * * *", task.Schedule())
		assert.Len(t, task.JobOptions(), 2)

		require.NoError(t, task.Handle(ctx))
		require.Len(t, st.objects, 1)
		for key := range st.objects {
			assert.True(t, strings.HasSuffix(key, ".csv"))
		}
	})

	t.Run("retention deletes the oldest uploads", func(t *testing.T) {
		t.Parallel()

		log := history.NewLog(0)
		_, err := mnes.New(syllable.MustBuiltin(), mnes.WithHistory(log)).Encode("ဦး", "long")
		require.NoError(t, err)

		st := &memStorage{}
		task := api.NewExportTask(log, st, api.WithRetain(2))

		var keys []string
		for range 4 {
			info, err := task.Run(ctx, api.ExportRequest{})
			require.NoError(t, err)
			keys = append(keys, info.Key)
		}

		assert.Equal(t, keys[:2], st.deleted)
		require.Len(t, st.objects, 2)
		assert.Contains(t, st.objects, keys[2])
		assert.Contains(t, st.objects, keys[3])
	})

	t.Run("retention tolerates objects removed elsewhere", func(t *testing.T) {
		t.Parallel()

		log := history.NewLog(0)
		_, err := mnes.New(syllable.MustBuiltin(), mnes.WithHistory(log)).Encode("ဦး", "long")
		require.NoError(t, err)

		st := &memStorage{}
		task := api.NewExportTask(log, st, api.WithRetain(1))

		first, err := task.Run(ctx, api.ExportRequest{})
		require.NoError(t, err)
		require.NoError(t, st.Delete(ctx, first.Key))

		second, err := task.Run(ctx, api.ExportRequest{})
		require.NoError(t, err)
		assert.Equal(t, []string{first.Key}, st.deleted)
		assert.Contains(t, st.objects, second.Key)
	})

	t.Run("without storage", func(t *testing.T) {
		t.Parallel()

		_, err := api.NewExportTask(history.NewLog(0), nil).Run(ctx, api.ExportRequest{})
		require.ErrorIs(t, err, storage.ErrNotConfigured)
		assert.Len(t, api.NewExportTask(history.NewLog(0), nil).JobOptions(), 1)
	})
}
