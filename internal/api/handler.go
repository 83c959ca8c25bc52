package api

import (
	"bytes"
	"errors"
	"net/http"
	"slices"

	"github.com/dmitrymomot/mnes"
	"github.com/dmitrymomot/mnes/internal"
	"github.com/dmitrymomot/mnes/pkg/history"
	"github.com/dmitrymomot/mnes/pkg/romanize"
	"github.com/dmitrymomot/mnes/pkg/syllable"
)

// Limits for GET /api/history.
const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 1000
)

// EncodeRequest is the body of POST /api/encode.
type EncodeRequest struct {
	Name   string `json:"name"`
	Format string `json:"format"`
}

// FormatsResponse is the body of GET /api/formats.
type FormatsResponse struct {
	Formats []romanize.Format `json:"formats"`
	Default romanize.Format   `json:"default"`
}

// SyllablesResponse is the body of GET /api/syllables.
type SyllablesResponse struct {
	Count     int               `json:"count"`
	Syllables []syllable.Record `json:"syllables"`
}

// HistoryResponse is the body of GET /api/history.
type HistoryResponse struct {
	Count   int              `json:"count"`
	Records []history.Record `json:"records"`
}

// ExportResponse is the body of a 202 from POST /api/history/export.
type ExportResponse struct {
	Status string `json:"status"`
	Task   string `json:"task"`
}

// EncodeHandler serves the encoding API.
type EncodeHandler struct {
	enc *mnes.Encoder
}

// NewEncodeHandler returns the API handler over enc. History reads go to
// enc.History(), so the handler and the encoder always agree on the store.
func NewEncodeHandler(enc *mnes.Encoder) *EncodeHandler {
	return &EncodeHandler{enc: enc}
}

func (h *EncodeHandler) Routes(r internal.Router) {
	r.Route("/api", func(r internal.Router) {
		r.POST("/encode", h.encode)
		r.GET("/formats", h.formats)
		r.GET("/syllables", h.syllables)
		r.GET("/stats", h.stats)
		r.GET("/history", h.history)
		r.POST("/history/export", h.export)
	})
}

func (h *EncodeHandler) encode(c internal.Context) error {
	var req EncodeRequest
	if err := c.BindJSON(&req); err != nil {
		return err
	}
	if req.Format == "" {
		req.Format = string(romanize.DefaultFormat)
	}

	res, err := h.enc.EncodeContext(c, req.Name, req.Format)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (h *EncodeHandler) formats(c internal.Context) error {
	return c.JSON(http.StatusOK, FormatsResponse{
		Formats: romanize.Formats(),
		Default: romanize.DefaultFormat,
	})
}

// syllables lists dictionary records, optionally filtered by ?category=.
func (h *EncodeHandler) syllables(c internal.Context) error {
	records := h.enc.Dictionary().Records()
	if cat := syllable.Category(c.Query("category")); cat != "" {
		records = slices.DeleteFunc(records, func(r syllable.Record) bool {
			return r.Category != cat
		})
	}
	return c.JSON(http.StatusOK, SyllablesResponse{Count: len(records), Syllables: records})
}

func (h *EncodeHandler) stats(c internal.Context) error {
	top, ok := internal.QueryInt(c, "top", mnes.DefaultTopN)
	if !ok || top < 0 {
		return internal.ErrBadRequest("top must be a non-negative integer", internal.WithErrorCode("invalid_query"))
	}
	return c.JSON(http.StatusOK, h.enc.Report(top))
}

// history returns the most recent records, oldest first. ?as=csv renders
// the tabular view instead of JSON.
func (h *EncodeHandler) history(c internal.Context) error {
	limit, ok := internal.QueryInt(c, "limit", DefaultHistoryLimit)
	if !ok || limit < 1 || limit > MaxHistoryLimit {
		return internal.ErrBadRequest("limit must be between 1 and 1000", internal.WithErrorCode("invalid_query"))
	}

	records, err := h.enc.History().List(c, limit)
	if err != nil {
		return err
	}

	if c.Query("as") == "csv" {
		var buf bytes.Buffer
		if err := history.WriteCSV(&buf, records); err != nil {
			return err
		}
		return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
	}

	if records == nil {
		records = []history.Record{}
	}
	return c.JSON(http.StatusOK, HistoryResponse{Count: len(records), Records: records})
}

// export enqueues the export task. The body is optional.
func (h *EncodeHandler) export(c internal.Context) error {
	var req ExportRequest
	if err := c.BindJSON(&req); err != nil && !errors.Is(err, internal.ErrEmptyBody) {
		return err
	}
	if req.Limit < 0 {
		return internal.ErrUnprocessable("limit must not be negative", internal.WithErrorCode("invalid_limit"))
	}

	if err := c.Enqueue(ExportTaskName, req); err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, ExportResponse{Status: "queued", Task: ExportTaskName})
}
