package mnes

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dmitrymomot/mnes/pkg/history"
	"github.com/dmitrymomot/mnes/pkg/logger"
	"github.com/dmitrymomot/mnes/pkg/romanize"
	"github.com/dmitrymomot/mnes/pkg/segment"
	"github.com/dmitrymomot/mnes/pkg/syllable"
	"github.com/dmitrymomot/mnes/pkg/usage"
)

// Encoder turns Myanmar names into romanized strings. Safe for concurrent use.
type Encoder struct {
	dict      *syllable.Dictionary
	segmenter *segment.Segmenter
	tracker   *usage.Tracker
	history   history.Store
	logger    *slog.Logger
	now       func() time.Time
	maxLength int
	strict    bool

	errors atomic.Int64
}

// New returns an encoder over dict.
func New(dict *syllable.Dictionary, opts ...Option) *Encoder {
	e := &Encoder{
		dict:      dict,
		segmenter: segment.New(dict),
		tracker:   usage.New(),
		history:   history.NewLog(0),
		logger:    logger.NewNope(),
		now:       time.Now,
		maxLength: DefaultMaxLength,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Encode is EncodeContext with a background context.
func (e *Encoder) Encode(input, format string) (Result, error) {
	return e.EncodeContext(context.Background(), input, format)
}

// EncodeContext encodes input in the named format.
//
// Validation runs in order: format, emptiness after normalization, length,
// then script (strict mode only). A failed call increments the error count
// and records nothing else. A successful call updates the usage tracker and
// appends to history; a history write failure is logged and does not fail
// the encoding.
func (e *Encoder) EncodeContext(ctx context.Context, input, format string) (Result, error) {
	start := time.Now()

	f, err := romanize.ParseFormat(format)
	if err != nil {
		return Result{}, e.fail(ctx, err)
	}

	normalized := Normalize(input)
	if normalized == "" {
		return Result{}, e.fail(ctx, ErrEmptyInput)
	}

	length := utf8.RuneCountInString(normalized)
	if e.maxLength > 0 && length > e.maxLength {
		return Result{}, e.fail(ctx, fmt.Errorf("%w: %d codepoints (max %d)", ErrInputTooLong, length, e.maxLength))
	}
	if e.strict {
		if err := checkScript(normalized); err != nil {
			return Result{}, e.fail(ctx, err)
		}
	}

	segments := e.segmenter.Segment(normalized)

	var (
		encoded   []byte
		syllables = make([]Syllable, 0, len(segments))
		matched   = make([]string, 0, len(segments))
		warnings  = make([]string, 0)
	)
	for _, seg := range segments {
		if !seg.Matched() {
			syllables = append(syllables, Syllable{Original: seg.Text})
			warnings = append(warnings, "unrecognized syllable/character: "+seg.Text)
			continue
		}

		token, err := romanize.Resolve(*seg.Record, f)
		if err != nil {
			return Result{}, e.fail(ctx, err)
		}
		encoded = append(encoded, token...)
		matched = append(matched, seg.Text)
		syllables = append(syllables, Syllable{
			Original: seg.Text,
			Encoded:  token,
			Category: seg.Record.Category,
			Matched:  true,
		})
	}

	out := string(encoded)
	res := Result{
		ID:               newID(),
		Original:         input,
		Normalized:       normalized,
		Format:           f,
		Encoded:          out,
		Syllables:        syllables,
		SyllableCount:    len(segments),
		MappedCount:      len(matched),
		CompressionRatio: CompressionRatio(out, normalized),
		Warnings:         warnings,
		Timestamp:        e.now(),
		Duration:         time.Since(start),
	}

	e.tracker.RecordUse(matched)
	if err := e.history.Append(ctx, res.Record()); err != nil {
		e.logger.ErrorContext(ctx, "failed to record encoding", slog.String("id", res.ID), slog.Any("error", err))
	}

	log := e.logger.With(
		slog.String("id", res.ID),
		slog.String("format", string(f)),
		slog.Int("syllables", res.SyllableCount),
		slog.Int("mapped", res.MappedCount),
	)
	if len(warnings) > 0 {
		log.WarnContext(ctx, "name encoded with unrecognized characters", slog.Any("warnings", warnings))
	} else {
		log.DebugContext(ctx, "name encoded", slog.Duration("duration", res.Duration))
	}

	return res, nil
}

// CompressionRatio is 1 - len(encoded)/len(original), counted in codepoints.
// It is 0 for an empty original, 1 when nothing was encoded, and negative
// when the encoding is longer than the original.
func CompressionRatio(encoded, original string) float64 {
	n := utf8.RuneCountInString(original)
	if n == 0 {
		return 0
	}
	return 1 - float64(utf8.RuneCountInString(encoded))/float64(n)
}

// Dictionary returns the dictionary in use.
func (e *Encoder) Dictionary() *syllable.Dictionary {
	return e.dict
}

// Tracker returns the usage tracker.
func (e *Encoder) Tracker() *usage.Tracker {
	return e.tracker
}

// History returns the history store.
func (e *Encoder) History() history.Store {
	return e.history
}

// Errors returns the number of failed encode calls.
func (e *Encoder) Errors() int {
	return int(e.errors.Load())
}

func (e *Encoder) fail(ctx context.Context, err error) error {
	e.errors.Add(1)
	e.logger.DebugContext(ctx, "encoding rejected", slog.Any("error", err))
	return err
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
