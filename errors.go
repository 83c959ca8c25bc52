package mnes

import (
	"errors"

	"github.com/dmitrymomot/mnes/pkg/romanize"
)

var (
	ErrEmptyInput       = errors.New("mnes: empty input")
	ErrInputTooLong     = errors.New("mnes: input too long")
	ErrInvalidCharacter = errors.New("mnes: invalid character")

	// ErrUnsupportedFormat is romanize.ErrUnsupportedFormat, re-exported so
	// callers of this package can match it without importing romanize.
	ErrUnsupportedFormat = romanize.ErrUnsupportedFormat
)
