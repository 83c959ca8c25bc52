// Package id generates sortable identifiers for request IDs and export object keys.
package id

import (
	"crypto/rand"
	"encoding/binary"
	"time"
)

// Crockford's Base32 alphabet (no I, L, O, U).
const crockfordBase32 = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// NewULID returns a 26-character ULID for the current time.
func NewULID() string {
	return NewULIDAt(time.Now())
}

// NewULIDAt returns a ULID whose 48-bit millisecond timestamp is t.
// IDs created at later instants sort after earlier ones.
func NewULIDAt(t time.Time) string {
	var raw [16]byte

	ms := uint64(t.UnixMilli())
	binary.BigEndian.PutUint16(raw[0:2], uint16(ms>>32))
	binary.BigEndian.PutUint32(raw[2:6], uint32(ms))

	if _, err := rand.Read(raw[6:]); err != nil {
		// Degraded entropy beats failing to produce an ID.
		binary.BigEndian.PutUint64(raw[8:], uint64(time.Now().UnixNano()))
	}

	return encode(raw)
}

// encode writes the 128-bit value as 26 base32 characters, most significant first.
// The first character carries only the top 3 bits.
func encode(raw [16]byte) string {
	hi := binary.BigEndian.Uint64(raw[:8])
	lo := binary.BigEndian.Uint64(raw[8:])

	var out [26]byte
	for i := 25; i >= 0; i-- {
		out[i] = crockfordBase32[lo&0x1F]
		lo = lo>>5 | hi<<59
		hi >>= 5
	}
	return string(out[:])
}
