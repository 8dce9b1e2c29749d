package dao

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	ErrShortRecord    = errors.New("record buffer shorter than layout width")
	ErrRecordNotFound = errors.New("record not found")
	ErrUnknownField   = errors.New("unknown record field")
)

// Record is a value stored as one fixed-width block in a .dat file.
type Record interface {
	// Key is the value FindByID matches against.
	Key() int32
	// Field returns the decoded value of a named field in its string form.
	Field(name string) (string, bool)
}

// Codec converts one record type to and from its fixed-width block.
type Codec[T Record] interface {
	Width() int
	Encode(rec T) []byte
	Decode(buf []byte) (T, error)
}

// rawCodec encodes through a packed struct R whose binary.Size is the record
// width. Blank padding fields in R are written as zeros and skipped on read.
type rawCodec[T Record, R any] struct {
	width int
	to    func(T) R
	from  func(*R) T
}

func newRawCodec[T Record, R any](to func(T) R, from func(*R) T) rawCodec[T, R] {
	var raw R
	return rawCodec[T, R]{
		width: binary.Size(raw),
		to:    to,
		from:  from,
	}
}

func (c rawCodec[T, R]) Width() int { return c.width }

func (c rawCodec[T, R]) Encode(rec T) []byte {
	var buf bytes.Buffer
	buf.Grow(c.width)
	// Writes into a bytes.Buffer of a fixed-size struct cannot fail.
	_ = binary.Write(&buf, binary.LittleEndian, c.to(rec))
	return buf.Bytes()
}

func (c rawCodec[T, R]) Decode(buf []byte) (T, error) {
	var raw R
	if len(buf) < c.width {
		var zero T
		return zero, fmt.Errorf("decode %d of %d bytes -> %w", len(buf), c.width, ErrShortRecord)
	}
	if err := binary.Read(bytes.NewReader(buf[:c.width]), binary.LittleEndian, &raw); err != nil {
		var zero T
		return zero, fmt.Errorf("binary.Read -> %w", err)
	}
	return c.from(&raw), nil
}

// putString copies s into dst, truncated to len(dst)-1 bytes so at least one
// terminating zero remains, and zero-fills the rest of the field.
func putString(dst []byte, s string) {
	n := copy(dst[:len(dst)-1], s)
	clear(dst[n:])
}

// getString reads a field up to its first zero byte. Each byte is one code
// point; multi-byte sequences are not reassembled.
func getString(src []byte) string {
	end := bytes.IndexByte(src, 0)
	if end < 0 {
		end = len(src)
	}
	runes := make([]rune, end)
	for i, b := range src[:end] {
		runes[i] = rune(b)
	}
	return string(runes)
}

func fixed50(s string) (b [50]byte) { putString(b[:], s); return }
func fixed20(s string) (b [20]byte) { putString(b[:], s); return }
func fixed16(s string) (b [16]byte) { putString(b[:], s); return }
func fixed10(s string) (b [10]byte) { putString(b[:], s); return }

// Text field widths, terminating zero included.
const (
	LongText  = 50
	ShortText = 20
)

// StoredText returns s as it reads back from a text field of the given width.
func StoredText(s string, width int) string {
	buf := make([]byte, width)
	putString(buf, s)
	return getString(buf)
}

// RoundTrip returns rec as a read of its encoded block returns it.
func RoundTrip[T Record](c Codec[T], rec T) T {
	out, err := c.Decode(c.Encode(rec))
	if err != nil {
		// Encode always yields a full block.
		return rec
	}
	return out
}
