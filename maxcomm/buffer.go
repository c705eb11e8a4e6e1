package maxcomm

import (
	"fmt"
	"strings"
)

// buffer is a read cursor over a single fragment. Every failure is
// reported as a *ParseError pointing at the current position.
type buffer struct {
	data string
	pos  int
}

func newBuffer(fragment string) *buffer {
	return &buffer{data: fragment}
}

func (b *buffer) Len() int {
	return len(b.data) - b.pos
}

func (b *buffer) fail(err error, format string, args ...interface{}) *ParseError {
	return &ParseError{
		Err:      err,
		Pos:      b.pos,
		Fragment: b.data,
		Detail:   fmt.Sprintf(format, args...),
	}
}

// Expect consumes c or fails.
func (b *buffer) Expect(c byte) error {
	if b.Len() < 1 {
		return b.fail(ErrTruncated, "expected %q", c)
	}
	if b.data[b.pos] != c {
		return b.fail(ErrFraming, "expected %q, found %q", c, b.data[b.pos])
	}
	b.pos++
	return nil
}

// ReadFixed consumes exactly n characters.
func (b *buffer) ReadFixed(n int) (string, error) {
	if b.Len() < n {
		return "", b.fail(ErrTruncated, "expected %d characters, %d left", n, b.Len())
	}
	s := b.data[b.pos : b.pos+n]
	b.pos += n
	return s, nil
}

// ReadHex consumes exactly n hex digits.
func (b *buffer) ReadHex(n int) (int, error) {
	start := b.pos
	s, err := b.ReadFixed(n)
	if err != nil {
		return 0, err
	}
	return b.hex(s, start)
}

// ReadUntil consumes everything up to, but not including, the next c.
func (b *buffer) ReadUntil(c byte) (string, error) {
	i := strings.IndexByte(b.data[b.pos:], c)
	if i < 0 {
		return "", b.fail(ErrTruncated, "could not find %q", c)
	}
	s := b.data[b.pos : b.pos+i]
	b.pos += i
	return s, nil
}

// ReadHexUntil consumes a variable width hex number terminated by c.
func (b *buffer) ReadHexUntil(c byte) (int, error) {
	start := b.pos
	s, err := b.ReadUntil(c)
	if err != nil {
		return 0, err
	}
	return b.hex(s, start)
}

func (b *buffer) hex(s string, start int) (int, error) {
	n, err := parseHex(s)
	if err != nil {
		pos := b.pos
		b.pos = start
		pe := b.fail(ErrMalformedNumber, "could not parse %q", s)
		b.pos = pos
		return 0, pe
	}
	return n, nil
}
