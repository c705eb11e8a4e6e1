package maxcomm

import (
	"bytes"
	"io"
)

type Reader interface {
	// ReadFrame returns everything up to and including the next end
	// marker. If the underlying reader runs dry first, whatever was read
	// so far is returned; ErrNoReply is returned if that is nothing.
	ReadFrame() (string, error)
}

type reader struct {
	r   io.Reader
	buf []byte
}

func NewReader(r io.Reader) Reader {
	return &reader{
		r: r,
	}
}

func (r *reader) ReadFrame() (string, error) {
	buf := make([]byte, 256)
	for {
		if fr := r.tryFrame(); fr != "" {
			return fr, nil
		}
		n, err := r.r.Read(buf)
		r.buf = append(r.buf, buf[0:n]...)
		if err == io.EOF || (err == nil && n == 0) {
			// Serial ports report a read timeout as EOF or an empty read
			return r.flush()
		}
		if err != nil {
			return "", err
		}
	}
}

func (r *reader) tryFrame() string {
	i := bytes.IndexByte(r.buf, endMarker)
	if i < 0 {
		return ""
	}
	fr := string(r.buf[:i+1])
	r.buf = r.buf[i+1:]
	return fr
}

func (r *reader) flush() (string, error) {
	if len(r.buf) == 0 {
		return "", ErrNoReply
	}
	fr := string(r.buf)
	r.buf = nil
	return fr, nil
}
