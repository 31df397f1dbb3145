// Package streamio wraps an io.ReadSeeker with the small cursor protocol
// the grammar engine backtracks on: peek-one, advance-one, seek-to, and a
// cursor-preserving re-read of an already-consumed span.
package streamio

import "io"

// Input is a seekable byte cursor shared by every rule and matcher
// participating in a single read.
type Input struct {
	r   io.ReadSeeker
	pos int64
	eof bool
}

// New wraps r, positioning the cursor at r's current offset.
func New(r io.ReadSeeker) *Input {
	pos, _ := r.Seek(0, io.SeekCurrent)
	return &Input{r: r, pos: pos}
}

// Pos returns the current cursor position.
func (in *Input) Pos() int64 {
	return in.pos
}

// SeekTo repositions the cursor, clearing any end-of-stream flag picked up
// by a previous Peek/Next.
func (in *Input) SeekTo(pos int64) {
	in.eof = false
	if pos == in.pos {
		return
	}
	in.r.Seek(pos, io.SeekStart)
	in.pos = pos
}

// Peek returns the byte under the cursor without advancing it.
func (in *Input) Peek() (byte, bool) {
	b, ok := in.Next()
	if ok {
		in.SeekTo(in.pos - 1)
	}
	return b, ok
}

// Next returns the byte under the cursor and advances past it.
func (in *Input) Next() (byte, bool) {
	var buf [1]byte
	n, err := in.r.Read(buf[:])
	if n == 0 || err != nil {
		in.eof = true
		return 0, false
	}
	in.eof = false
	in.pos++
	return buf[0], true
}

// AtEOF reports whether the cursor is positioned at the end of the
// stream. It clears any sticky error flag picked up while probing, and
// leaves the cursor where it found it.
func (in *Input) AtEOF() bool {
	_, ok := in.Peek()
	in.eof = false
	return !ok
}

// Slice rereads [begin,end) from the underlying stream, restoring the
// cursor to its position before the call on exit.
func (in *Input) Slice(begin, end int64) ([]byte, error) {
	saved := in.pos
	defer in.SeekTo(saved)

	in.SeekTo(begin)
	buf := make([]byte, end-begin)
	if _, err := io.ReadFull(in.r, buf); err != nil {
		return nil, err
	}
	in.pos = end
	return buf, nil
}
