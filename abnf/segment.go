package abnf

import (
	"io"

	"github.com/clarete/abnfkit/internal/streamio"
)

// Segment is a half-open [Begin,End) span over stream positions, recorded
// on every successful commit of the rule it is attached to.
type Segment struct {
	Begin int64
	End   int64
}

func (s Segment) empty() bool {
	return s.End <= s.Begin
}

// writeTo copies the bytes of s from in to out, leaving in's cursor where
// it found it.
func (s Segment) writeTo(in *streamio.Input, out io.Writer) error {
	data, err := in.Slice(s.Begin, s.End)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
