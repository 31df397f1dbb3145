package abnf

import "github.com/clarete/abnfkit/internal/streamio"

func foldByte(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

// charMatcher matches the next byte iff it equals a fixed byte. Single
// shot: never available after a match.
type charMatcher struct {
	base
	ch byte
}

func (m *charMatcher) Match(in *streamio.Input) bool {
	return m.attempt(in, func() bool {
		b, ok := in.Peek()
		if !ok || b != m.ch {
			return false
		}
		in.Next()
		return true
	})
}

func (m *charMatcher) Commit() { m.leafCommit() }

// stringMatcher matches the next len(str) bytes under ASCII case folding.
// An empty str never matches.
type stringMatcher struct {
	base
	str string
}

func (m *stringMatcher) Match(in *streamio.Input) bool {
	return m.attempt(in, func() bool {
		if len(m.str) == 0 {
			return false
		}
		for i := 0; i < len(m.str); i++ {
			b, ok := in.Next()
			if !ok || foldByte(b) != foldByte(m.str[i]) {
				return false
			}
		}
		return true
	})
}

func (m *stringMatcher) Commit() { m.leafCommit() }

// rangeMatcher matches the next byte iff it falls within [lo,hi].
type rangeMatcher struct {
	base
	lo, hi byte
}

func (m *rangeMatcher) Match(in *streamio.Input) bool {
	return m.attempt(in, func() bool {
		b, ok := in.Peek()
		if !ok || b < m.lo || b > m.hi {
			return false
		}
		in.Next()
		return true
	})
}

func (m *rangeMatcher) Commit() { m.leafCommit() }

// predicateMatcher matches the next byte iff pred returns true for it.
type predicateMatcher struct {
	base
	pred func(byte) bool
}

func (m *predicateMatcher) Match(in *streamio.Input) bool {
	return m.attempt(in, func() bool {
		b, ok := in.Peek()
		if !ok || !m.pred(b) {
			return false
		}
		in.Next()
		return true
	})
}

func (m *predicateMatcher) Commit() { m.leafCommit() }

// charsetMatcher matches the next byte iff it appears in set.
type charsetMatcher struct {
	base
	set string
}

func (m *charsetMatcher) Match(in *streamio.Input) bool {
	return m.attempt(in, func() bool {
		if len(m.set) == 0 {
			return false
		}
		b, ok := in.Peek()
		if !ok {
			return false
		}
		for i := 0; i < len(m.set); i++ {
			if m.set[i] == b {
				in.Next()
				return true
			}
		}
		return false
	})
}

func (m *charsetMatcher) Commit() { m.leafCommit() }

// eofMatcher matches iff the input is exhausted. It never produces a
// segment: begin and end always coincide.
type eofMatcher struct {
	base
}

func (m *eofMatcher) Match(in *streamio.Input) bool {
	return m.attempt(in, func() bool {
		return in.AtEOF()
	})
}

func (m *eofMatcher) Commit() { m.leafCommit() }

// emptyMatcher is the null object returned by Ruleset.Get for unknown
// names: it never matches and is never available for a second try.
type emptyMatcher struct {
	base
}

func (m *emptyMatcher) Match(in *streamio.Input) bool {
	return m.attempt(in, func() bool { return false })
}

func (m *emptyMatcher) Commit() {}
