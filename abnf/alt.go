package abnf

import "github.com/clarete/abnfkit/internal/streamio"

// altMatcher implements ordered binary alternation: left is always tried
// before right, and once left has produced a match, subsequent retries
// re-ask left for a different one before ever falling through to right.
//
// Both children are built eagerly (unlike concat's right, which depends
// on where left ends) so Available() can be computed exactly as
// available(left) || available(right), as specified.
type altMatcher struct {
	base
	leftM, rightM Matcher
	side          int // 0 = undecided, 1 = committed to left, 2 = committed to right
}

func (m *altMatcher) Match(in *streamio.Input) bool {
	if m.matched {
		in.SeekTo(m.end)
		return true
	}
	if !m.available {
		return false
	}

	begin := in.Pos()
	switch m.side {
	case 1:
		m.leftM.Mismatch()
	case 2:
		m.rightM.Mismatch()
	}

	if m.side != 2 {
		in.SeekTo(begin)
		if m.leftM.Match(in) {
			m.side = 1
			m.begin, m.end = begin, in.Pos()
			m.matched = true
			m.available = m.leftM.Available() || m.rightM.Available()
			return true
		}
		m.side = 2
	}

	in.SeekTo(begin)
	ok := m.rightM.Match(in)
	m.begin, m.end = begin, in.Pos()
	m.matched = ok
	if ok {
		m.available = m.leftM.Available() || m.rightM.Available()
	} else {
		m.available = false
	}
	return ok
}

// Commit records exactly one segment on this rule (the chosen side's
// span) and commits whichever side actually matched.
func (m *altMatcher) Commit() {
	if !m.matched {
		return
	}
	m.rule.segmentAdd(m.begin, m.end)
	if m.side == 1 {
		m.leftM.Commit()
	} else {
		m.rightM.Commit()
	}
}
