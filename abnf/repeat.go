package abnf

import "github.com/clarete/abnfkit/internal/streamio"

// repeatMatcher implements repetition n..m with the greedy-with-shrink
// backtracking variant mandated by §9: the first attempt grows as far as
// it can (up to max), shrinking an already-accepted occurrence only when
// growth stalls before reaching min; every later attempt (after the
// caller asks for a different overall match) drops the most recently
// accepted occurrence and never grows again.
type repeatMatcher struct {
	base
	rs       *Ruleset
	bodyID   RuleID
	min, max int
	children []Matcher
	started  bool
}

func (m *repeatMatcher) atMax() bool {
	return m.max != Unbounded && len(m.children) >= m.max
}

func (m *repeatMatcher) tailPos() int64 {
	if len(m.children) == 0 {
		return m.begin
	}
	return m.children[len(m.children)-1].End()
}

func (m *repeatMatcher) settle(in *streamio.Input) {
	m.end = m.tailPos()
	m.matched = true
	m.available = m.anyChildAvailable() || !m.atMax()
	in.SeekTo(m.end)
}

func (m *repeatMatcher) fail(in *streamio.Input) bool {
	m.matched, m.available = false, false
	in.SeekTo(m.begin)
	return false
}

// extendOnce creates a fresh child matcher and asks it to match at the
// current tail. On success it is appended and true is returned.
func (m *repeatMatcher) extendOnce(in *streamio.Input) bool {
	if m.atMax() {
		return false
	}
	in.SeekTo(m.tailPos())
	child := newMatcher(m.bodyID)
	if !child.Match(in) {
		return false
	}
	m.children = append(m.children, child)
	return true
}

// shrinkOnce drops the most recently accepted occurrence. If the
// occurrence now exposed at the tail can itself produce a different
// match, it is asked to; either way the reduced list is left as the
// candidate for the caller to accept or grow from again.
func (m *repeatMatcher) shrinkOnce(in *streamio.Input) bool {
	if len(m.children) == 0 {
		return false
	}
	m.children = m.children[:len(m.children)-1]
	if len(m.children) < m.min {
		return false
	}
	if len(m.children) > 0 {
		newLast := m.children[len(m.children)-1]
		if newLast.Available() {
			in.SeekTo(newLast.Begin())
			newLast.Mismatch()
			newLast.Match(in)
		}
	}
	return true
}

func (m *repeatMatcher) Match(in *streamio.Input) bool {
	if m.matched {
		in.SeekTo(m.end)
		return true
	}
	if !m.available {
		return false
	}

	if !m.started {
		m.started = true
		m.begin = in.Pos()
		return m.growToMin(in)
	}

	// Re-entry: produce something distinct from the last successful
	// match by shrinking by one. Growing is not retried: the first
	// attempt already grew as far as it could, and regrowing after a
	// shrink would only hand back the occurrence just dropped.
	if m.shrinkOnce(in) {
		m.settle(in)
		return true
	}
	return m.fail(in)
}

// growToMin runs on the very first attempt (for any min): it climbs to at
// least min occurrences (cascading shrink-and-retry when growth stalls
// short of min), then keeps greedily extending as far as it can before
// settling on the final count.
func (m *repeatMatcher) growToMin(in *streamio.Input) bool {
	for {
		for m.extendOnce(in) {
			// keep growing greedily
		}
		if len(m.children) >= m.min {
			m.settle(in)
			return true
		}
		if !m.shrinkOnce(in) {
			return m.fail(in)
		}
		// shrinkOnce may have changed the tail; try growing again.
	}
}

func (m *repeatMatcher) anyChildAvailable() bool {
	for _, c := range m.children {
		if c.Available() {
			return true
		}
	}
	return false
}

// Commit records one segment on this rule spanning the first accepted
// child's begin to the last accepted child's end, then commits every
// accepted child in order. A zero-occurrence (min=0, empty) match
// produces no segment.
func (m *repeatMatcher) Commit() {
	if !m.matched || len(m.children) == 0 {
		return
	}
	m.rule.segmentAdd(m.children[0].Begin(), m.children[len(m.children)-1].End())
	for _, c := range m.children {
		c.Commit()
	}
}
