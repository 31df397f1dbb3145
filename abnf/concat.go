package abnf

import "github.com/clarete/abnfkit/internal/streamio"

// concatMatcher implements left-right sequencing with backtrack into
// left on right's failure. Right is rebuilt from scratch every time left
// produces a new variant, since a new left span means a new starting
// position for right.
type concatMatcher struct {
	base
	rs              *Ruleset
	leftID, rightID RuleID
	leftM, rightM   Matcher
}

func (m *concatMatcher) Match(in *streamio.Input) bool {
	if m.matched {
		in.SeekTo(m.end)
		return true
	}
	if !m.available {
		return false
	}

	first := m.leftM == nil
	if first {
		m.begin = in.Pos()
		m.leftM = newMatcher(m.leftID)
	} else {
		// Demand a different overall match: try advancing right first;
		// the loop below falls back to a new left variant once right is
		// exhausted.
		m.rightM.Mismatch()
	}

	for {
		in.SeekTo(m.begin)

		if !first && !m.rightM.Available() {
			if !m.leftM.Available() {
				m.matched, m.available = false, false
				return false
			}
			m.leftM.Mismatch()
			m.rightM = nil
		}

		if !m.leftM.Match(in) {
			m.matched, m.available = false, false
			return false
		}

		if m.rightM == nil {
			m.rightM = newMatcher(m.rightID)
		}
		first = false

		if m.rightM.Match(in) {
			m.end = in.Pos()
			m.matched = true
			m.available = m.leftM.Available() || m.rightM.Available()
			return true
		}
	}
}

// Commit records [left.Begin(), right.End()) on this rule and commits
// both children. The engine never commits unless the whole concatenation
// succeeded, so a left-only partial match never produces output.
func (m *concatMatcher) Commit() {
	if !m.matched {
		return
	}
	m.rule.segmentAdd(m.leftM.Begin(), m.rightM.End())
	m.leftM.Commit()
	m.rightM.Commit()
}
