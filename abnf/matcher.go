package abnf

import "github.com/clarete/abnfkit/internal/streamio"

// Matcher is the transient, per-parse evaluator attached to one rule
// occurrence. The driving protocol is the same for every kind: Match
// attempts the next candidate starting at the input's current cursor,
// Mismatch demands a different one on the next Match call, and Commit
// records the last successful span (and recurses into children).
type Matcher interface {
	Match(in *streamio.Input) bool
	Mismatch()
	Commit()
	Available() bool
	Begin() int64
	End() int64
}

// base holds the bookkeeping every matcher kind shares: the rule it will
// commit to, and the last attempt's outcome. A matcher starts out
// matched=false, available=true.
type base struct {
	rule      *rule
	matched   bool
	available bool
	begin     int64
	end       int64
}

func newBase(r *rule) base {
	return base{rule: r, available: true}
}

func (b *base) Mismatch()       { b.matched = false }
func (b *base) Available() bool { return b.available }
func (b *base) Begin() int64    { return b.begin }
func (b *base) End() int64      { return b.end }

// leafCommit is shared by every matcher with no children: it records the
// last attempt's span on its rule iff it matched and was non-empty.
func (b *base) leafCommit() {
	if b.matched {
		b.rule.segmentAdd(b.begin, b.end)
	}
}

// attempt implements the single-shot match protocol shared by every
// terminal and the end-of-input rule (§4.3): once matched, replay by
// seeking to the recorded end; otherwise, if still available, run try
// once and never offer a second variant at the same position.
func (b *base) attempt(in *streamio.Input, try func() bool) bool {
	if b.matched {
		in.SeekTo(b.end)
		return true
	}
	if !b.available {
		return false
	}
	b.begin = in.Pos()
	b.matched = try()
	b.end = in.Pos()
	b.available = false
	return b.matched
}

// newMatcher builds a matcher isomorphic to the rule subgraph rooted at
// id, dispatching on its Kind.
func newMatcher(id RuleID) Matcher {
	r := id.rec()
	switch r.kind {
	case KindEmpty:
		return &emptyMatcher{base: newBase(r)}
	case KindEOF:
		return &eofMatcher{base: newBase(r)}
	case KindChar:
		return &charMatcher{base: newBase(r), ch: r.ch}
	case KindString:
		return &stringMatcher{base: newBase(r), str: r.str}
	case KindPredicate:
		return &predicateMatcher{base: newBase(r), pred: r.pred}
	case KindRange:
		return &rangeMatcher{base: newBase(r), lo: r.lo, hi: r.hi}
	case KindCharSet:
		return &charsetMatcher{base: newBase(r), set: r.set}
	case KindAlt:
		return &altMatcher{
			base:   newBase(r),
			leftM:  newMatcher(r.left),
			rightM: newMatcher(r.right),
		}
	case KindConcat:
		return &concatMatcher{
			base:    newBase(r),
			rs:      r.rs,
			leftID:  r.left,
			rightID: r.right,
		}
	case KindRepeat:
		return &repeatMatcher{
			base:   newBase(r),
			rs:     r.rs,
			bodyID: r.body,
			min:    r.min,
			max:    r.max,
		}
	default:
		return &emptyMatcher{base: newBase(r)}
	}
}
