package abnf

import (
	"io"

	"github.com/clarete/abnfkit/internal/streamio"
)

// Kind tags the ten rule shapes the engine knows how to match. The
// matching engine is built as a dispatch on Kind rather than a type
// hierarchy: one Rule struct, one Matcher struct per Kind.
type Kind int

const (
	KindEmpty Kind = iota
	KindEOF
	KindChar
	KindString
	KindPredicate
	KindRange
	KindCharSet
	KindAlt
	KindConcat
	KindRepeat
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindEOF:
		return "eof"
	case KindChar:
		return "char"
	case KindString:
		return "string"
	case KindPredicate:
		return "predicate"
	case KindRange:
		return "range"
	case KindCharSet:
		return "charset"
	case KindAlt:
		return "alt"
	case KindConcat:
		return "concat"
	case KindRepeat:
		return "repeat"
	default:
		return "unknown"
	}
}

// Unbounded is the sentinel repetition upper bound meaning "no maximum".
const Unbounded = -1

// rule is the immutable (post-construction) description of one grammar
// node, owned by exactly one Ruleset. Children are referenced by RuleID,
// not by pointer, so the graph survives duplication (include) as a plain
// map rewrite.
type rule struct {
	rs   *Ruleset
	id   int32
	kind Kind
	name string

	// terminal payloads
	ch   byte
	str  string
	lo   byte
	hi   byte
	pred func(byte) bool
	set  string

	// combinator payloads
	left, right RuleID
	body        RuleID
	min, max    int

	// parse-lifetime state, reset by Clear
	input    *streamio.Input
	segments []Segment
}

func (r *rule) clear(seen map[int32]bool) {
	if seen[r.id] {
		return
	}
	seen[r.id] = true
	r.input = nil
	r.segments = nil
	switch r.kind {
	case KindAlt, KindConcat:
		r.left.rec().clear(seen)
		r.right.rec().clear(seen)
	case KindRepeat:
		r.body.rec().clear(seen)
	}
}

func (r *rule) bindInput(in *streamio.Input, seen map[int32]bool) {
	if seen[r.id] {
		return
	}
	seen[r.id] = true
	r.input = in
	switch r.kind {
	case KindAlt, KindConcat:
		r.left.rec().bindInput(in, seen)
		r.right.rec().bindInput(in, seen)
	case KindRepeat:
		r.body.rec().bindInput(in, seen)
	}
}

// segmentAdd is the only way a matcher may append to a rule's segment
// list; it enforces that empty spans are never recorded.
func (r *rule) segmentAdd(begin, end int64) {
	if end <= begin {
		return
	}
	r.segments = append(r.segments, Segment{Begin: begin, End: end})
}

// RuleID addresses a rule owned by a Ruleset. It is a small value type
// carrying its owner so combinator constructors can reject operands that
// belong to a different Ruleset.
type RuleID struct {
	rs  *Ruleset
	idx int32
}

func (id RuleID) rec() *rule {
	return id.rs.rules[id.idx]
}

// Ruleset returns the ruleset that owns this rule.
func (id RuleID) Ruleset() *Ruleset {
	return id.rs
}

// Kind returns the rule's kind tag.
func (id RuleID) Kind() Kind {
	return id.rec().kind
}

// Name returns the name this rule was last Define'd under, or "" if none.
func (id RuleID) Name() string {
	return id.rec().name
}

func (id RuleID) valid() bool {
	return id.rs != nil
}

func sameRuleset(a, b RuleID) bool {
	return a.rs == b.rs
}

// Read binds input through this rule's subgraph, attempts one top-level
// match, commits its segments on success, and otherwise rewinds input to
// wherever the cursor was when Read was called.
func (id RuleID) Read(in io.ReadSeeker) (bool, error) {
	input := streamio.New(in)
	r := id.rec()
	r.bindInput(input, map[int32]bool{})

	start := input.Pos()
	m := newMatcher(id)
	ok := m.Match(input)
	id.rs.trace(traceEvent{op: "read", rule: r.name, kind: r.kind, pos: start, ok: ok})
	if ok {
		m.Commit()
		return true, nil
	}
	input.SeekTo(start)
	return false, nil
}

// Clear recursively resets this rule's subgraph: no bound input, no
// recorded segments. It is idempotent.
func (id RuleID) Clear() {
	id.rec().clear(map[int32]bool{})
}

// ReadCount returns the number of segments committed to this rule (and
// only this rule) during the last Read.
func (id RuleID) ReadCount() int {
	return len(id.rec().segments)
}

// Write copies the i-th committed segment of this rule to out. It is a
// no-op if no input is bound, or i is out of range.
func (id RuleID) Write(i int, out io.Writer) error {
	r := id.rec()
	if r.input == nil || i < 0 || i >= len(r.segments) {
		return nil
	}
	return r.segments[i].writeTo(r.input, out)
}

// Segment returns the i-th committed segment's bytes as a string, for
// callers that would rather not supply an io.Writer.
func (id RuleID) Segment(i int) (string, error) {
	r := id.rec()
	if r.input == nil || i < 0 || i >= len(r.segments) {
		return "", nil
	}
	data, err := r.input.Slice(r.segments[i].Begin, r.segments[i].End)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
