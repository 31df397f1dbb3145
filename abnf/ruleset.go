package abnf

import (
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Ruleset owns a set of rules and a case-insensitive name -> RuleID index.
// A ruleset is the unit of sharing: every rule created through one of its
// factory methods is owned by it for the ruleset's lifetime, and binary
// combinators refuse operands owned by a different ruleset.
type Ruleset struct {
	rules []*rule
	names map[string]RuleID
	empty RuleID

	log       hclog.Logger
	traceOn   bool
	maxRepeat int
}

// Option configures a Ruleset at construction time.
type Option func(*Ruleset)

// WithLogger attaches a structured logger used for trace output. Defaults
// to hclog.L().
func WithLogger(log hclog.Logger) Option {
	return func(rs *Ruleset) { rs.log = log }
}

// WithTrace turns on trace logging at Trace level: one line for every
// top-level Read, naming the rule, its kind, the start position and the
// outcome.
func WithTrace(on bool) Option {
	return func(rs *Ruleset) { rs.traceOn = on }
}

// WithMaxRepeat caps the effective upper bound of every repetition
// created on this ruleset, guarding against unbounded greedy growth on
// adversarial input: an unbounded repetition gets n as its maximum, and a
// bounded one whose maximum exceeds n is lowered to n. Zero or negative
// disables the cap.
func WithMaxRepeat(n int) Option {
	return func(rs *Ruleset) { rs.maxRepeat = n }
}

// NewRuleset creates an empty ruleset. Every ruleset carries one
// dedicated sentinel "empty rule", returned by Get for unknown names,
// which never matches and never produces segments.
func NewRuleset(opts ...Option) *Ruleset {
	rs := &Ruleset{
		names: map[string]RuleID{},
		log:   hclog.L(),
	}
	rs.empty = rs.newRule(KindEmpty)
	for _, o := range opts {
		o(rs)
	}
	return rs
}

func (rs *Ruleset) newRule(kind Kind) RuleID {
	r := &rule{rs: rs, id: int32(len(rs.rules)), kind: kind}
	rs.rules = append(rs.rules, r)
	return RuleID{rs: rs, idx: r.id}
}

func (rs *Ruleset) checkOwned(op string, id RuleID) error {
	if !id.valid() || id.rs != rs {
		return newInvalidArgument(op, "operand rule is not owned by this ruleset")
	}
	return nil
}

// Char creates a terminal that matches a single fixed byte.
func (rs *Ruleset) Char(c byte) RuleID {
	id := rs.newRule(KindChar)
	id.rec().ch = c
	return id
}

// StringCI creates a terminal that matches s under ASCII case folding. An
// empty string never matches.
func (rs *Ruleset) StringCI(s string) RuleID {
	id := rs.newRule(KindString)
	id.rec().str = s
	return id
}

// Range creates a terminal matching any byte in the inclusive range
// [lo,hi]. Constructed with hi := max(lo,hi).
func (rs *Ruleset) Range(lo, hi byte) RuleID {
	if hi < lo {
		lo, hi = hi, lo
	}
	id := rs.newRule(KindRange)
	r := id.rec()
	r.lo, r.hi = lo, hi
	return id
}

// Predicate creates a terminal matching any byte for which fn returns
// true. A nil fn is replaced with a predicate that matches nothing.
func (rs *Ruleset) Predicate(fn func(byte) bool) RuleID {
	if fn == nil {
		fn = func(byte) bool { return false }
	}
	id := rs.newRule(KindPredicate)
	id.rec().pred = fn
	return id
}

// CharSet creates a terminal matching any byte present in set. A nil/empty
// set matches nothing.
func (rs *Ruleset) CharSet(set string) RuleID {
	id := rs.newRule(KindCharSet)
	id.rec().set = set
	return id
}

// EndOfInput creates a rule that matches iff the input is exhausted. It
// never produces a segment.
func (rs *Ruleset) EndOfInput() RuleID {
	return rs.newRule(KindEOF)
}

// Concat creates a left-right sequencing combinator. Fails with
// InvalidArgumentError if either operand is owned by a different ruleset.
func (rs *Ruleset) Concat(left, right RuleID) (RuleID, error) {
	if err := rs.checkOwned("Concat", left); err != nil {
		return RuleID{}, err
	}
	if err := rs.checkOwned("Concat", right); err != nil {
		return RuleID{}, err
	}
	id := rs.newRule(KindConcat)
	r := id.rec()
	r.left, r.right = left, right
	return id, nil
}

// Alt creates an ordered binary alternation: left is tried before right.
// Fails with InvalidArgumentError if either operand is owned by a
// different ruleset.
func (rs *Ruleset) Alt(left, right RuleID) (RuleID, error) {
	if err := rs.checkOwned("Alt", left); err != nil {
		return RuleID{}, err
	}
	if err := rs.checkOwned("Alt", right); err != nil {
		return RuleID{}, err
	}
	id := rs.newRule(KindAlt)
	r := id.rec()
	r.left, r.right = left, right
	return id, nil
}

// Repeat creates a repetition of body with the given lower bound and no
// upper bound.
func (rs *Ruleset) Repeat(body RuleID, min int) (RuleID, error) {
	return rs.RepeatMinMax(body, min, Unbounded)
}

// RepeatMinMax creates a repetition of body matching between min and max
// occurrences inclusive (max == Unbounded for no upper bound). Fails with
// InvalidArgumentError if body is owned by a different ruleset.
func (rs *Ruleset) RepeatMinMax(body RuleID, min, max int) (RuleID, error) {
	if err := rs.checkOwned("Repeat", body); err != nil {
		return RuleID{}, err
	}
	if max == Unbounded {
		if rs.maxRepeat > 0 {
			max = rs.maxRepeat
		}
	} else if rs.maxRepeat > 0 && max > rs.maxRepeat {
		max = rs.maxRepeat
	}
	id := rs.newRule(KindRepeat)
	r := id.rec()
	r.body, r.min, r.max = body, min, max
	return id, nil
}

// Define binds name (lowercased) to id. Fails with InvalidArgumentError
// when id is not owned by this ruleset.
func (rs *Ruleset) Define(name string, id RuleID) error {
	if err := rs.checkOwned("Define", id); err != nil {
		return err
	}
	key := strings.ToLower(name)
	id.rec().name = key
	rs.names[key] = id
	return nil
}

// Defined reports whether name is bound in this ruleset.
func (rs *Ruleset) Defined(name string) bool {
	_, ok := rs.names[strings.ToLower(name)]
	return ok
}

// Get looks up name (case-insensitively) and returns the bound RuleID, or
// the ruleset's sentinel empty rule if name is unbound.
func (rs *Ruleset) Get(name string) RuleID {
	if id, ok := rs.names[strings.ToLower(name)]; ok {
		return id
	}
	return rs.empty
}

// Empty returns the ruleset's sentinel rule: it never matches and never
// produces segments.
func (rs *Ruleset) Empty() RuleID {
	return rs.empty
}

// Include deep-duplicates other's entire rule graph into rs, preserving
// sharing (two edges to the same source rule become two edges to the same
// duplicate), and merges other's name bindings, rewritten to point at the
// duplicates.
func (rs *Ruleset) Include(other *Ruleset) error {
	memo := map[int32]RuleID{}
	for name, id := range other.names {
		dup := duplicate(rs, id, memo)
		rs.names[name] = dup
		dup.rec().name = name
	}
	return nil
}

// duplicate walks the subgraph rooted at id, memoized by source rule id,
// constructing an equivalent rule owned by dst for every node visited
// exactly once.
func duplicate(dst *Ruleset, id RuleID, memo map[int32]RuleID) RuleID {
	if id.rs == dst {
		// Including into a ruleset that is itself: nothing to copy.
		return id
	}
	if dup, ok := memo[id.idx]; ok {
		return dup
	}
	src := id.rec()
	var dup RuleID
	switch src.kind {
	case KindEmpty:
		dup = dst.empty
	case KindEOF:
		dup = dst.EndOfInput()
	case KindChar:
		dup = dst.Char(src.ch)
	case KindString:
		dup = dst.StringCI(src.str)
	case KindPredicate:
		dup = dst.Predicate(src.pred)
	case KindRange:
		dup = dst.Range(src.lo, src.hi)
	case KindCharSet:
		dup = dst.CharSet(src.set)
	case KindAlt:
		memo[id.idx] = RuleID{} // placeholder to tolerate self-reference probing; overwritten below
		left := duplicate(dst, src.left, memo)
		right := duplicate(dst, src.right, memo)
		dup, _ = dst.Alt(left, right)
	case KindConcat:
		memo[id.idx] = RuleID{}
		left := duplicate(dst, src.left, memo)
		right := duplicate(dst, src.right, memo)
		dup, _ = dst.Concat(left, right)
	case KindRepeat:
		memo[id.idx] = RuleID{}
		body := duplicate(dst, src.body, memo)
		dup, _ = dst.RepeatMinMax(body, src.min, src.max)
	}
	memo[id.idx] = dup
	return dup
}
