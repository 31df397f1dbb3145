package abnf

// traceEvent describes one observable step of a match attempt, emitted to
// the ruleset's logger at Trace level when tracing is enabled. Mirrors
// the good/bad hooks a hand-rolled debug printer would use, but through a
// structured logger instead of fmt.Printf.
type traceEvent struct {
	op   string
	rule string
	kind Kind
	pos  int64
	ok   bool
}

func (rs *Ruleset) trace(ev traceEvent) {
	if !rs.traceOn {
		return
	}
	name := ev.rule
	if name == "" {
		name = "<anon>"
	}
	rs.log.Trace("abnf match", "op", ev.op, "rule", name, "kind", ev.kind.String(), "pos", ev.pos, "matched", ev.ok)
}
