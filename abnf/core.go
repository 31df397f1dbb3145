package abnf

import "sync"

var (
	coreOnce sync.Once
	coreRS   *Ruleset
)

// Core returns the process-wide ruleset defining every core rule of
// RFC 5234 Appendix B.1, with the conventional definitions:
//
//	ALPHA, BIT, CHAR, CR, CRLF, CTL, DIGIT, DQUOTE, HEXDIG, HTAB, LF,
//	LWSP, OCTET, SP, VCHAR, WSP
//
// It is built on first access and is effectively immutable afterward;
// first-time initialization is synchronized with sync.Once.
func Core() *Ruleset {
	coreOnce.Do(func() {
		coreRS = buildCore()
	})
	return coreRS
}

func buildCore() *Ruleset {
	rs := NewRuleset()

	def := func(name string, id RuleID) RuleID {
		_ = rs.Define(name, id)
		return id
	}
	must := func(id RuleID, err error) RuleID {
		if err != nil {
			panic(err)
		}
		return id
	}

	def("ALPHA", must(rs.Alt(rs.Range(0x41, 0x5A), rs.Range(0x61, 0x7A))))
	def("BIT", must(rs.Alt(rs.Char('0'), rs.Char('1'))))
	def("CHAR", rs.Range(0x01, 0x7F))
	cr := def("CR", rs.Char(0x0D))
	lf := def("LF", rs.Char(0x0A))
	crlf := def("CRLF", must(rs.Concat(cr, lf)))
	def("CTL", must(rs.Alt(rs.Range(0x00, 0x1F), rs.Char(0x7F))))
	digit := def("DIGIT", rs.Range(0x30, 0x39))
	def("DQUOTE", rs.Char(0x22))
	def("HEXDIG", must(rs.Alt(digit, rs.CharSet("ABCDEFabcdef"))))
	htab := def("HTAB", rs.Char(0x09))
	def("OCTET", rs.Range(0x00, 0xFF))
	sp := def("SP", rs.Char(0x20))
	def("VCHAR", rs.Range(0x21, 0x7E))
	wsp := def("WSP", must(rs.Alt(sp, htab)))

	// LWSP = *(WSP / CRLF WSP)
	crlfWSP := must(rs.Concat(crlf, wsp))
	wspOrCrlfWSP := must(rs.Alt(wsp, crlfWSP))
	def("LWSP", must(rs.Repeat(wspOrCrlfWSP, 0)))

	return rs
}
