package uri

import (
	"sync"

	"github.com/clarete/abnfkit/abnf"
)

// grammar wires an RFC 2396 URI-reference grammar on top of the abnf
// engine. It is built once (process-wide) and reused by every Parse
// call, the same way abnf.Core() is.
//
//	URI-reference = [ scheme ":" ] [ "//" authority ] [ path ]
//	                [ "?" query ] [ "#" fragment ]
//	authority     = [ userinfo "@" ] host [ ":" port ]
//	path          = [ "/" ] segment *( "/" segment )
//	query         = qpair *( "&" qpair )
//	qpair         = qkey [ "=" qval ]
//
// This is a deliberately trimmed grammar: no opaque_part, no reg_name
// authority, no pct-encoding validation. It covers exactly what the
// field extraction in uri.go needs and nothing the original engine
// client (a spider crawling links) would not already see on the wire.
type grammar struct {
	rs *abnf.Ruleset

	top      abnf.RuleID
	scheme   abnf.RuleID
	userinfo abnf.RuleID
	host     abnf.RuleID
	port     abnf.RuleID
	abspath  abnf.RuleID
	segment  abnf.RuleID
	qpair    abnf.RuleID
	fragment abnf.RuleID
}

var (
	grammarOnce sync.Once
	theGrammar  *grammar
)

func getGrammar() *grammar {
	grammarOnce.Do(func() {
		theGrammar = buildGrammar()
	})
	return theGrammar
}

// isHostChar accepts the byte alphabet of a DNS hostname: letters,
// digits, "-" and ".".
func isHostChar(b byte) bool {
	if b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' {
		return true
	}
	return b == '-' || b == '.'
}

func isPrintableExcept(exclude string) func(byte) bool {
	return func(b byte) bool {
		if b <= 0x20 || b >= 0x7F {
			return false
		}
		for i := 0; i < len(exclude); i++ {
			if exclude[i] == b {
				return false
			}
		}
		return true
	}
}

func optional(rs *abnf.Ruleset, id abnf.RuleID) abnf.RuleID {
	opt, err := rs.RepeatMinMax(id, 0, 1)
	if err != nil {
		panic(err)
	}
	return opt
}

func concat2(rs *abnf.Ruleset, a, b abnf.RuleID) abnf.RuleID {
	id, err := rs.Concat(a, b)
	if err != nil {
		panic(err)
	}
	return id
}

func alt2(rs *abnf.Ruleset, a, b abnf.RuleID) abnf.RuleID {
	id, err := rs.Alt(a, b)
	if err != nil {
		panic(err)
	}
	return id
}

func repeat1(rs *abnf.Ruleset, body abnf.RuleID) abnf.RuleID {
	id, err := rs.Repeat(body, 1)
	if err != nil {
		panic(err)
	}
	return id
}

func buildGrammar() *grammar {
	rs := abnf.NewRuleset()
	if err := rs.Include(abnf.Core()); err != nil {
		panic(err)
	}
	alpha, digit := rs.Get("ALPHA"), rs.Get("DIGIT")

	// scheme = ALPHA *( ALPHA / DIGIT / "+" / "-" / "." )
	schemeTailChar := alt2(rs, alt2(rs, alpha, digit), rs.CharSet("+-."))
	schemeTail, err := rs.Repeat(schemeTailChar, 0)
	if err != nil {
		panic(err)
	}
	scheme := concat2(rs, alpha, schemeTail)
	_ = rs.Define("uri_scheme", scheme)
	schemeGroup := optional(rs, concat2(rs, scheme, rs.Char(':')))

	// authority = [ userinfo "@" ] host [ ":" port ]
	userinfoBody := repeat1(rs, rs.Predicate(isPrintableExcept("@/?#")))
	_ = rs.Define("uri_userinfo", userinfoBody)
	userinfoGroup := optional(rs, concat2(rs, userinfoBody, rs.Char('@')))

	hostBody := repeat1(rs, rs.Predicate(isHostChar))
	_ = rs.Define("uri_host", hostBody)

	portBody := repeat1(rs, digit)
	_ = rs.Define("uri_port", portBody)
	portGroup := optional(rs, concat2(rs, rs.Char(':'), portBody))

	authority := concat2(rs, concat2(rs, userinfoGroup, hostBody), portGroup)
	netPathGroup := optional(rs, concat2(rs, rs.StringCI("//"), authority))

	// abs-path = "/" segment *( "/" segment )
	segment := repeat1(rs, rs.Predicate(isPrintableExcept("/?#")))
	_ = rs.Define("uri_segment", segment)
	moreSegments, err := rs.Repeat(concat2(rs, rs.Char('/'), segment), 0)
	if err != nil {
		panic(err)
	}
	absSlash := rs.Char('/')
	_ = rs.Define("uri_abspath_marker", absSlash)
	// path = [ "/" ] segment *( "/" segment ) — covers both abs-path
	// (leading marker present) and rel-path (marker absent), so a
	// relative reference's path can still be merged by Resolve.
	pathCore := concat2(rs, concat2(rs, optional(rs, absSlash), segment), moreSegments)
	pathGroup := optional(rs, pathCore)

	// query = qpair *( "&" qpair ); qpair = qkey [ "=" qval ]
	//
	// qpair is named and carries the whole "key" or "key=value" text;
	// Parse splits on the first "=" rather than wiring separate named
	// rules for qkey/qval, since the engine only reports a rule's
	// committed text, not its position, and a split is simplest.
	qchar := rs.Predicate(isPrintableExcept("&=#"))
	qkey := repeat1(rs, qchar)
	qval := repeat1(rs, qchar)
	qpair := concat2(rs, qkey, optional(rs, concat2(rs, rs.Char('='), qval)))
	_ = rs.Define("uri_qpair", qpair)
	qpairTail, err := rs.Repeat(concat2(rs, rs.Char('&'), qpair), 0)
	if err != nil {
		panic(err)
	}
	query := concat2(rs, qpair, qpairTail)
	queryGroup := optional(rs, concat2(rs, rs.Char('?'), query))

	// fragment = *fchar
	fragment, err := rs.Repeat(rs.Predicate(isPrintableExcept("")), 0)
	if err != nil {
		panic(err)
	}
	_ = rs.Define("uri_fragment", fragment)
	fragGroup := optional(rs, concat2(rs, rs.Char('#'), fragment))

	top := concat2(rs, concat2(rs, concat2(rs, concat2(rs, schemeGroup, netPathGroup), pathGroup), queryGroup), fragGroup)
	_ = rs.Define("uri_reference", top)

	return &grammar{
		rs:       rs,
		top:      top,
		scheme:   scheme,
		userinfo: userinfoBody,
		host:     hostBody,
		port:     portBody,
		abspath:  absSlash,
		segment:  segment,
		qpair:    qpair,
		fragment: fragment,
	}
}
