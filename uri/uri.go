// Package uri parses and renders Uniform Resource Identifiers using a
// grammar built on top of the abnf engine.
package uri

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// QueryPair is one key/value entry of a URI's query component. Order is
// significant: the query is a multimap, not a set, and duplicate keys
// are preserved in the order they were added or parsed.
type QueryPair struct {
	Key   string
	Value string
}

// URI holds the fields extracted from a parsed URI-reference. Port is
// zero when unset. Path entries are rendered with "/" as a separator,
// except a literal "/" entry (the absolute-path marker) which is never
// itself prefixed with a separator — see Write.
type URI struct {
	Scheme   string
	Userinfo string
	Host     string
	Port     uint64
	Path     []string
	Query    []QueryPair
	Fragment string
}

// Relative reports whether this URI has no scheme, per RFC 2396's
// definition of a relative reference.
func (u *URI) Relative() bool {
	return u.Scheme == ""
}

// Parse reads a URI-reference from in and returns the populated fields.
// A nil URI with ok=false means the grammar did not match at all; a
// non-nil URI with ok=true reflects whatever components were present.
func Parse(in io.ReadSeeker) (*URI, bool, error) {
	g := getGrammar()
	g.top.Clear()

	ok, err := g.top.Read(in)
	if err != nil || !ok {
		return nil, false, err
	}

	u := &URI{}
	if g.scheme.ReadCount() > 0 {
		u.Scheme, err = g.scheme.Segment(0)
		if err != nil {
			return nil, false, err
		}
	}
	if g.userinfo.ReadCount() > 0 {
		u.Userinfo, err = g.userinfo.Segment(0)
		if err != nil {
			return nil, false, err
		}
	}
	if g.host.ReadCount() > 0 {
		u.Host, err = g.host.Segment(0)
		if err != nil {
			return nil, false, err
		}
	}
	if g.port.ReadCount() > 0 {
		portStr, err := g.port.Segment(0)
		if err != nil {
			return nil, false, err
		}
		u.Port, err = strconv.ParseUint(portStr, 10, 32)
		if err != nil {
			return nil, false, err
		}
	}
	if g.abspath.ReadCount() > 0 {
		u.Path = append(u.Path, "/")
	}
	for i := 0; i < g.segment.ReadCount(); i++ {
		s, err := g.segment.Segment(i)
		if err != nil {
			return nil, false, err
		}
		u.Path = append(u.Path, s)
	}
	for i := 0; i < g.qpair.ReadCount(); i++ {
		pair, err := g.qpair.Segment(i)
		if err != nil {
			return nil, false, err
		}
		key, val, _ := strings.Cut(pair, "=")
		u.Query = append(u.Query, QueryPair{Key: key, Value: val})
	}
	if g.fragment.ReadCount() > 0 {
		u.Fragment, err = g.fragment.Segment(0)
		if err != nil {
			return nil, false, err
		}
	}
	return u, true, nil
}

// Write renders u in canonical form to out:
//
//	scheme ":"
//	"//" [ userinfo "@" ] host [ ":" port ]   (if userinfo or host set)
//	path segments, "/" separated
//	"?" query
//	"#" fragment
func (u *URI) Write(out io.Writer) error {
	var b strings.Builder

	if u.Scheme != "" {
		b.WriteString(u.Scheme)
		b.WriteByte(':')
	}
	if u.Userinfo != "" || u.Host != "" {
		b.WriteString("//")
		if u.Userinfo != "" {
			b.WriteString(u.Userinfo)
			b.WriteByte('@')
		}
		b.WriteString(u.Host)
		if u.Port != 0 {
			b.WriteByte(':')
			fmt.Fprintf(&b, "%d", u.Port)
		}
	}
	for i, seg := range u.Path {
		needSep := i > 0 && seg != "/" && u.Path[i-1] != "/"
		if needSep {
			b.WriteByte('/')
		}
		b.WriteString(seg)
	}
	if len(u.Query) > 0 {
		b.WriteByte('?')
		for i, q := range u.Query {
			if i > 0 {
				b.WriteByte('&')
			}
			b.WriteString(q.Key)
			if q.Value != "" {
				b.WriteByte('=')
				b.WriteString(q.Value)
			}
		}
	}
	if u.Fragment != "" {
		b.WriteByte('#')
		b.WriteString(u.Fragment)
	}

	_, err := io.WriteString(out, b.String())
	return err
}

// String renders u with Write into an in-memory buffer.
func (u *URI) String() string {
	var b strings.Builder
	_ = u.Write(&b)
	return b.String()
}

// AddQuery appends a new key/value entry to the query multimap, even if
// key is already present.
func (u *URI) AddQuery(key, value string) {
	u.Query = append(u.Query, QueryPair{Key: key, Value: value})
}

// SetQuery replaces the value of the first existing entry for key, or
// appends a new entry if key is not present; later entries for the same
// key keep their values. Order of the remaining
// entries is preserved.
func (u *URI) SetQuery(key, value string) {
	for i := range u.Query {
		if u.Query[i].Key == key {
			u.Query[i].Value = value
			return
		}
	}
	u.AddQuery(key, value)
}

// Resolve computes the absolute URI obtained by resolving u as a
// reference against base, following RFC 2396 §5.2's merge algorithm:
// components absent from u are inherited from base; a present scheme or
// authority makes u absolute on its own; a relative path is merged onto
// base's directory.
func (u *URI) Resolve(base *URI) *URI {
	if u.Scheme != "" {
		out := *u
		return &out
	}

	out := *base
	out.Fragment = u.Fragment
	out.Query = append([]QueryPair(nil), u.Query...)

	if u.Userinfo != "" || u.Host != "" {
		out.Userinfo = u.Userinfo
		out.Host = u.Host
		out.Port = u.Port
		out.Path = u.Path
		return &out
	}

	if len(u.Path) == 0 {
		out.Path = base.Path
		if len(u.Query) == 0 {
			out.Query = append([]QueryPair(nil), base.Query...)
		}
		return &out
	}

	if len(u.Path) > 0 && u.Path[0] == "/" {
		out.Path = u.Path
		return &out
	}

	out.Path = mergePath(base.Path, u.Path)
	return &out
}

// mergePath merges a relative path onto the directory of basePath,
// collapsing "." and ".." segments per RFC 2396 §5.2 step 6.
func mergePath(basePath, relPath []string) []string {
	merged := append([]string(nil), basePath...)
	if len(merged) > 0 {
		merged = merged[:len(merged)-1] // drop base's last segment (its "file" part)
	}
	merged = append(merged, relPath...)

	var out []string
	for _, seg := range merged {
		switch seg {
		case "/":
			out = append(out, seg)
		case ".":
			// current directory: contributes nothing
		case "..":
			if len(out) > 0 && out[len(out)-1] != "/" && out[len(out)-1] != ".." {
				out = out[:len(out)-1]
			} else {
				out = append(out, seg)
			}
		default:
			out = append(out, seg)
		}
	}
	return out
}
