package uri_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clarete/abnfkit/uri"
)

// Scenario (e): full URI parse and canonical round-trip.
func TestParseFullURI(t *testing.T) {
	const in = "http://user@host.example:8080/a/b?x=1&y#frag "

	u, ok, err := uri.Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "http", u.Scheme)
	assert.Equal(t, "user", u.Userinfo)
	assert.Equal(t, "host.example", u.Host)
	assert.EqualValues(t, 8080, u.Port)
	assert.Equal(t, []string{"/", "a", "b"}, u.Path)
	require.Len(t, u.Query, 2)
	assert.Equal(t, uri.QueryPair{Key: "x", Value: "1"}, u.Query[0])
	assert.Equal(t, uri.QueryPair{Key: "y", Value: ""}, u.Query[1])
	assert.Equal(t, "frag", u.Fragment)

	assert.Equal(t, "http://user@host.example:8080/a/b?x=1&y#frag", u.String())
}

func TestParseSchemeOnly(t *testing.T) {
	u, ok, err := uri.Parse(strings.NewReader("mailto:"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "mailto", u.Scheme)
	assert.False(t, u.Relative())
}

func TestParseRelativePath(t *testing.T) {
	u, ok, err := uri.Parse(strings.NewReader("/a/b/c"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, u.Relative())
	assert.Equal(t, []string{"/", "a", "b", "c"}, u.Path)
}

func TestWriteOmitsUnsetComponents(t *testing.T) {
	u := &uri.URI{Scheme: "http", Host: "example.com", Path: []string{"/", "x"}}
	assert.Equal(t, "http://example.com/x", u.String())
}

func TestAddQueryAndSetQuery(t *testing.T) {
	u := &uri.URI{Scheme: "http", Host: "example.com"}
	u.AddQuery("a", "1")
	u.AddQuery("a", "2")
	u.SetQuery("a", "3")

	require.Len(t, u.Query, 2)
	assert.Equal(t, "3", u.Query[0].Value, "SetQuery replaces the first existing entry")
	assert.Equal(t, "2", u.Query[1].Value)

	u.SetQuery("b", "new")
	require.Len(t, u.Query, 3)
	assert.Equal(t, "b", u.Query[2].Key)
}

func TestResolveRelativePathAgainstBase(t *testing.T) {
	base, ok, err := uri.Parse(strings.NewReader("http://example.com/a/b/c"))
	require.NoError(t, err)
	require.True(t, ok)

	ref, ok, err := uri.Parse(strings.NewReader("d/e"))
	require.NoError(t, err)
	require.True(t, ok)

	resolved := ref.Resolve(base)
	assert.Equal(t, "http", resolved.Scheme)
	assert.Equal(t, "example.com", resolved.Host)
	assert.Equal(t, "http://example.com/a/b/d/e", resolved.String())
}

func TestResolveAbsolutePathAgainstBase(t *testing.T) {
	base, _, _ := uri.Parse(strings.NewReader("http://example.com/a/b/c"))
	ref, _, _ := uri.Parse(strings.NewReader("/z"))

	resolved := ref.Resolve(base)
	assert.Equal(t, "http://example.com/z", resolved.String())
}

func TestResolveReferenceWithOwnScheme(t *testing.T) {
	base, _, _ := uri.Parse(strings.NewReader("http://example.com/a"))
	ref, _, _ := uri.Parse(strings.NewReader("ftp://other.example/file"))

	resolved := ref.Resolve(base)
	assert.Equal(t, "ftp://other.example/file", resolved.String())
}
