package abnf_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clarete/abnfkit/abnf"
)

func TestCoreIsASingleton(t *testing.T) {
	assert.Same(t, abnf.Core(), abnf.Core())
}

func TestCoreDefinesEveryAppendixB1Rule(t *testing.T) {
	rs := abnf.Core()
	for _, name := range []string{
		"ALPHA", "BIT", "CHAR", "CR", "CRLF", "CTL", "DIGIT", "DQUOTE",
		"HEXDIG", "HTAB", "LF", "LWSP", "OCTET", "SP", "VCHAR", "WSP",
	} {
		assert.True(t, rs.Defined(name), "%s should be defined in Core()", name)
	}
}

// Scenario (f): RFC 5234 core rule round-trip.
func TestCoreHexdigMatchesBothCases(t *testing.T) {
	rs := abnf.Core()
	hexdig := rs.Get("HEXDIG")

	for _, in := range []string{"9", "a", "F"} {
		hexdig.Clear()
		ok, err := hexdig.Read(strings.NewReader(in))
		require.NoError(t, err)
		assert.True(t, ok, "%q should match HEXDIG", in)
	}

	hexdig.Clear()
	ok, _ := hexdig.Read(strings.NewReader("g"))
	assert.False(t, ok)
}

func TestCoreCrlfRequiresBothBytes(t *testing.T) {
	rs := abnf.Core()
	crlf := rs.Get("CRLF")

	crlf.Clear()
	ok, err := crlf.Read(strings.NewReader("\r\n"))
	require.NoError(t, err)
	require.True(t, ok)

	var out bytes.Buffer
	require.NoError(t, crlf.Write(0, &out))
	assert.Equal(t, "\r\n", out.String())

	crlf.Clear()
	ok, _ = crlf.Read(strings.NewReader("\r"))
	assert.False(t, ok)
}

func TestCoreLwspAcceptsMixedFolding(t *testing.T) {
	rs := abnf.Core()
	lwsp := rs.Get("LWSP")

	lwsp.Clear()
	ok, err := lwsp.Read(strings.NewReader(" \t\r\n \t"))
	require.NoError(t, err)
	require.True(t, ok)

	var out bytes.Buffer
	require.NoError(t, lwsp.Write(0, &out))
	assert.Equal(t, " \t\r\n \t", out.String())
}

func TestCoreAlphaRejectsDigits(t *testing.T) {
	rs := abnf.Core()
	alpha := rs.Get("ALPHA")

	alpha.Clear()
	ok, _ := alpha.Read(strings.NewReader("5"))
	assert.False(t, ok)
}
