package abnf_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clarete/abnfkit/abnf"
)

// Scenario (c): repetition 2..4 of DIGIT, greedy.
func TestRepetitionGreedyBounded(t *testing.T) {
	rs := abnf.NewRuleset()
	digit := rs.Range('0', '9')
	rep, err := rs.RepeatMinMax(digit, 2, 4)
	require.NoError(t, err)

	input := strings.NewReader("12345")
	ok, err := rep.Read(input)
	require.NoError(t, err)
	require.True(t, ok)

	var out bytes.Buffer
	require.NoError(t, rep.Write(0, &out))
	assert.Equal(t, "1234", out.String())

	rest, _ := readAll(input)
	assert.Equal(t, "5", rest)
}

func TestRepetitionBelowMinFails(t *testing.T) {
	rs := abnf.NewRuleset()
	digit := rs.Range('0', '9')
	rep, err := rs.RepeatMinMax(digit, 3, 4)
	require.NoError(t, err)

	ok, err := rep.Read(strings.NewReader("12x"))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, rep.ReadCount())
}

func TestRepetitionZeroMinMatchesEmpty(t *testing.T) {
	rs := abnf.NewRuleset()
	digit := rs.Range('0', '9')
	rep, err := rs.Repeat(digit, 0)
	require.NoError(t, err)

	ok, err := rep.Read(strings.NewReader("abc"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 0, rep.ReadCount(), "empty matches are never committed")
}

func TestRepetitionUnbounded(t *testing.T) {
	rs := abnf.NewRuleset()
	digit := rs.Range('0', '9')
	rep, err := rs.Repeat(digit, 1)
	require.NoError(t, err)

	ok, err := rep.Read(strings.NewReader("123456789x"))
	require.NoError(t, err)
	require.True(t, ok)

	var out bytes.Buffer
	require.NoError(t, rep.Write(0, &out))
	assert.Equal(t, "123456789", out.String())
}

// Scenario (d): concatenation with shrink-on-right-failure backtracking
// through a repetition.
func TestConcatBacktracksThroughRepetition(t *testing.T) {
	rs := abnf.NewRuleset()
	digit := rs.Range('0', '9')
	oneOrMoreDigits, err := rs.Repeat(digit, 1)
	require.NoError(t, err)
	five := rs.Char('5')
	seq, err := rs.Concat(oneOrMoreDigits, five)
	require.NoError(t, err)

	ok, err := seq.Read(strings.NewReader("12345"))
	require.NoError(t, err)
	require.True(t, ok)

	var out bytes.Buffer
	require.NoError(t, seq.Write(0, &out))
	assert.Equal(t, "12345", out.String())

	// The repeated body should have shrunk to "1234", releasing "5" for
	// the trailing literal.
	require.Equal(t, 4, digit.ReadCount())
}

func readAll(r *strings.Reader) (string, error) {
	buf := make([]byte, r.Len())
	n, err := r.Read(buf)
	return string(buf[:n]), err
}
