package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectSeparatorSingleSurvivor(t *testing.T) {
	lines := []string{"a,b,c", "1,2,3"}
	assert.Equal(t, ',', DetectSeparator(lines, DefaultSeparators, FallbackSeparator))

	lines = []string{"a;b;c", "1;2;3"}
	assert.Equal(t, ';', DetectSeparator(lines, DefaultSeparators, FallbackSeparator))

	lines = []string{"a\tb", "1\t2"}
	assert.Equal(t, '\t', DetectSeparator(lines, DefaultSeparators, FallbackSeparator))
}

func TestDetectSeparatorNoCandidateInFirstLine(t *testing.T) {
	lines := []string{"abc", "d,e,f"}
	assert.Equal(t, ',', DetectSeparator(lines, DefaultSeparators, FallbackSeparator))
}

func TestDetectSeparatorStableCountWins(t *testing.T) {
	// Both , and ; survive the first line; the semicolon count is the one
	// that stays constant across consecutive lines.
	lines := []string{"a;b,,c", "d;e,f", "g;h,i"}
	assert.Equal(t, ';', DetectSeparator(lines, DefaultSeparators, FallbackSeparator))
}

func TestDetectSeparatorPriorityBreaksTies(t *testing.T) {
	// Both candidates keep a stable count; the higher-priority comma wins.
	lines := []string{"a,b;c", "d,e;f"}
	assert.Equal(t, ',', DetectSeparator(lines, DefaultSeparators, FallbackSeparator))
}

func TestDetectSeparatorIgnoresQuotedSpans(t *testing.T) {
	// The commas inside quotes never count, so the comma count is 0 on
	// every line while the semicolon count is stable at 1. Priority order
	// still applies: comma's 0 == 0 matches first.
	lines := []string{`"x,y";b`, `"p,q";d`}
	assert.Equal(t, ',', DetectSeparator(lines, DefaultSeparators, FallbackSeparator))
}

func TestDetectSeparatorFallbackWhenNeverStable(t *testing.T) {
	// A single line with two surviving candidates has no consecutive pair
	// to compare.
	lines := []string{"a,b;c"}
	assert.Equal(t, ',', DetectSeparator(lines, []rune{';', ','}, ','))

	// Counts keep changing on every line for both candidates.
	lines = []string{"a,b;c", "a,,b;;c", "a,,,b;;;c"}
	assert.Equal(t, '\t', DetectSeparator(lines, []rune{',', ';'}, '\t'))
}

func TestDetectSeparatorDeduplicatesCandidates(t *testing.T) {
	lines := []string{"a;b", "c;d"}
	got := DetectSeparator(lines, []rune{';', ';', ';'}, ',')
	assert.Equal(t, ';', got)
}

func TestDetectSeparatorResultIsAlwaysCandidateOrFallback(t *testing.T) {
	lineSets := [][]string{
		{},
		{"plain"},
		{"a,b", "c;d", "e\tf"},
		{`"a;b",c`, "d,e"},
	}
	for _, lines := range lineSets {
		got := DetectSeparator(lines, DefaultSeparators, FallbackSeparator)
		member := got == FallbackSeparator
		for _, c := range DefaultSeparators {
			if got == c {
				member = true
			}
		}
		assert.True(t, member, "detected %q for %v", got, lines)
	}
}

func TestCountOutsideQuotes(t *testing.T) {
	assert.Equal(t, 2, countOutsideQuotes("a,b,c", ','))
	assert.Equal(t, 1, countOutsideQuotes(`a,"b,c"`, ','))
	assert.Equal(t, 0, countOutsideQuotes(`"a,b,c"`, ','))
	// The quote flag toggles on every quote, even unbalanced ones.
	assert.Equal(t, 0, countOutsideQuotes(`"a,b`, ','))
}
