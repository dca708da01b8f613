package ingest

import "strings"

// DefaultSeparators is the prioritized candidate list for delimited text.
var DefaultSeparators = []rune{',', ';', '\t'}

// FallbackSeparator is returned when detection cannot commit to a candidate.
const FallbackSeparator = ','

// DetectSeparator determines which candidate character delimits the given
// lines. A real delimiter produces the same out-of-quote occurrence count
// across well-formed rows, so the first candidate (in priority order) whose
// count is unchanged between two consecutive lines wins. The result is always
// a member of candidates or the fallback.
func DetectSeparator(lines []string, candidates []rune, fallback rune) rune {
	if len(lines) == 0 {
		return fallback
	}

	// Deduplicate candidates, preserving relative order, then keep only
	// those present in the first line.
	seen := make(map[rune]struct{}, len(candidates))
	var survivors []rune
	for _, c := range candidates {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		if strings.ContainsRune(lines[0], c) {
			survivors = append(survivors, c)
		}
	}

	if len(survivors) == 0 {
		return fallback
	}
	if len(survivors) == 1 {
		return survivors[0]
	}

	counts := make([][]int, len(lines))
	for i, line := range lines {
		counts[i] = make([]int, len(survivors))
		for j, c := range survivors {
			counts[i][j] = countOutsideQuotes(line, c)
		}
	}

	for i := 1; i < len(lines); i++ {
		for j, c := range survivors {
			if counts[i][j] == counts[i-1][j] {
				return c
			}
		}
	}
	return fallback
}

// countOutsideQuotes counts occurrences of sep outside double-quoted spans.
// Quote state toggles on every quote character, independent of escaping.
func countOutsideQuotes(line string, sep rune) int {
	count := 0
	inQuotes := false
	for _, ch := range line {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
		case ch == sep && !inQuotes:
			count++
		}
	}
	return count
}
