package ingest

import "strings"

// TokenizeLine splits one source line into field values, honoring
// double-quoted spans. The separator is appended internally as a sentinel
// terminator so the last field is always flushed. Quoted fields may contain
// the separator; "" inside a field renders as one literal quote; a closing
// quote immediately before a delimiter is structural and emits nothing. The
// scan is best-effort over malformed quoting and always terminates with a
// definite value list.
func TokenizeLine(line string, sep rune) []string {
	chars := append([]rune(line), sep)

	values := make([]string, 0, 8)
	var field strings.Builder
	inQuotes := false

	for i, ch := range chars {
		switch {
		case ch == sep && !inQuotes:
			values = append(values, field.String())
			field.Reset()
		case ch == sep:
			// Quoted fields keep the separator as literal content.
			field.WriteRune(ch)
		case ch == '"':
			inQuotes = !inQuotes
			if !inQuotes && i+1 < len(chars) && chars[i+1] == sep {
				// Closing quote right before a delimiter is
				// structural, not data.
				continue
			}
			if i > 0 && chars[i-1] == '"' {
				field.WriteRune('"')
			}
		default:
			field.WriteRune(ch)
		}
	}
	return values
}
