package iis

import "strings"

// expandEnv replaces %NAME% references the way Windows does: names that
// lookup does not know are left untouched, and %% stays literal.
func expandEnv(s string, lookup func(string) (string, bool)) string {
	if !strings.Contains(s, "%") {
		return s
	}

	var b strings.Builder
	for {
		start := strings.IndexByte(s, '%')
		if start < 0 {
			b.WriteString(s)
			break
		}
		end := strings.IndexByte(s[start+1:], '%')
		if end < 0 {
			b.WriteString(s)
			break
		}
		end += start + 1

		name := s[start+1 : end]
		b.WriteString(s[:start])
		if val, ok := lookup(name); ok && name != "" {
			b.WriteString(val)
			s = s[end+1:]
			continue
		}
		// Unknown: emit the opening % and rescan from the closing one.
		b.WriteString(s[start:end])
		s = s[end:]
	}
	return b.String()
}
