package report

import "strings"

const (
	openDelim  = "{{"
	closeDelim = "}}"
)

// Placeholders maps a placeholder name to the function producing its value.
// Values are computed on first use and reused for later occurrences.
type Placeholders map[string]func() string

// Apply replaces every recognized {{NAME}} token in a single left-to-right
// pass. Substituted values are never rescanned, and unknown tokens are
// copied through unchanged.
func (p Placeholders) Apply(tmpl string) string {
	memo := make(map[string]string, len(p))
	var b strings.Builder
	b.Grow(len(tmpl))

	rest := tmpl
	for {
		start := strings.Index(rest, openDelim)
		if start < 0 {
			b.WriteString(rest)
			return b.String()
		}
		end := strings.Index(rest[start+len(openDelim):], closeDelim)
		if end < 0 {
			b.WriteString(rest)
			return b.String()
		}
		nameEnd := start + len(openDelim) + end
		name := rest[start+len(openDelim) : nameEnd]

		b.WriteString(rest[:start])
		if value, ok := p.value(name, memo); ok {
			b.WriteString(value)
			rest = rest[nameEnd+len(closeDelim):]
			continue
		}
		// Keep the opening braces and resume right after them, so a token
		// nested inside an unknown one is still found.
		b.WriteString(openDelim)
		rest = rest[start+len(openDelim):]
	}
}

func (p Placeholders) value(name string, memo map[string]string) (string, bool) {
	if v, ok := memo[name]; ok {
		return v, true
	}
	fn, ok := p[name]
	if !ok {
		return "", false
	}
	v := fn()
	memo[name] = v
	return v, true
}

// Missing returns the names from required that do not occur in tmpl as
// complete tokens.
func Missing(tmpl string, required ...string) []string {
	var missing []string
	for _, name := range required {
		if !strings.Contains(tmpl, openDelim+name+closeDelim) {
			missing = append(missing, name)
		}
	}
	return missing
}
