package extract

// Extract returns the first capture group of the first match of p in text,
// or the whole match when the expression has no groups. A miss yields
// Unknown. The prefix is only applied to real matches.
func Extract(p *Pattern, text string) string {
	if p == nil || p.Expr == "" {
		return Unknown
	}
	if p.re == nil {
		if err := p.Compile(); err != nil {
			return Unknown
		}
	}

	m := p.re.FindStringSubmatch(text)
	if m == nil {
		return Unknown
	}

	value := m[0]
	if len(m) > 1 {
		value = m[1]
	}

	return p.Prefix + value
}

// All returns every non-overlapping match of p in text, in order, using the
// same group selection as Extract. It is used to slice a page into blocks.
func All(p *Pattern, text string) []string {
	if p == nil || p.Expr == "" {
		return nil
	}
	if p.re == nil {
		if err := p.Compile(); err != nil {
			return nil
		}
	}

	matches := p.re.FindAllStringSubmatch(text, -1)
	blocks := make([]string, 0, len(matches))
	for _, m := range matches {
		if len(m) > 1 {
			blocks = append(blocks, m[1])
		} else {
			blocks = append(blocks, m[0])
		}
	}
	return blocks
}
