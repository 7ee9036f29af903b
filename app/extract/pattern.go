package extract

import (
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Unknown is returned whenever a pattern finds nothing.
const Unknown = "Unknown"

// Pattern is a field expression with an optional literal prefix that is
// prepended to whatever the expression captures.
type Pattern struct {
	Expr   string `yaml:"expr"`
	Prefix string `yaml:"prefix"`

	re *regexp.Regexp
}

func NewPattern(expr, prefix string) Pattern {
	return Pattern{Expr: expr, Prefix: prefix}
}

// Compile prepares the expression. An empty expression is valid and always
// extracts Unknown.
func (p *Pattern) Compile() error {
	if p.Expr == "" {
		p.re = nil
		return nil
	}

	re, err := regexp.Compile(p.Expr)
	if err != nil {
		return fmt.Errorf("invalid pattern %q: %w", p.Expr, err)
	}
	p.re = re
	return nil
}

func (p *Pattern) IsEmpty() bool {
	return p.Expr == ""
}

// UnmarshalYAML accepts either a bare expression or an {expr, prefix} mapping.
func (p *Pattern) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		p.Expr = value.Value
		p.Prefix = ""
		return nil
	}

	var raw struct {
		Expr   string `yaml:"expr"`
		Prefix string `yaml:"prefix"`
	}
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("failed to decode pattern: %w", err)
	}
	p.Expr = raw.Expr
	p.Prefix = raw.Prefix
	return nil
}
