package entity

import "strings"

// Expression is an opaque model or decal expression. It is evaluated by the
// entity model layer; the resolver only chains expressions together.
type Expression struct {
	Source string
}

// ExpressionChain is an ordered list of alternatives, most specific first.
// An empty chain means the attribute is absent.
type ExpressionChain []Expression

// Chain builds a chain from expression sources.
func Chain(sources ...string) ExpressionChain {
	if len(sources) == 0 {
		return nil
	}
	out := make(ExpressionChain, len(sources))
	for i, s := range sources {
		out[i] = Expression{Source: s}
	}
	return out
}

func (c ExpressionChain) IsEmpty() bool {
	return len(c) == 0
}

// Append returns a new chain that tries c first and falls back to other.
// Neither receiver nor argument is modified.
func (c ExpressionChain) Append(other ExpressionChain) ExpressionChain {
	if len(c)+len(other) == 0 {
		return nil
	}
	out := make(ExpressionChain, 0, len(c)+len(other))
	out = append(out, c...)
	return append(out, other...)
}

// Sources returns the expression sources in order.
func (c ExpressionChain) Sources() []string {
	out := make([]string, len(c))
	for i, e := range c {
		out[i] = e.Source
	}
	return out
}

func (c ExpressionChain) String() string {
	return strings.Join(c.Sources(), " | ")
}
