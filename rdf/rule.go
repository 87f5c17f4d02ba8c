package rdf

import (
	"strconv"
	"strings"
)

// Rule is an entailment rule: a guard over InputArity facts and a production
// of exactly OutputArity facts whenever the guard holds.
//
// Guard must not modify the context; it may run concurrently with other
// guards of the same level.
type Rule interface {
	Name() string
	InputArity() int
	OutputArity() int
	Guard(ctx *RuleContext, facts []Triple) bool
	Produce(ctx *RuleContext, facts []Triple) []Triple
}

// RuleContext carries the state shared by the rules of one inference run.
type RuleContext struct {
	// Vocabulary decides how rdf:/rdfs: terms are matched and written.
	Vocabulary Vocabulary

	blankNodes int
}

// NewRuleContext returns a context with a fresh blank node counter.
func NewRuleContext(v Vocabulary) *RuleContext {
	return &RuleContext{Vocabulary: v}
}

// NewBlankNode returns the next blank node of the run: _:blank1, _:blank2, ...
func (c *RuleContext) NewBlankNode() URI {
	c.blankNodes++
	return c.Vocabulary.blank("blank" + strconv.Itoa(c.blankNodes))
}

// reserveBlankNodes moves the counter past every _:blankN label in facts, so
// minted nodes never reuse a label the parser already assigned.
func (c *RuleContext) reserveBlankNodes(facts []Triple) {
	for _, t := range facts {
		c.reserve(t.Subject.URI)
		c.reserve(t.Predicate.URI)
		if r, ok := AsResource(t.Object); ok {
			c.reserve(r.URI)
		}
	}
}

func (c *RuleContext) reserve(u URI) {
	if !u.IsBlank() {
		return
	}
	digits, ok := strings.CutPrefix(u.Name, "blank")
	if !ok {
		return
	}
	if n, err := strconv.Atoi(digits); err == nil && n > c.blankNodes {
		c.blankNodes = n
	}
}

// Verify reports whether rule accepts facts. A tuple whose length differs from
// the rule's input arity never matches.
func Verify(rule Rule, ctx *RuleContext, facts []Triple) bool {
	if len(facts) != rule.InputArity() {
		return false
	}
	return rule.Guard(ctx, facts)
}

// Apply returns the facts rule derives from facts, or nil when the guard does
// not hold. It panics with *RuleArityError if the rule produces a different
// number of facts than it declares.
func Apply(rule Rule, ctx *RuleContext, facts []Triple) []Triple {
	if !Verify(rule, ctx, facts) {
		return nil
	}
	return produce(rule, ctx, facts)
}

func produce(rule Rule, ctx *RuleContext, facts []Triple) []Triple {
	out := rule.Produce(ctx, facts)
	if len(out) != rule.OutputArity() {
		panic(&RuleArityError{
			Rule:     rule.Name(),
			Declared: rule.OutputArity(),
			Produced: len(out),
			Input:    facts,
		})
	}
	return out
}
