package rdf

import (
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"
)

// LevelStats describes one completed level of an inference run.
type LevelStats struct {
	// Level is 1-based.
	Level int
	// WorkingSet is the number of facts the level drew its inputs from.
	WorkingSet int
	// Produced is the number of facts the rules emitted, duplicates included.
	Produced int
	// Fired counts guard matches per rule name.
	Fired map[string]int
}

// ReasonObserver receives statistics after every level.
type ReasonObserver interface {
	ObserveLevel(stats LevelStats)
}

// ReasonOptions configures a Reasoner.
type ReasonOptions struct {
	// Vocabulary used by the rules. Defaults to CanonicalVocabulary.
	Vocabulary Vocabulary
	// Bucketed restricts every level to the facts produced by the previous
	// level, instead of all facts known so far.
	Bucketed bool
	// Workers evaluates guards on this many goroutines when > 1.
	Workers int
	// Observer, if set, is called after every level.
	Observer ReasonObserver
}

// ReasonOption configures reasoner behavior.
type ReasonOption func(*ReasonOptions)

// OptVocabulary sets the vocabulary the rules match and emit.
func OptVocabulary(v Vocabulary) ReasonOption {
	return func(opts *ReasonOptions) {
		opts.Vocabulary = v
	}
}

// OptBucketedLevels evaluates each level only over the previous level's
// output, pairing facts from that bucket alone.
func OptBucketedLevels(enabled bool) ReasonOption {
	return func(opts *ReasonOptions) {
		opts.Bucketed = enabled
	}
}

// OptWorkers sets the number of goroutines evaluating guards.
func OptWorkers(n int) ReasonOption {
	return func(opts *ReasonOptions) {
		opts.Workers = n
	}
}

// OptObserver installs a per-level observer.
func OptObserver(observer ReasonObserver) ReasonOption {
	return func(opts *ReasonOptions) {
		opts.Observer = observer
	}
}

// Reasoner computes a depth-bounded closure of a fact list under a rule set.
type Reasoner struct {
	rules []Rule
	opts  ReasonOptions
}

// NewReasoner returns a reasoner over rules.
func NewReasoner(rules []Rule, opts ...ReasonOption) *Reasoner {
	options := ReasonOptions{Vocabulary: CanonicalVocabulary, Workers: 1}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Workers < 1 {
		options.Workers = 1
	}
	return &Reasoner{rules: slices.Clone(rules), opts: options}
}

// GetInferredTriples returns the facts the RDFS rules derive from facts within
// depth levels, using absolute rdf:/rdfs: IRIs.
func GetInferredTriples(facts []Triple, depth int) []Triple {
	return NewReasoner(RDFSRules()).InferredTriples(facts, depth)
}

// InferredTriples returns the facts newly derived from facts within depth
// levels: deduplicated, without any input fact, sorted by canonical string.
// Blank nodes minted by rdfs1 are numbered above the highest _:blankN label
// in facts.
func (r *Reasoner) InferredTriples(facts []Triple, depth int) []Triple {
	ctx := NewRuleContext(r.opts.Vocabulary)
	ctx.reserveBlankNodes(facts)
	var produced []Triple
	if r.opts.Bucketed {
		produced = r.runBucketed(ctx, facts, depth)
	} else {
		produced = r.runAccumulated(ctx, facts, depth)
	}
	return subtractSorted(produced, facts)
}

func (r *Reasoner) runBucketed(ctx *RuleContext, facts []Triple, depth int) []Triple {
	var out []Triple
	working := facts
	for level := 1; level <= depth && len(working) > 0; level++ {
		bucket, fired := r.evaluate(ctx, working, 0)
		r.observe(level, len(working), len(bucket), fired)
		out = append(out, bucket...)
		working = bucket
	}
	return out
}

// runAccumulated pairs every fact known so far with the facts that are new at
// the current level, so chains of any length up to depth are followed.
func (r *Reasoner) runAccumulated(ctx *RuleContext, facts []Triple, depth int) []Triple {
	seen := make(map[string]struct{}, len(facts))
	all := make([]Triple, 0, len(facts))
	for _, t := range facts {
		key := t.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		all = append(all, t)
	}

	var out []Triple
	start := 0
	for level := 1; level <= depth && start < len(all); level++ {
		bucket, fired := r.evaluate(ctx, all, start)
		r.observe(level, len(all), len(bucket), fired)
		start = len(all)
		for _, t := range bucket {
			key := t.Key()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			all = append(all, t)
			out = append(out, t)
		}
	}
	return out
}

type ruleMatch struct {
	rule  Rule
	facts []Triple
}

// evaluate applies every rule to the single facts facts[start:] and to every
// pair (facts[i], facts[j]) with i <= j and j >= start.
func (r *Reasoner) evaluate(ctx *RuleContext, facts []Triple, start int) ([]Triple, map[string]int) {
	matches := make([][]ruleMatch, len(facts)-start)
	if r.opts.Workers > 1 {
		var g errgroup.Group
		g.SetLimit(r.opts.Workers)
		for j := start; j < len(facts); j++ {
			j := j
			g.Go(func() error {
				matches[j-start] = r.matchAt(ctx, facts, j)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for j := start; j < len(facts); j++ {
			matches[j-start] = r.matchAt(ctx, facts, j)
		}
	}

	var bucket []Triple
	fired := make(map[string]int)
	for _, group := range matches {
		for _, m := range group {
			bucket = append(bucket, produce(m.rule, ctx, m.facts)...)
			fired[m.rule.Name()]++
		}
	}
	return bucket, fired
}

func (r *Reasoner) matchAt(ctx *RuleContext, facts []Triple, j int) []ruleMatch {
	var out []ruleMatch
	for _, rule := range r.rules {
		switch rule.InputArity() {
		case 1:
			single := []Triple{facts[j]}
			if Verify(rule, ctx, single) {
				out = append(out, ruleMatch{rule: rule, facts: single})
			}
		case 2:
			for i := 0; i <= j; i++ {
				pair := []Triple{facts[i], facts[j]}
				if Verify(rule, ctx, pair) {
					out = append(out, ruleMatch{rule: rule, facts: pair})
				}
			}
		}
	}
	return out
}

func (r *Reasoner) observe(level, working, produced int, fired map[string]int) {
	if r.opts.Observer == nil {
		return
	}
	r.opts.Observer.ObserveLevel(LevelStats{
		Level:      level,
		WorkingSet: working,
		Produced:   produced,
		Fired:      fired,
	})
}

// subtractSorted sorts produced by canonical string, removes duplicates and
// drops every fact that also appears in input.
func subtractSorted(produced, input []Triple) []Triple {
	type keyed struct {
		key    string
		triple Triple
	}
	items := make([]keyed, len(produced))
	for i, t := range produced {
		items[i] = keyed{key: t.Key(), triple: t}
	}
	slices.SortStableFunc(items, func(a, b keyed) int { return strings.Compare(a.key, b.key) })

	original := make(map[string]struct{}, len(input))
	for _, t := range input {
		original[t.Key()] = struct{}{}
	}

	out := make([]Triple, 0, len(items))
	for i, item := range items {
		if i > 0 && items[i-1].key == item.key {
			continue
		}
		if _, ok := original[item.key]; ok {
			continue
		}
		out = append(out, item.triple)
	}
	return out
}
