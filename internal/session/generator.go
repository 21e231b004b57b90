package session

import (
	"math/rand"

	"github.com/rahulj/mockmate/internal/bank"
)

// Generator selects question subsets from a catalog. The random
// source is injected so selection is deterministic under test and
// entropy-backed in production.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a Generator around the given random source.
func NewGenerator(src rand.Source) *Generator {
	return &Generator{rng: rand.New(src)}
}

// Generate builds a new session for the requested setup. It never
// fails: an unknown domain falls back to the default bank, filters
// that eliminate every candidate yield an empty session, and a count
// larger than the pool simply produces a shorter session. A
// non-positive count yields an empty session.
func (g *Generator) Generate(catalog *bank.Catalog, setup Setup) *Session {
	if setup.Count <= 0 {
		return New(setup, nil)
	}

	pool := candidatePool(catalog, setup)

	var objective, subjective []bank.Question
	for _, q := range pool {
		if q.Kind() == bank.KindSubjective {
			subjective = append(subjective, q)
		} else {
			objective = append(objective, q)
		}
	}

	// Target roughly one subjective question per three requested, but
	// never zero while any subjective candidate exists, and never more
	// than are available. Preserved for count < 3 as well: a 1-question
	// session still draws its reflective question first.
	desiredSubjective := setup.Count / 3
	if desiredSubjective < 1 {
		desiredSubjective = 1
	}
	if desiredSubjective > len(subjective) {
		desiredSubjective = len(subjective)
	}

	chosen := g.sample(subjective, desiredSubjective)

	remaining := setup.Count - len(chosen)
	if remaining < 0 {
		remaining = 0
	}
	chosen = append(chosen, g.sample(objective, remaining)...)

	// One more independent shuffle so objective and subjective
	// questions interleave unpredictably.
	g.rng.Shuffle(len(chosen), func(i, j int) {
		chosen[i], chosen[j] = chosen[j], chosen[i]
	})

	if len(chosen) > setup.Count {
		chosen = chosen[:setup.Count]
	}

	return New(setup, chosen)
}

// candidatePool returns the domain's questions, restricted by the
// category filter when one is supplied. An empty filter set means no
// restriction. Category filtering only applies to the aptitude domain.
func candidatePool(catalog *bank.Catalog, setup Setup) []bank.Question {
	qs := catalog.Questions(setup.Domain)
	if setup.Domain != bank.AptitudeDomain || len(setup.Categories) == 0 {
		return qs
	}

	allowed := make(map[string]bool, len(setup.Categories))
	for _, c := range setup.Categories {
		allowed[c] = true
	}

	var filtered []bank.Question
	for _, q := range qs {
		cat := q.Category
		if cat == "" {
			cat = bank.DefaultCategory
		}
		if allowed[cat] {
			filtered = append(filtered, q)
		}
	}
	return filtered
}

// sample draws n questions uniformly without replacement. It returns
// fewer than n when the pool is smaller.
func (g *Generator) sample(pool []bank.Question, n int) []bank.Question {
	if n > len(pool) {
		n = len(pool)
	}
	if n == 0 {
		return nil
	}
	shuffled := make([]bank.Question, len(pool))
	copy(shuffled, pool)
	g.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:n]
}
