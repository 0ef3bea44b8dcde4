package match

import (
	"testing"

	"github.com/refindhq/refind/core"
	"github.com/stretchr/testify/assert"
)

func report(name, description, location string) *core.Report {
	return &core.Report{
		Name:        name,
		Description: description,
		Location:    location,
	}
}

func TestClassify(t *testing.T) {
	t.Run("single term", func(t *testing.T) {
		category, ok := Classify("I lost my phone at the cafeteria")
		assert.True(t, ok)
		assert.Equal(t, "phone", category)
	})

	t.Run("case insensitive", func(t *testing.T) {
		category, ok := Classify("Blue WALLET with cards inside")
		assert.True(t, ok)
		assert.Equal(t, "wallet", category)
	})

	t.Run("earliest occurrence wins", func(t *testing.T) {
		category, ok := Classify("watch found next to a laptop bag")
		assert.True(t, ok)
		assert.Equal(t, "watch", category)
	})

	t.Run("synonym folds into category", func(t *testing.T) {
		category, ok := Classify("canvas backpack with keychain")
		assert.True(t, ok)
		assert.Equal(t, "bag", category)

		category, ok = Classify("navy rucksack on a bench")
		assert.True(t, ok)
		assert.Equal(t, "bag", category)
	})

	t.Run("no match", func(t *testing.T) {
		_, ok := Classify("a mysterious object")
		assert.False(t, ok)
	})

	t.Run("empty text", func(t *testing.T) {
		_, ok := Classify("")
		assert.False(t, ok)
	})
}

func TestLexicalScore(t *testing.T) {
	t.Run("full overlap", func(t *testing.T) {
		assert.InDelta(t, 100.0, lexicalScore("blue backpack", "blue backpack found near the gym"), 0.01)
	})

	t.Run("partial overlap", func(t *testing.T) {
		assert.InDelta(t, 50.0, lexicalScore("blue backpack", "a red backpack"), 0.01)
	})

	t.Run("no overlap", func(t *testing.T) {
		assert.Equal(t, 0.0, lexicalScore("gold ring", "black laptop sleeve"))
	})

	t.Run("empty query", func(t *testing.T) {
		assert.Equal(t, 0.0, lexicalScore("", "anything"))
	})

	t.Run("punctuation trimmed", func(t *testing.T) {
		assert.InDelta(t, 100.0, lexicalScore("keys!", "Found: keys."), 0.01)
	})

	t.Run("duplicate query tokens count once", func(t *testing.T) {
		assert.InDelta(t, 100.0, lexicalScore("keys keys", "lost keys"), 0.01)
	})
}

func TestCosineSimilarity(t *testing.T) {
	t.Run("identical vectors", func(t *testing.T) {
		v := []float32{0.6, 0.8}
		assert.InDelta(t, 1.0, CosineSimilarity(v, v), 0.0001)
	})

	t.Run("orthogonal vectors", func(t *testing.T) {
		assert.InDelta(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{0, 1}), 0.0001)
	})

	t.Run("opposite vectors", func(t *testing.T) {
		assert.InDelta(t, -1.0, CosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 0.0001)
	})

	t.Run("zero vector", func(t *testing.T) {
		assert.Equal(t, 0.0, CosineSimilarity([]float32{0, 0}, []float32{1, 1}))
	})

	t.Run("empty vector", func(t *testing.T) {
		assert.Equal(t, 0.0, CosineSimilarity(nil, []float32{1, 1}))
	})
}

func TestScorerLexicalOnly(t *testing.T) {
	scorer := NewScorer()

	result := scorer.Score(
		Query{Text: "blue backpack"},
		report("Blue Backpack", "found near the gym entrance", "sports hall"),
		0, false,
	)

	// Full lexical overlap plus the name bonus, clamped to 100.
	assert.Equal(t, 100.0, result.Value)
	assert.InDelta(t, 100.0, result.Breakdown.Lexical, 0.01)
	assert.Equal(t, DefaultNameBonus, result.Breakdown.NameBonus)
	assert.False(t, result.Breakdown.HasSemantic)
	assert.False(t, result.Breakdown.HasVisual)
}

func TestScorerSemanticTakesMax(t *testing.T) {
	scorer := NewScorer()

	// Lexically disjoint but semantically aligned texts.
	candidate := report("Rucksack", "navy knapsack left on a bench", "park")
	candidate.Vector = []float32{1, 0, 0}

	query := Query{Text: "blue backpack", Vector: []float32{1, 0, 0}}
	result := scorer.Score(query, candidate, 0, false)

	assert.True(t, result.Breakdown.HasSemantic)
	assert.InDelta(t, 100.0, result.Breakdown.Semantic, 0.01)
	// Semantic dominates the near-zero lexical signal.
	assert.GreaterOrEqual(t, result.Value, 100.0-0.01)
}

func TestScorerNegativeCosineClamped(t *testing.T) {
	scorer := NewScorer()

	candidate := report("Rucksack", "navy knapsack", "park")
	candidate.Vector = []float32{-1, 0, 0}

	query := Query{Text: "blue backpack", Vector: []float32{1, 0, 0}}
	result := scorer.Score(query, candidate, 0, false)

	assert.Equal(t, 0.0, result.Breakdown.Semantic)
}

func TestScorerCategoryPenalty(t *testing.T) {
	scorer := NewScorer()

	t.Run("different categories", func(t *testing.T) {
		// High lexical overlap but a ring is not a phone.
		result := scorer.Score(
			Query{Text: "lost my phone in a black case"},
			report("Gold Ring", "gold ring in a black case", "gym"),
			0, false,
		)
		assert.Equal(t, scorer.categoryPenalty, result.Breakdown.CategoryPenalty)
		assert.Equal(t, "phone", result.Breakdown.QueryCategory)
		assert.Equal(t, "ring", result.Breakdown.CandidateCategory)
		assert.Less(t, result.Value, OpenSearchThreshold)
	})

	t.Run("query category absent from candidate", func(t *testing.T) {
		result := scorer.Score(
			Query{Text: "black phone"},
			report("Black Thing", "small black object", "hallway"),
			0, false,
		)
		assert.Equal(t, scorer.categoryPenalty, result.Breakdown.CategoryPenalty)
	})

	t.Run("matching categories unpenalized", func(t *testing.T) {
		result := scorer.Score(
			Query{Text: "black phone"},
			report("Black Phone", "phone with a cracked screen", "hallway"),
			0, false,
		)
		assert.Equal(t, 0.0, result.Breakdown.CategoryPenalty)
	})

	t.Run("no query category no penalty", func(t *testing.T) {
		result := scorer.Score(
			Query{Text: "something shiny"},
			report("Gold Ring", "gold ring", "gym"),
			0, false,
		)
		assert.Equal(t, 0.0, result.Breakdown.CategoryPenalty)
	})
}

func TestScorerBagQueryMatchesBackpack(t *testing.T) {
	scorer := NewScorer()

	candidate := report("Blue Backpack", "canvas backpack with keychain", "Library")
	candidate.Vector = []float32{0.8, 0.6}

	result := scorer.Score(
		Query{Text: "I lost my blue bag near the library", Vector: []float32{1, 0}},
		candidate,
		0, false,
	)

	// "backpack" folds into the bag category, so the penalty must not fire
	// and the semantic signal carries the score.
	assert.Equal(t, "bag", result.Breakdown.QueryCategory)
	assert.Equal(t, "bag", result.Breakdown.CandidateCategory)
	assert.Equal(t, 0.0, result.Breakdown.CategoryPenalty)
	assert.InDelta(t, 80.0, result.Breakdown.Semantic, 0.01)
	assert.GreaterOrEqual(t, result.Value, 50.0)
}

func TestScorerVisualCombination(t *testing.T) {
	scorer := NewScorer()

	// Text score is 100 (full overlap plus name bonus, pre-clamp 140 capped
	// by combination before clamping: 0.6*80 + 0.4*140 = 104 -> 100).
	result := scorer.Score(
		Query{Text: "blue backpack"},
		report("Blue Backpack", "blue backpack", "gym"),
		80, true,
	)
	assert.True(t, result.Breakdown.HasVisual)
	assert.Equal(t, 80.0, result.Breakdown.Visual)
	assert.Equal(t, 100.0, result.Value)

	// With no text agreement at all the visual signal carries the score.
	result = scorer.Score(
		Query{Text: "shiny object"},
		report("Umbrella", "black umbrella", "lobby"),
		90, true,
	)
	assert.InDelta(t, 0.6*90, result.Value, 0.01)
}

func TestScorerClampBounds(t *testing.T) {
	scorer := NewScorer()

	// Penalty can never push the value below zero.
	low := scorer.Score(
		Query{Text: "phone"},
		report("Ring", "a ring", "gym"),
		0, false,
	)
	assert.GreaterOrEqual(t, low.Value, 0.0)

	// Bonus can never push the value above 100.
	high := scorer.Score(
		Query{Text: "blue backpack"},
		report("Blue Backpack", "blue backpack", "gym"),
		100, true,
	)
	assert.LessOrEqual(t, high.Value, 100.0)
}

func TestScorerDeterministic(t *testing.T) {
	scorer := NewScorer()
	query := Query{Text: "silver watch", Vector: []float32{0.3, 0.4}}
	candidate := report("Silver Watch", "a silver wristwatch", "library")
	candidate.Vector = []float32{0.3, 0.5}

	first := scorer.Score(query, candidate, 70, true)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, scorer.Score(query, candidate, 70, true))
	}
}

func TestScorerOptions(t *testing.T) {
	scorer := NewScorer(
		WithNameBonus(10),
		WithCategoryPenalty(5),
		WithVisionWeight(0.5),
	)

	result := scorer.Score(
		Query{Text: "phone"},
		report("Phone", "a phone", "desk"),
		0, false,
	)
	assert.Equal(t, 10.0, result.Breakdown.NameBonus)

	visual := scorer.Score(
		Query{Text: "widget"},
		report("Gadget", "a gadget", "desk"),
		80, true,
	)
	assert.InDelta(t, 0.5*80, visual.Value, 0.01)
}
