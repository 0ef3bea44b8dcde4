package match

import (
	"strings"

	"github.com/refindhq/refind/core"
)

// Default calibration for the score combination.
const (
	DefaultNameBonus       = 40.0
	DefaultCategoryPenalty = 40.0
	DefaultVisionWeight    = 0.6
)

// Query is the input side of a score computation. Vector is optional; when
// empty the semantic signal is omitted.
type Query struct {
	Text   string
	Vector []float32
}

// Scorer combines lexical, semantic, and visual similarity signals plus the
// category-mismatch penalty into one bounded score for a (query, candidate)
// pair. Scoring is pure: the scorer never calls external collaborators, it
// only consumes their pre-computed outputs.
type Scorer struct {
	nameBonus       float64
	categoryPenalty float64
	visionWeight    float64
}

// ScorerOption configures a Scorer.
type ScorerOption func(*Scorer)

// WithNameBonus overrides the bonus added on a name/query substring match.
func WithNameBonus(bonus float64) ScorerOption {
	return func(s *Scorer) {
		s.nameBonus = bonus
	}
}

// WithCategoryPenalty overrides the penalty subtracted on a category mismatch.
func WithCategoryPenalty(penalty float64) ScorerOption {
	return func(s *Scorer) {
		s.categoryPenalty = penalty
	}
}

// WithVisionWeight overrides the visual share of the visual/text combination.
func WithVisionWeight(weight float64) ScorerOption {
	return func(s *Scorer) {
		s.visionWeight = weight
	}
}

// NewScorer creates a scorer with the default calibration.
func NewScorer(opts ...ScorerOption) *Scorer {
	s := &Scorer{
		nameBonus:       DefaultNameBonus,
		categoryPenalty: DefaultCategoryPenalty,
		visionWeight:    DefaultVisionWeight,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score computes the similarity between a query and a candidate report.
// visual is a pre-computed image-comparison score in [0, 100]; pass
// hasVisual=false in plain text search. Missing descriptions and missing
// embeddings degrade the combination, they never fail it.
func (s *Scorer) Score(query Query, candidate *core.Report, visual float64, hasVisual bool) core.ScoredResult {
	candidateText := candidate.SearchText()

	breakdown := core.Breakdown{
		Lexical: lexicalScore(query.Text, candidateText),
	}

	// Semantic signal only when both sides carry an embedding.
	text := breakdown.Lexical
	if len(query.Vector) > 0 && len(candidate.Vector) > 0 {
		cos := CosineSimilarity(query.Vector, candidate.Vector)
		if cos < 0 {
			cos = 0
		}
		breakdown.Semantic = cos * 100
		breakdown.HasSemantic = true

		// Lexical and semantic fail in different ways, so take the better
		// signal rather than averaging them down.
		if breakdown.Semantic > text {
			text = breakdown.Semantic
		}
	}

	// Literal agreement between query and name is a strong signal even when
	// the free text diverges.
	if nameMatches(query.Text, candidate.Name) {
		breakdown.NameBonus = s.nameBonus
		text += s.nameBonus
	}

	// Once two photographs exist to compare, vision is the primary signal
	// and text corroborates.
	value := text
	if hasVisual {
		breakdown.Visual = visual
		breakdown.HasVisual = true
		value = s.visionWeight*visual + (1-s.visionWeight)*text
	}

	// The penalty lands after combination so it can pull a high lexical or
	// visual false positive back below threshold.
	breakdown.QueryCategory, _ = Classify(query.Text)
	breakdown.CandidateCategory, _ = Classify(candidateText)
	if s.categoryMismatch(breakdown.QueryCategory, breakdown.CandidateCategory, candidateText) {
		breakdown.CategoryPenalty = s.categoryPenalty
		value -= s.categoryPenalty
	}

	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}

	return core.ScoredResult{
		Value:     value,
		Breakdown: breakdown,
	}
}

// categoryMismatch reports whether the candidate disagrees with the query's
// category: either both sides classify to different categories, or the
// candidate does not classify and the query's category term appears nowhere
// in its text. Agreement through a synonym ("backpack" for a "bag" query)
// counts as the same category.
func (s *Scorer) categoryMismatch(queryCategory, candidateCategory, candidateText string) bool {
	if queryCategory == "" {
		return false
	}
	if candidateCategory != "" {
		return candidateCategory != queryCategory
	}
	return !strings.Contains(candidateText, queryCategory)
}

// nameMatches reports whether the query contains the candidate's name or
// vice versa, case-insensitive.
func nameMatches(query, name string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	name = strings.ToLower(strings.TrimSpace(name))
	if query == "" || name == "" {
		return false
	}
	return strings.Contains(query, name) || strings.Contains(name, query)
}
