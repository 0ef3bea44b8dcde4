package match

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/refindhq/refind/ai"
	"github.com/refindhq/refind/core"
)

// Thresholds and limits for the two operating modes.
const (
	OpenSearchThreshold = 25.0
	OpenSearchLimit     = 10

	ClaimVerifyThreshold = 20.0
	ClaimVerifyLimit     = 3
)

// Match pairs a candidate with its score.
type Match struct {
	Report *core.Report
	Result core.ScoredResult
}

// Options controls one ranking run.
type Options struct {
	// Threshold filters out candidates scoring below it.
	Threshold float64
	// Limit truncates the ranked list.
	Limit int
	// Visual supplies pre-computed image-comparison scores per candidate ID.
	// Candidates absent from the map are scored on text alone.
	Visual map[core.ID]float64
}

// OpenSearchOptions returns the options for open search mode: text only,
// permissive threshold, larger result page.
func OpenSearchOptions() Options {
	return Options{
		Threshold: OpenSearchThreshold,
		Limit:     OpenSearchLimit,
	}
}

// ClaimVerifyOptions returns the options for claim verification mode:
// visual scores present when both sides have an image, tighter limit.
func ClaimVerifyOptions(visual map[core.ID]float64) Options {
	return Options{
		Threshold: ClaimVerifyThreshold,
		Limit:     ClaimVerifyLimit,
		Visual:    visual,
	}
}

// Ranker applies the Scorer across a candidate set, filters by threshold,
// and returns a bounded, deterministically ordered list.
type Ranker struct {
	scorer   *Scorer
	embedder ai.Embedder
	logger   *slog.Logger
}

// RankerOption configures a Ranker.
type RankerOption func(*Ranker) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) RankerOption {
	return func(r *Ranker) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithScorer replaces the default scorer.
func WithScorer(scorer *Scorer) RankerOption {
	return func(r *Ranker) error {
		if scorer == nil {
			return ErrScorerRequired
		}
		r.scorer = scorer
		return nil
	}
}

// NewRanker creates a new ranker. The embedder may be nil, in which case
// ranking runs on the lexical signal alone.
func NewRanker(embedder ai.Embedder, opts ...RankerOption) (*Ranker, error) {
	r := &Ranker{
		scorer:   NewScorer(),
		embedder: embedder,
		logger:   slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Rank scores every candidate against the query, keeps those at or above
// the threshold, sorts descending by score, and truncates to the limit.
// Exact ties preserve the original candidate order, so a fixed input set
// always produces the same output. An empty query or empty candidate set
// returns an empty list, not an error.
func (r *Ranker) Rank(ctx context.Context, queryText string, candidates []*core.Report, opts Options) ([]Match, error) {
	return r.RankWithMonitor(ctx, queryText, candidates, opts, nil)
}

// RankWithMonitor ranks with per-stage callbacks for observability.
func (r *Ranker) RankWithMonitor(ctx context.Context, queryText string, candidates []*core.Report, opts Options, monitor RankMonitor) ([]Match, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(queryText)

	if strings.TrimSpace(queryText) == "" || len(candidates) == 0 {
		monitor.Finish(nil)
		return []Match{}, nil
	}

	query := Query{Text: queryText}

	// Embed the query once for the whole candidate set. A failing embedder
	// degrades ranking to the lexical signal, it never aborts the search.
	if r.embedder != nil {
		vector, err := r.embedder.EmbedText(ctx, queryText)
		if err != nil {
			r.logger.Warn("query embedding failed, ranking on lexical signal only", "err", err)
		} else {
			query.Vector = vector
		}
	}
	monitor.AfterQueryEmbedding(query.Vector)

	matches := make([]Match, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate == nil {
			continue
		}

		visual, hasVisual := 0.0, false
		if opts.Visual != nil {
			visual, hasVisual = opts.Visual[candidate.Id]
		}

		result := r.scorer.Score(query, candidate, visual, hasVisual)
		monitor.Scored(candidate, result)

		if result.Value >= opts.Threshold {
			matches = append(matches, Match{Report: candidate, Result: result})
		}
	}

	// Stable sort keeps original candidate order on exact ties.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Result.Value > matches[j].Result.Value
	})

	if opts.Limit > 0 && len(matches) > opts.Limit {
		matches = matches[:opts.Limit]
	}

	monitor.Finish(matches)
	return matches, nil
}
