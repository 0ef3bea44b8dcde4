package match

import "github.com/refindhq/refind/core"

// RankMonitor provides hooks to observe a ranking run.
// Implement this interface to track intermediate scores during ranking.
type RankMonitor interface {
	Start(query string)
	AfterQueryEmbedding(vector []float32)
	Scored(candidate *core.Report, result core.ScoredResult)
	Finish(matches []Match)
}

// noopMonitor is a no-op implementation of RankMonitor
type noopMonitor struct{}

var _ RankMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                               {}
func (n *noopMonitor) AfterQueryEmbedding(_ []float32)              {}
func (n *noopMonitor) Scored(_ *core.Report, _ core.ScoredResult)   {}
func (n *noopMonitor) Finish(_ []Match)                             {}
