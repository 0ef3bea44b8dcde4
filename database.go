// Copyright 2026 Refind Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package refind

import (
	"context"
	"log/slog"
	"os"

	"github.com/refindhq/refind/ai"
	"github.com/refindhq/refind/ai/openai"
	"github.com/refindhq/refind/claims"
	"github.com/refindhq/refind/core"
	"github.com/refindhq/refind/intake"
	"github.com/refindhq/refind/match"
	"github.com/refindhq/refind/reports"
	"github.com/refindhq/refind/storage"
	"github.com/refindhq/refind/storage/badger"
)

// Database bundles the storage backend, repositories, and AI provider into
// one handle the CLI and tests work against.
type Database struct {
	backend   *badger.Backend
	foundRepo storage.FoundRepository
	lostRepo  storage.LostRepository
	claimRepo storage.ClaimRepository
	chatRepo  storage.ChatRepository
	provider  ai.Provider
	ranker    *match.Ranker
	logger    *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig *ai.Config
	provider ai.Provider
	inMemory bool
}

// WithAIConfig sets the AI collaborator endpoints and models.
// Default is ai.DefaultConfig().
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		o.aiConfig = config
	}
}

// WithProvider injects a pre-built AI provider instead of constructing the
// OpenAI-compatible one. Useful for tests.
func WithProvider(provider ai.Provider) DatabaseOption {
	return func(o *databaseOptions) {
		o.provider = provider
	}
}

// WithInMemory keeps all records in memory instead of on disk.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

// NewDatabase opens the record store at filePath and wires up the AI
// provider and ranker.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	// Apply options
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	repos, err := badger.NewRepositories(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			repos.Close()
			return nil, err
		}
	}

	ranker, err := match.NewRanker(provider.Embedder())
	if err != nil {
		provider.Close()
		repos.Close()
		return nil, err
	}

	return &Database{
		backend:   backend,
		foundRepo: repos.Found,
		lostRepo:  repos.Lost,
		claimRepo: repos.Claims,
		chatRepo:  repos.Chat,
		provider:  provider,
		ranker:    ranker,
		logger:    slog.Default(),
	}, nil
}

func (db *Database) Close() error {
	// Close AI provider first
	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
	}

	// Close repositories
	if err := db.claimRepo.Close(); err != nil {
		db.logger.Error("error closing claim repository", "err", err)
		return err
	}
	if err := db.chatRepo.Close(); err != nil {
		db.logger.Error("error closing chat repository", "err", err)
		return err
	}
	if err := db.lostRepo.Close(); err != nil {
		db.logger.Error("error closing lost repository", "err", err)
		return err
	}
	if err := db.foundRepo.Close(); err != nil {
		db.logger.Error("error closing found repository", "err", err)
		return err
	}

	// Close backend
	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) FoundRepository() storage.FoundRepository {
	return db.foundRepo
}

func (db *Database) LostRepository() storage.LostRepository {
	return db.lostRepo
}

func (db *Database) ClaimRepository() storage.ClaimRepository {
	return db.claimRepo
}

func (db *Database) ChatRepository() storage.ChatRepository {
	return db.chatRepo
}

// NewPipeline creates a report submission pipeline over this database.
func (db *Database) NewPipeline(opts ...reports.Option) (*reports.Pipeline, error) {
	return reports.NewPipeline(db.foundRepo, db.lostRepo, db.provider, opts...)
}

// NewClaimController creates a claim lifecycle controller over this database.
func (db *Database) NewClaimController(opts ...claims.Option) (*claims.Controller, error) {
	return claims.NewController(db.foundRepo, db.claimRepo, db.chatRepo, opts...)
}

// NewIntakeManager creates an intake session manager.
func (db *Database) NewIntakeManager(opts ...intake.ManagerOption) *intake.Manager {
	return intake.NewManager(opts...)
}

// SearchResult is one ranked hit from Search or VerifyClaim.
type SearchResult struct {
	Kind  core.ReportKind
	Found *core.FoundRecord
	Lost  *core.LostRecord
	Score core.ScoredResult
}

// Search runs open search: the query is ranked against every PENDING found
// record and every lost record, so a lost-item description surfaces found
// items and vice versa.
func (db *Database) Search(ctx context.Context, queryText string) ([]SearchResult, error) {
	foundRecords, err := db.foundRepo.ListFoundRecords(ctx, core.FoundPending)
	if err != nil {
		return nil, err
	}
	lostRecords, err := db.lostRepo.ListLostRecords(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]*core.Report, 0, len(foundRecords)+len(lostRecords))
	foundByReport := make(map[*core.Report]*core.FoundRecord, len(foundRecords))
	lostByReport := make(map[*core.Report]*core.LostRecord, len(lostRecords))
	for _, record := range foundRecords {
		candidates = append(candidates, &record.Report)
		foundByReport[&record.Report] = record
	}
	for _, record := range lostRecords {
		candidates = append(candidates, &record.Report)
		lostByReport[&record.Report] = record
	}

	matches, err := db.ranker.Rank(ctx, queryText, candidates, match.OpenSearchOptions())
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(matches))
	for _, m := range matches {
		if record, ok := foundByReport[m.Report]; ok {
			results = append(results, SearchResult{Kind: core.KindFound, Found: record, Score: m.Result})
			continue
		}
		if record, ok := lostByReport[m.Report]; ok {
			results = append(results, SearchResult{Kind: core.KindLost, Lost: record, Score: m.Result})
		}
	}
	return results, nil
}

// VerifyClaim ranks a found record against the claimant's own lost records,
// adding visual similarity when both sides carry a photo. It gives the
// finder evidence that the claimant reported losing something like this
// item before the claim was opened.
func (db *Database) VerifyClaim(ctx context.Context, foundID, claimantID core.ID) ([]SearchResult, error) {
	found, err := db.foundRepo.GetFoundRecord(ctx, foundID)
	if err != nil {
		return nil, err
	}

	lostRecords, err := db.lostRepo.ListLostRecordsByOwner(ctx, claimantID)
	if err != nil {
		return nil, err
	}
	if len(lostRecords) == 0 {
		return []SearchResult{}, nil
	}

	candidates := make([]*core.Report, 0, len(lostRecords))
	lostByReport := make(map[*core.Report]*core.LostRecord, len(lostRecords))
	for _, record := range lostRecords {
		candidates = append(candidates, &record.Report)
		lostByReport[&record.Report] = record
	}

	visual := db.visualScores(ctx, found, lostRecords)

	matches, err := db.ranker.Rank(ctx, found.SearchText(), candidates, match.ClaimVerifyOptions(visual))
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(matches))
	for _, m := range matches {
		if record, ok := lostByReport[m.Report]; ok {
			results = append(results, SearchResult{Kind: core.KindLost, Lost: record, Score: m.Result})
		}
	}
	return results, nil
}

// visualScores compares the found item's photo against each lost record's
// photo. Records without a readable photo on either side simply get no
// visual score.
func (db *Database) visualScores(ctx context.Context, found *core.FoundRecord, lostRecords []*core.LostRecord) map[core.ID]float64 {
	if found.ImageRef == "" {
		return nil
	}
	queryImage, err := os.ReadFile(found.ImageRef)
	if err != nil {
		db.logger.Warn("found record image unreadable, skipping visual comparison", "foundID", found.Id, "err", err)
		return nil
	}

	candidateImages := make(map[core.ID][]byte)
	for _, record := range lostRecords {
		if record.ImageRef == "" {
			continue
		}
		image, err := os.ReadFile(record.ImageRef)
		if err != nil {
			db.logger.Warn("lost record image unreadable, skipping", "lostID", record.Id, "err", err)
			continue
		}
		candidateImages[record.Id] = image
	}
	if len(candidateImages) == 0 {
		return nil
	}

	scores, err := match.CompareAll(ctx, db.provider.ImageComparer(), queryImage, candidateImages, 0)
	if err != nil {
		db.logger.Warn("visual comparison failed", "err", err)
		return nil
	}
	return scores
}
