package reports

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/refindhq/refind/ai"
	"github.com/refindhq/refind/core"
	"github.com/refindhq/refind/storage"
)

const (
	defaultRetryAttempts  = 3
	defaultRetryBaseDelay = 500 * time.Millisecond
)

// Pipeline orchestrates report submission: photo description, validation,
// storage, and asynchronous embedding backfill.
type Pipeline struct {
	foundRepository storage.FoundRepository
	lostRepository  storage.LostRepository
	describer       ai.ImageDescriber
	embedder        ai.Embedder
	embedPool       *ants.Pool
	retryAttempts   int
	retryBaseDelay  time.Duration
	logger          *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for the embedding backfill.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.embedPool != nil {
			p.embedPool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.embedPool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithRetry sets the attempt budget and base delay for the embedding
// backfill's retry loop.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(p *Pipeline) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		p.retryAttempts = maxAttempts
		p.retryBaseDelay = baseDelay
		return nil
	}
}

// NewPipeline creates a new report submission pipeline.
func NewPipeline(
	foundRepository storage.FoundRepository,
	lostRepository storage.LostRepository,
	provider ai.Provider,
	opts ...Option,
) (*Pipeline, error) {
	if foundRepository == nil {
		return nil, ErrFoundRepositoryRequired
	}
	if lostRepository == nil {
		return nil, ErrLostRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		foundRepository: foundRepository,
		lostRepository:  lostRepository,
		describer:       provider.ImageDescriber(),
		embedder:        provider.Embedder(),
		embedPool:       pool,
		retryAttempts:   defaultRetryAttempts,
		retryBaseDelay:  defaultRetryBaseDelay,
		logger:          slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Release shuts down the embedding worker pool.
func (p *Pipeline) Release() {
	if p.embedPool != nil {
		p.embedPool.Release()
	}
}

// SubmitFound describes the photo (when given), validates the record, stores
// it, and schedules the embedding backfill. Description failure degrades to a
// placeholder; submission never fails on a collaborator error.
func (p *Pipeline) SubmitFound(ctx context.Context, record *core.FoundRecord, image []byte) (*core.FoundRecord, error) {
	record.Description = p.describeAndPrepend(ctx, record.Description, image)

	// Fresh submissions carry no status; they start pending.
	if record.Status == 0 {
		record.Status = core.FoundPending
	}

	if err := core.ValidateFoundRecord(record); err != nil {
		return nil, err
	}

	added, err := p.foundRepository.AddFoundRecords(ctx, record)
	if err != nil {
		return nil, err
	}
	record = added[0]

	p.scheduleEmbedding(record.Id, core.KindFound)
	return record, nil
}

// SubmitLost is SubmitFound for lost records.
func (p *Pipeline) SubmitLost(ctx context.Context, record *core.LostRecord, image []byte) (*core.LostRecord, error) {
	record.Description = p.describeAndPrepend(ctx, record.Description, image)

	if err := core.ValidateLostRecord(record); err != nil {
		return nil, err
	}

	added, err := p.lostRepository.AddLostRecords(ctx, record)
	if err != nil {
		return nil, err
	}
	record = added[0]

	p.scheduleEmbedding(record.Id, core.KindLost)
	return record, nil
}

// describeAndPrepend asks the vision collaborator to describe the photo and
// prepends the result to the user's description. The AI text always comes
// first so search treats it as part of the record's own words.
func (p *Pipeline) describeAndPrepend(ctx context.Context, description string, image []byte) string {
	if len(image) == 0 || p.describer == nil {
		return description
	}

	aiDescription, err := p.describer.DescribeImage(ctx, image)
	if err != nil {
		p.logger.Warn("image description failed, using placeholder", "err", err)
		aiDescription = ai.DescriptionUnavailable
	}

	if description == "" {
		return aiDescription
	}
	return aiDescription + "\n\n" + description
}

// scheduleEmbedding queues the embedding backfill for a stored record.
// Errors are logged, never surfaced to the submitter.
func (p *Pipeline) scheduleEmbedding(id core.ID, kind core.ReportKind) {
	if p.embedder == nil {
		return
	}

	err := p.embedPool.Submit(func() {
		// Detached from the request context: the backfill outlives the
		// submission call.
		ctx := context.Background()
		if err := p.backfillEmbedding(ctx, id, kind); err != nil {
			p.logger.Error("embedding backfill failed", "id", id, "kind", kind, "err", err)
		}
	})
	if err != nil {
		p.logger.Error("failed to schedule embedding backfill", "id", id, "err", err)
	}
}

// backfillEmbedding embeds a record's search text and stores the normalized
// vector, retrying transient failures with exponential backoff.
func (p *Pipeline) backfillEmbedding(ctx context.Context, id core.ID, kind core.ReportKind) error {
	return RetryWithBackoff(ctx, func() error {
		switch kind {
		case core.KindFound:
			record, err := p.foundRepository.GetFoundRecord(ctx, id)
			if err != nil {
				return err
			}
			vector, err := p.embedder.EmbedText(ctx, record.SearchText())
			if err != nil {
				return err
			}
			record.Vector = NormalizeVector(vector)
			_, err = p.foundRepository.UpdateFoundRecords(ctx, record)
			return err

		default:
			record, err := p.lostRepository.GetLostRecord(ctx, id)
			if err != nil {
				return err
			}
			vector, err := p.embedder.EmbedText(ctx, record.SearchText())
			if err != nil {
				return err
			}
			record.Vector = NormalizeVector(vector)
			_, err = p.lostRepository.UpdateLostRecords(ctx, record)
			return err
		}
	}, p.retryAttempts, p.retryBaseDelay)
}
