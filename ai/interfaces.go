package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// ImageDescriber produces a detailed textual description of an item photo.
// Implementations must be thread-safe for concurrent use.
type ImageDescriber interface {
	// DescribeImage analyzes an item photo and returns a free-text description
	// covering color, brand, material, condition, and unique features.
	// Returns an error if the vision service fails; callers substitute a
	// placeholder so report submission never blocks on AI availability.
	DescribeImage(ctx context.Context, image []byte) (string, error)
}

// ImageComparer judges whether two photos depict the same physical object.
// Implementations must be thread-safe for concurrent use.
type ImageComparer interface {
	// CompareImages returns a similarity verdict in [0, 100], where 100 means
	// the photos almost certainly show the same item. Returns an error if the
	// vision service fails; callers substitute the neutral default of 50.
	CompareImages(ctx context.Context, a, b []byte) (float64, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages Embedder, ImageDescriber, and
// ImageComparer instances, ensuring they share configuration and resources.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// ImageDescriber returns the photo description service.
	// The returned ImageDescriber is safe for concurrent use.
	ImageDescriber() ImageDescriber

	// ImageComparer returns the photo comparison service.
	// The returned ImageComparer is safe for concurrent use.
	ImageComparer() ImageComparer

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}

// NeutralVisualScore is the defined substitute when image comparison is
// unavailable: neither evidence for nor against a match.
const NeutralVisualScore = 50.0

// DescriptionUnavailable is the clearly-marked placeholder stored when the
// photo description service fails.
const DescriptionUnavailable = "[image description unavailable]"
