package openai

import (
	"context"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/refindhq/refind/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const describePrompt = "You are an expert lost and found assistant. Describe this item " +
	"in detail: color, brand, material, size, condition, logos, damage, unique features. " +
	"Write in full sentences."

const comparePrompt = "Compare these two images. Are they the same physical item? " +
	"Answer with ONLY a number from 0 to 100. No words, no explanation."

var firstNumber = regexp.MustCompile(`\d+(\.\d+)?`)

// Vision implements ai.ImageDescriber and ai.ImageComparer using an
// OpenAI-compatible multimodal chat API.
type Vision struct {
	client llms.Model
	logger *slog.Logger
}

// newVision is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newVision(config *ai.Config) (*Vision, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.VisionHost),
		openai.WithToken("none"),
		openai.WithModel(config.VisionModel),
	)
	if err != nil {
		return nil, err
	}

	return &Vision{
		client: client,
		logger: slog.Default().With("component", "openai-vision"),
	}, nil
}

// NewImageDescriber creates a photo description service using the provided
// configuration.
//
// Returns ai.ImageDescriber interface to enforce abstraction.
func NewImageDescriber(config *ai.Config) (ai.ImageDescriber, error) {
	return newVision(config)
}

// NewImageComparer creates a photo comparison service using the provided
// configuration.
//
// Returns ai.ImageComparer interface to enforce abstraction.
func NewImageComparer(config *ai.Config) (ai.ImageComparer, error) {
	return newVision(config)
}

// DescribeImage asks the vision model for a detailed textual description of
// the item in the photo.
func (v *Vision) DescribeImage(ctx context.Context, image []byte) (string, error) {
	v.logger.Debug("describing image", "bytes", len(image))

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(describePrompt),
				llms.BinaryPart(http.DetectContentType(image), image),
			},
		},
	}

	response, err := v.client.GenerateContent(ctx, content, llms.WithTemperature(0.0))
	if err != nil {
		v.logger.Error("failed to describe image", "err", err)
		return "", err
	}
	if len(response.Choices) == 0 {
		v.logger.Warn("vision model returned no choices")
		return "", nil
	}

	return strings.TrimSpace(response.Choices[0].Content), nil
}

// CompareImages asks the vision model whether two photos show the same item
// and parses its 0-100 verdict. A reply with no parseable number yields the
// neutral score rather than an error.
func (v *Vision) CompareImages(ctx context.Context, a, b []byte) (float64, error) {
	v.logger.Debug("comparing images", "bytesA", len(a), "bytesB", len(b))

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(comparePrompt),
				llms.BinaryPart(http.DetectContentType(a), a),
				llms.BinaryPart(http.DetectContentType(b), b),
			},
		},
	}

	response, err := v.client.GenerateContent(ctx, content, llms.WithTemperature(0.0))
	if err != nil {
		v.logger.Error("failed to compare images", "err", err)
		return 0, err
	}
	if len(response.Choices) == 0 {
		v.logger.Warn("vision model returned no choices")
		return ai.NeutralVisualScore, nil
	}

	reply := strings.TrimSpace(response.Choices[0].Content)
	match := firstNumber.FindString(reply)
	if match == "" {
		v.logger.Warn("no similarity number in vision reply", "reply", reply)
		return ai.NeutralVisualScore, nil
	}

	score, err := strconv.ParseFloat(match, 64)
	if err != nil {
		v.logger.Warn("unparseable similarity number", "match", match, "err", err)
		return ai.NeutralVisualScore, nil
	}

	// Clamp: models occasionally answer out of range
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score, nil
}
