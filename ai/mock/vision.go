package mock

import (
	"bytes"
	"context"
	"fmt"
)

// MockImageDescriber is a test double for ai.ImageDescriber.
// It allows custom behavior injection via function fields.
type MockImageDescriber struct {
	// DescribeImageFunc is called by DescribeImage if set.
	// If nil, uses default deterministic behavior.
	DescribeImageFunc func(ctx context.Context, image []byte) (string, error)

	callCount int
}

// NewMockImageDescriber creates a mock describer with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockImageDescriber() *MockImageDescriber {
	return &MockImageDescriber{}
}

// DescribeImage returns a deterministic description derived from the payload size.
func (m *MockImageDescriber) DescribeImage(ctx context.Context, image []byte) (string, error) {
	m.callCount++

	if m.DescribeImageFunc != nil {
		return m.DescribeImageFunc(ctx, image)
	}

	return fmt.Sprintf("Item photographed in a %d-byte image.", len(image)), nil
}

// CallCount returns the number of times DescribeImage was called.
func (m *MockImageDescriber) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockImageDescriber) Reset() {
	m.callCount = 0
	m.DescribeImageFunc = nil
}

// MockImageComparer is a test double for ai.ImageComparer.
// It allows custom behavior injection via function fields.
type MockImageComparer struct {
	// CompareImagesFunc is called by CompareImages if set.
	// If nil, uses default deterministic behavior.
	CompareImagesFunc func(ctx context.Context, a, b []byte) (float64, error)

	callCount int
}

// NewMockImageComparer creates a mock comparer with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockImageComparer() *MockImageComparer {
	return &MockImageComparer{}
}

// CompareImages returns 100 for byte-identical images and 10 otherwise,
// which keeps default behavior predictable in tests.
func (m *MockImageComparer) CompareImages(ctx context.Context, a, b []byte) (float64, error) {
	m.callCount++

	if m.CompareImagesFunc != nil {
		return m.CompareImagesFunc(ctx, a, b)
	}

	if bytes.Equal(a, b) {
		return 100, nil
	}
	return 10, nil
}

// CallCount returns the number of times CompareImages was called.
func (m *MockImageComparer) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockImageComparer) Reset() {
	m.callCount = 0
	m.CompareImagesFunc = nil
}
