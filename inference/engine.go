// Package inference - Inference engine interface and implementations.
package inference

import (
	"context"

	"github.com/pkg/errors"

	"github.com/nvr-ai/go-facedet/inference/providers"
	"github.com/nvr-ai/go-facedet/models/model"
)

// Engine runs a network on a preprocessed input tensor.
type Engine interface {
	// Predict returns the flattened output tensors in the model's output order.
	Predict(ctx context.Context, input []float32) ([][]float32, error)
	Close() error
}

var _ Engine = (*Session)(nil)

// EngineBuilder assembles an ONNX Runtime session with a fluent API.
// The first error sticks and is returned by Build.
type EngineBuilder struct {
	args SessionArgs
	err  error
}

// NewEngineBuilder creates a new engine builder using the CPU provider.
//
// Returns:
//   - *EngineBuilder: The engine builder.
func NewEngineBuilder() *EngineBuilder {
	return &EngineBuilder{args: SessionArgs{Provider: providers.DefaultConfig()}}
}

// WithLibraryPath sets the ONNX Runtime shared library path.
func (b *EngineBuilder) WithLibraryPath(path string) *EngineBuilder {
	b.args.LibraryPath = path
	return b
}

// WithModel sets the model file and derives the [1, 3, side, side] input shape.
//
// Arguments:
//   - m: The description of the loaded model.
//
// Returns:
//   - *EngineBuilder: The engine builder.
func (b *EngineBuilder) WithModel(m model.BaseModel) *EngineBuilder {
	if b.HasError() {
		return b
	}
	if m.Path == "" {
		b.err = errors.New("model path is required")
		return b
	}
	if m.InputSide <= 0 {
		b.err = errors.Errorf("invalid input side %d", m.InputSide)
		return b
	}
	side := int64(m.InputSide)
	b.args.ModelPath = m.Path
	b.args.InputShape = []int64{1, 3, side, side}
	return b
}

// WithProvider sets the execution provider.
func (b *EngineBuilder) WithProvider(config providers.Config) *EngineBuilder {
	if b.HasError() {
		return b
	}
	if _, err := providers.ParseBackend(string(config.Backend)); err != nil {
		b.err = err
		return b
	}
	b.args.Provider = config
	return b
}

// WithIntraOpThreads sets the intra-op thread count. Zero lets the runtime decide.
func (b *EngineBuilder) WithIntraOpThreads(n int) *EngineBuilder {
	if b.HasError() {
		return b
	}
	if n < 0 {
		b.err = errors.Errorf("invalid intra-op thread count %d", n)
		return b
	}
	b.args.IntraOpThreads = n
	return b
}

// WithIONames overrides the input and output names discovered from the model.
// Empty values keep discovery.
func (b *EngineBuilder) WithIONames(input string, outputs []string) *EngineBuilder {
	b.args.InputName = input
	b.args.OutputNames = outputs
	return b
}

// HasError reports whether a previous step failed.
func (b *EngineBuilder) HasError() bool {
	return b.err != nil
}

// Args returns the session arguments collected so far.
func (b *EngineBuilder) Args() SessionArgs {
	return b.args
}

// Build creates the session.
//
// Returns:
//   - *Session: The session.
//   - error: The first builder error, or the session creation error.
func (b *EngineBuilder) Build() (*Session, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.args.ModelPath == "" {
		return nil, errors.New("model path is required")
	}
	return NewSession(b.args)
}
