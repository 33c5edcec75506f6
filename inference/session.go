package inference

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	ort "github.com/yalue/onnxruntime_go"

	"github.com/nvr-ai/go-facedet/inference/providers"
	"github.com/nvr-ai/go-facedet/models/postprocess"
)

// SessionArgs represents the arguments for creating a new ONNX session.
type SessionArgs struct {
	// ModelPath is the path to the ONNX model file.
	ModelPath string
	// LibraryPath is the ONNX Runtime shared library. Empty selects the platform default.
	LibraryPath string
	// InputShape is the shape of the single input tensor, e.g. [1, 3, 640, 640].
	InputShape []int64
	// InputName overrides the input name discovered from the model.
	InputName string
	// OutputNames overrides the outputs discovered from the model. Their order
	// is the order of the tensors returned by Predict.
	OutputNames []string
	// IntraOpThreads bounds the threads used inside a node. Zero lets ONNX Runtime decide.
	IntraOpThreads int
	// Provider selects the execution provider.
	Provider providers.Config
}

// Stats summarizes the inference calls made through a Session.
type Stats struct {
	Inferences int64
	Total      time.Duration
}

// Mean returns the mean inference duration.
func (s Stats) Mean() time.Duration {
	if s.Inferences == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Inferences)
}

// Session runs a single-input, float32 model with ONNX Runtime and lets the
// runtime allocate its outputs. Calls are serialized.
type Session struct {
	mu          sync.Mutex
	session     *ort.DynamicAdvancedSession
	inputShape  ort.Shape
	inputName   string
	outputNames []string
	stats       Stats
}

// NewSession creates a new ONNX Runtime session.
//
// Order of operations:
//  1. Environment setup: loads the native library once per process.
//  2. Name discovery: reads input and output names from the model unless overridden.
//  3. Session options: intra-op threads, full graph optimization and the execution provider.
//  4. Session creation: loads the model.
//
// Arguments:
//   - args: The arguments for the session.
//
// Returns:
//   - *Session: The session.
//   - error: An error if any step fails.
func NewSession(args SessionArgs) (*Session, error) {
	if args.ModelPath == "" {
		return nil, errors.New("model path is required")
	}
	if len(args.InputShape) == 0 {
		return nil, errors.New("input shape is required")
	}
	if err := InitializeEnvironment(args.LibraryPath); err != nil {
		return nil, err
	}

	inputName, outputNames, err := resolveNames(args)
	if err != nil {
		return nil, err
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		return nil, errors.Wrap(err, "error creating ORT session options")
	}
	defer options.Destroy()

	if err := options.SetIntraOpNumThreads(args.IntraOpThreads); err != nil {
		return nil, errors.Wrap(err, "error setting intra-op threads")
	}
	if err := options.SetGraphOptimizationLevel(ort.GraphOptimizationLevelEnableAll); err != nil {
		return nil, errors.Wrap(err, "error setting graph optimization level")
	}
	if err := providers.Apply(options, args.Provider); err != nil {
		return nil, err
	}

	session, err := ort.NewDynamicAdvancedSession(args.ModelPath, []string{inputName}, outputNames, options)
	if err != nil {
		return nil, errors.Wrapf(err, "error creating ORT session for %s", args.ModelPath)
	}

	return &Session{
		session:     session,
		inputShape:  ort.NewShape(args.InputShape...),
		inputName:   inputName,
		outputNames: outputNames,
	}, nil
}

func resolveNames(args SessionArgs) (string, []string, error) {
	if args.InputName != "" && len(args.OutputNames) > 0 {
		return args.InputName, args.OutputNames, nil
	}

	inputs, outputs, err := ort.GetInputOutputInfo(args.ModelPath)
	if err != nil {
		return "", nil, errors.Wrapf(err, "error reading inputs and outputs of %s", args.ModelPath)
	}
	if len(inputs) == 0 || len(outputs) == 0 {
		return "", nil, errors.Errorf("model %s has %d inputs and %d outputs", args.ModelPath, len(inputs), len(outputs))
	}

	inputName := args.InputName
	if inputName == "" {
		inputName = inputs[0].Name
	}
	outputNames := args.OutputNames
	if len(outputNames) == 0 {
		for _, o := range outputs {
			outputNames = append(outputNames, o.Name)
		}
	}
	return inputName, outputNames, nil
}

// InputName returns the name of the model input fed by Predict.
func (s *Session) InputName() string {
	return s.inputName
}

// OutputNames returns the model outputs in the order Predict returns them.
func (s *Session) OutputNames() []string {
	return append([]string(nil), s.outputNames...)
}

// Stats returns the inference statistics collected so far.
func (s *Session) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Predict runs the model on one input tensor.
//
// Arguments:
//   - ctx: Checked before the run starts. A run in progress is not interrupted.
//   - input: The flattened input tensor matching the session's input shape.
//
// Returns:
//   - [][]float32: A copy of every output tensor, in OutputNames order.
//   - error: An error if the run fails or an output is not a float32 tensor.
func (s *Session) Predict(ctx context.Context, input []float32) ([][]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil, errors.New("session is closed")
	}
	if want := s.inputShape.FlattenedSize(); int64(len(input)) != want {
		return nil, errors.Errorf("input has %d values, shape %v needs %d", len(input), s.inputShape, want)
	}

	tensor, err := ort.NewTensor(s.inputShape, input)
	if err != nil {
		return nil, errors.Wrap(err, "error creating input tensor")
	}
	defer tensor.Destroy()

	outputs := make([]ort.Value, len(s.outputNames))
	defer func() {
		for _, v := range outputs {
			if v != nil {
				v.Destroy()
			}
		}
	}()

	start := time.Now()
	if err := s.session.Run([]ort.Value{tensor}, outputs); err != nil {
		return nil, errors.Wrap(err, "error running ORT session")
	}
	s.stats.Inferences++
	s.stats.Total += time.Since(start)

	result := make([][]float32, len(outputs))
	for i, v := range outputs {
		data, err := float32Data(v)
		if err != nil {
			return nil, errors.Wrapf(err, "output %s", s.outputNames[i])
		}
		result[i] = data
	}
	return result, nil
}

// float32Data copies the contents of a float32 tensor out of native memory.
func float32Data(v ort.Value) ([]float32, error) {
	t, ok := v.(*ort.Tensor[float32])
	if !ok || t == nil {
		return nil, errors.Wrapf(postprocess.ErrMalformedTensor, "got %T, want float32 tensor", v)
	}
	return append([]float32(nil), t.GetData()...), nil
}

// Close releases the native session.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil
	}
	err := s.session.Destroy()
	s.session = nil
	if err != nil {
		return errors.Wrap(err, "error destroying ORT session")
	}
	return nil
}
