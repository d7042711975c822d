// Package inference wraps the ONNX Runtime sessions that execute the
// Pangu-Weather models. One session exists per cadence; each consumes
// a pressure-level and a surface tensor and produces outputs of the
// same shapes.
package inference

import (
	"fmt"
	"os"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/meteocima/pangu-runner/fields"
)

// Input and output names baked into the Pangu-Weather ONNX graphs.
var (
	inputNames  = []string{"input", "input_surface"}
	outputNames = []string{"output", "output_surface"}
)

// Options sizes the inference engine. Threads is the intra-op thread
// count of each session; Library optionally points at the ONNX Runtime
// shared library when it is not on the default search path.
type Options struct {
	Threads int
	Library string
}

// Setup initializes the ONNX Runtime environment. It must be called
// once before any session is created, and Teardown must be called when
// the run is over.
func Setup(opts Options) error {
	if opts.Library != "" {
		ort.SetSharedLibraryPath(opts.Library)
	}
	if err := ort.InitializeEnvironment(); err != nil {
		return fmt.Errorf("cannot initialize onnxruntime: %w", err)
	}
	return nil
}

// Teardown releases the ONNX Runtime environment.
func Teardown() {
	_ = ort.DestroyEnvironment()
}

// CheckArtifact verifies that a model artifact exists and is a regular
// file, without loading it.
func CheckArtifact(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("model artifact missing: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("model artifact %s is a directory", path)
	}
	return nil
}

// Session is one loaded forecasting model. It implements
// cascade.Runner.
type Session struct {
	artifact string
	session  *ort.DynamicAdvancedSession
}

// NewSession loads the model artifact into an ONNX Runtime session
// configured like the original driver: fixed intra-op thread count,
// CPU memory arena and memory pattern disabled.
func NewSession(artifact string, opts Options) (*Session, error) {
	if err := CheckArtifact(artifact); err != nil {
		return nil, err
	}

	so, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("cannot create session options: %w", err)
	}
	defer so.Destroy()

	threads := opts.Threads
	if threads <= 0 {
		threads = 1
	}
	if err := so.SetIntraOpNumThreads(threads); err != nil {
		return nil, err
	}
	if err := so.SetCpuMemArena(false); err != nil {
		return nil, err
	}
	if err := so.SetMemPattern(false); err != nil {
		return nil, err
	}

	sess, err := ort.NewDynamicAdvancedSession(artifact, inputNames, outputNames, so)
	if err != nil {
		return nil, fmt.Errorf("cannot load %s: %w", artifact, err)
	}
	return &Session{artifact: artifact, session: sess}, nil
}

// Infer runs one model invocation. The returned tensors own their data;
// they do not alias ONNX Runtime memory.
func (s *Session) Infer(pl, sfc *fields.Tensor) (*fields.Tensor, *fields.Tensor, error) {
	inPl, err := ort.NewTensor(ort.NewShape(toInt64(pl.Shape)...), pl.Data)
	if err != nil {
		return nil, nil, err
	}
	defer inPl.Destroy()

	inSfc, err := ort.NewTensor(ort.NewShape(toInt64(sfc.Shape)...), sfc.Data)
	if err != nil {
		return nil, nil, err
	}
	defer inSfc.Destroy()

	outputs := []ort.Value{nil, nil}
	if err := s.session.Run([]ort.Value{inPl, inSfc}, outputs); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", s.artifact, err)
	}

	outPl, err := fromValue(outputs[0])
	if err != nil {
		return nil, nil, err
	}
	outSfc, err := fromValue(outputs[1])
	if err != nil {
		return nil, nil, err
	}
	return outPl, outSfc, nil
}

// Close releases the underlying session.
func (s *Session) Close() error {
	return s.session.Destroy()
}

func fromValue(v ort.Value) (*fields.Tensor, error) {
	t, ok := v.(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("model returned a non-float32 output")
	}
	defer t.Destroy()

	shape := t.GetShape()
	out := fields.NewTensor(toInt(shape)...)
	copy(out.Data, t.GetData())
	return out, nil
}

func toInt64(shape []int) []int64 {
	out := make([]int64, len(shape))
	for i, d := range shape {
		out[i] = int64(d)
	}
	return out
}

func toInt(shape []int64) []int {
	out := make([]int, len(shape))
	for i, d := range shape {
		out[i] = int(d)
	}
	return out
}
