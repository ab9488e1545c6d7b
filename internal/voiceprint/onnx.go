package voiceprint

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/meeting-scribe/internal/logger"
	"github.com/nguyentantai21042004/meeting-scribe/internal/speaker"
	ort "github.com/yalue/onnxruntime_go"
)

// minSamples is 0.1s at 16 kHz; shorter slices are mostly silence.
const minSamples = 1600

// ONNXOptions configures a waveform-in, embedding-out speaker model.
type ONNXOptions struct {
	ModelPath   string
	LibraryPath string
	InputName   string
	OutputName  string
	SampleRate  int
	Threads     int
}

type onnxExtractor struct {
	session *ort.DynamicAdvancedSession
	opts    ONNXOptions
	logger  logger.Logger
}

// NewONNX loads the speaker model. The model must take a float32 tensor of
// shape [1, samples] and return the embedding as its single output.
func NewONNX(opts ONNXOptions, log logger.Logger) (Extractor, error) {
	if opts.InputName == "" {
		opts.InputName = "waveform"
	}
	if opts.OutputName == "" {
		opts.OutputName = "embedding"
	}
	if opts.SampleRate == 0 {
		opts.SampleRate = 16000
	}

	if opts.LibraryPath != "" {
		ort.SetSharedLibraryPath(opts.LibraryPath)
	}
	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("initialize onnx environment: %w", err)
		}
	}

	sessOpts, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("create session options: %w", err)
	}
	defer sessOpts.Destroy()

	if err := sessOpts.SetGraphOptimizationLevel(ort.GraphOptimizationLevelEnableAll); err != nil {
		return nil, fmt.Errorf("set graph optimization: %w", err)
	}
	if err := sessOpts.SetIntraOpNumThreads(opts.Threads); err != nil {
		log.Warn(context.Background(), "Failed to set onnx thread count: %v", err)
	}

	session, err := ort.NewDynamicAdvancedSession(
		opts.ModelPath,
		[]string{opts.InputName},
		[]string{opts.OutputName},
		sessOpts,
	)
	if err != nil {
		return nil, fmt.Errorf("create onnx session: %w", err)
	}

	log.Info(context.Background(), "Speaker embedding model loaded: %s", opts.ModelPath)
	return &onnxExtractor{session: session, opts: opts, logger: log}, nil
}

func (e *onnxExtractor) Name() string {
	return "onnx"
}

func (e *onnxExtractor) Extract(ctx context.Context, wavPath string) (speaker.Embedding, error) {
	samples, rate, err := readSamples(wavPath)
	if err != nil {
		return nil, err
	}
	if rate != e.opts.SampleRate {
		return nil, fmt.Errorf("sample rate %d, model expects %d", rate, e.opts.SampleRate)
	}
	if len(samples) < minSamples {
		return nil, fmt.Errorf("%w: %d samples", ErrEmptyAudio, len(samples))
	}

	input, err := ort.NewTensor(ort.NewShape(1, int64(len(samples))), samples)
	if err != nil {
		return nil, fmt.Errorf("create input tensor: %w", err)
	}
	defer input.Destroy()

	outputs := []ort.Value{nil}
	if err := e.session.Run([]ort.Value{input}, outputs); err != nil {
		return nil, fmt.Errorf("inference: %w", err)
	}
	defer outputs[0].Destroy()

	tensor, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("output %s is not a float32 tensor", e.opts.OutputName)
	}

	// Copy out before the tensor is destroyed.
	data := tensor.GetData()
	if len(data) == 0 {
		return nil, ErrEmptyEmbedding
	}
	emb := make(speaker.Embedding, len(data))
	copy(emb, data)
	return emb, nil
}

func (e *onnxExtractor) Close() error {
	if e.session != nil {
		if err := e.session.Destroy(); err != nil {
			return fmt.Errorf("destroy session: %w", err)
		}
	}
	return ort.DestroyEnvironment()
}
