package detector

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/nvr-ai/go-facedet/config"
	"github.com/nvr-ai/go-facedet/images"
	"github.com/nvr-ai/go-facedet/logger"
	"github.com/nvr-ai/go-facedet/profiler"
	"github.com/nvr-ai/go-facedet/util"
)

// Job is one image to process.
type Job struct {
	// Input is the source image path.
	Input string
	// Output is where the annotated image is written. Empty skips saving.
	Output string
}

// PlanJobs expands an input path into jobs.
//
// A file becomes a single job and output is used verbatim as its destination.
// A directory becomes one job per image file inside it, sorted by name, each
// written to output as "{stem}_detections{ext}"; the output directory is
// created. An empty output produces jobs that are not saved.
//
// Arguments:
//   - input: An image file or a directory of images.
//   - output: The output file (file input) or directory (directory input).
//
// Returns:
//   - []Job: The jobs in processing order.
//   - error: An error if input does not exist or the output directory cannot be created.
func PlanJobs(input, output string) ([]Job, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, errors.Wrapf(err, "input path does not exist: %s", input)
	}
	if !info.IsDir() {
		return []Job{{Input: input, Output: output}}, nil
	}

	if output != "" {
		if err := os.MkdirAll(output, 0o755); err != nil {
			return nil, errors.Wrapf(err, "failed to create output directory %s", output)
		}
	}

	files, err := util.ListImageFiles(input)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list %s", input)
	}

	jobs := make([]Job, 0, len(files))
	for _, f := range files {
		job := Job{Input: f}
		if output != "" {
			job.Output = util.DetectionsPath(output, f)
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// RunnerArgs configures a Runner.
type RunnerArgs struct {
	Detector *Detector
	// Policy decides whether a failed image stops the run.
	Policy config.FailurePolicy
	// Verbose logs every detection.
	Verbose bool
	// Logger defaults to the process logger.
	Logger *zap.Logger
}

// Runner processes jobs one after another.
type Runner struct {
	detector *Detector
	policy   config.FailurePolicy
	verbose  bool
	log      *zap.Logger
}

// Summary counts the outcome of a run.
type Summary struct {
	RunID      string
	Processed  int
	Failed     int
	Detections int
	Elapsed    time.Duration
	// Stages holds timing statistics for every successfully processed image.
	Stages []profiler.StageStats
}

// NewRunner creates a runner. An empty policy means abort.
func NewRunner(args RunnerArgs) (*Runner, error) {
	if args.Detector == nil {
		return nil, errors.New("detector is required")
	}

	policy := args.Policy
	switch policy {
	case "":
		policy = config.FailurePolicyAbort
	case config.FailurePolicyAbort, config.FailurePolicySkip:
	default:
		return nil, errors.Errorf("unknown failure policy %q", policy)
	}

	log := args.Logger
	if log == nil {
		log = logger.Log()
	}

	return &Runner{
		detector: args.Detector,
		policy:   policy,
		verbose:  args.Verbose,
		log:      log,
	}, nil
}

// Run processes jobs in order.
//
// Under the abort policy the first failure ends the run and is returned.
// Under the skip policy failures are logged and counted, and Run only
// returns an error when ctx is done. Cancellation is checked between images.
//
// Arguments:
//   - ctx: Cancels the run between images and is passed to inference.
//   - jobs: The images to process.
//
// Returns:
//   - Summary: Counts for the images handled before Run returned.
//   - error: The aborting failure or the context error.
func (r *Runner) Run(ctx context.Context, jobs []Job) (Summary, error) {
	summary := Summary{RunID: uuid.NewString()}
	log := r.log.With(zap.String("run_id", summary.RunID))
	prof := profiler.New()
	start := time.Now()

	log.Info("starting detection run",
		zap.Int("images", len(jobs)),
		zap.Float32("threshold", r.detector.Threshold()),
		zap.String("on_error", string(r.policy)),
	)

	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			summary.Elapsed = time.Since(start)
			summary.Stages = prof.Stats()
			return summary, err
		}

		n, err := r.process(ctx, log, prof, job)
		if err != nil {
			if r.policy == config.FailurePolicySkip {
				summary.Failed++
				log.Error("skipping image", zap.String("input", job.Input), zap.Error(err))
				continue
			}
			summary.Elapsed = time.Since(start)
			summary.Stages = prof.Stats()
			return summary, errors.Wrapf(err, "failed to process %s", job.Input)
		}

		summary.Processed++
		summary.Detections += n
	}

	summary.Elapsed = time.Since(start)
	summary.Stages = prof.Stats()
	prof.Log(log)
	log.Info("detection run complete",
		zap.Int("processed", summary.Processed),
		zap.Int("failed", summary.Failed),
		zap.Int("detections", summary.Detections),
		zap.Duration("elapsed", summary.Elapsed),
	)
	return summary, nil
}

func (r *Runner) process(ctx context.Context, log *zap.Logger, prof *profiler.Profiler, job Job) (int, error) {
	img, err := images.Open(job.Input)
	if err != nil {
		return 0, err
	}

	result, err := r.detector.Detect(ctx, img)
	if err != nil {
		return 0, err
	}
	prof.Record(profiler.StagePreprocess, result.Timings.Preprocess)
	prof.Record(profiler.StageInference, result.Timings.Inference)
	prof.Record(profiler.StagePostprocess, result.Timings.PostProcess)

	log.Info("processed image",
		zap.String("input", job.Input),
		zap.Int("width", result.OriginalWidth),
		zap.Int("height", result.OriginalHeight),
		zap.Int("detections", len(result.Detections)),
		zap.Duration("preprocess", result.Timings.Preprocess),
		zap.Duration("inference", result.Timings.Inference),
		zap.Duration("postprocess", result.Timings.PostProcess),
	)
	if r.verbose {
		for i, det := range result.Detections {
			log.Debug("detection",
				zap.String("input", job.Input),
				zap.Int("index", i),
				zap.Float32("confidence", det.Confidence),
				zap.Float32s("bbox", []float32{det.Box.X1, det.Box.Y1, det.Box.X2, det.Box.Y2}),
			)
		}
	}

	if job.Output == "" {
		return len(result.Detections), nil
	}

	Annotate(result.Canvas, result.Detections)
	if err := os.MkdirAll(filepath.Dir(job.Output), 0o755); err != nil {
		return 0, errors.Wrapf(err, "failed to create directory for %s", job.Output)
	}
	if err := images.Save(result.Canvas, job.Output); err != nil {
		return 0, err
	}
	log.Info("saved annotated image", zap.String("output", job.Output))

	return len(result.Detections), nil
}
