package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/nvr-ai/go-facedet/config"
	"github.com/nvr-ai/go-facedet/detector"
	"github.com/nvr-ai/go-facedet/inference"
	"github.com/nvr-ai/go-facedet/inference/providers"
	"github.com/nvr-ai/go-facedet/logger"
	"github.com/nvr-ai/go-facedet/models"
	"github.com/nvr-ai/go-facedet/models/model"
)

// options holds the parsed command line.
type options struct {
	input      string
	output     string
	configPath string
	model      string
	library    string
	provider   string
	onError    string
	threshold  float64
	verbose    bool
	// set records the flags given explicitly, by long name.
	set map[string]bool
}

// aliases maps short flags to their long names.
var aliases = map[string]string{
	"i": "input",
	"o": "output",
	"c": "config",
	"m": "model",
	"t": "threshold",
	"v": "verbose",
}

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	defaults := config.Default()
	opts := options{set: map[string]bool{}}

	fs := flag.NewFlagSet("facedet", flag.ContinueOnError)
	fs.SetOutput(stderr)
	for _, name := range []string{"i", "input"} {
		fs.StringVar(&opts.input, name, "", "Input image file or directory (required)")
	}
	for _, name := range []string{"o", "output"} {
		fs.StringVar(&opts.output, name, "", "Output image file, or output directory for directory input")
	}
	for _, name := range []string{"c", "config"} {
		fs.StringVar(&opts.configPath, name, "", "YAML configuration file")
	}
	for _, name := range []string{"m", "model"} {
		fs.StringVar(&opts.model, name, defaults.ModelPath, "Path to the ONNX model")
	}
	for _, name := range []string{"t", "threshold"} {
		fs.Float64Var(&opts.threshold, name, float64(defaults.ConfidenceThreshold), "Confidence threshold (0.0 to 1.0)")
	}
	for _, name := range []string{"v", "verbose"} {
		fs.BoolVar(&opts.verbose, name, false, "Log every detection")
	}
	fs.StringVar(&opts.library, "lib", "", "ONNX Runtime shared library path")
	fs.StringVar(&opts.provider, "provider", "", "Execution provider: cpu, cuda, coreml or openvino")
	fs.StringVar(&opts.onError, "on-error", "", "Batch failure policy: abort or skip")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, errors.Errorf("unexpected arguments: %v", fs.Args())
	}
	fs.Visit(func(f *flag.Flag) {
		name := f.Name
		if long, ok := aliases[name]; ok {
			name = long
		}
		opts.set[name] = true
	})
	if opts.input == "" {
		return opts, errors.New("an input path is required (-i)")
	}
	return opts, nil
}

// applyFlags overrides the configuration with the flags given explicitly.
func applyFlags(cfg config.Config, opts options) config.Config {
	if opts.set["model"] {
		cfg.ModelPath = opts.model
	}
	if opts.set["threshold"] {
		cfg.ConfidenceThreshold = float32(opts.threshold)
	}
	if opts.set["lib"] {
		cfg.LibraryPath = opts.library
	}
	if opts.set["provider"] {
		cfg.Provider.Backend = providers.ProviderBackend(opts.provider)
	}
	if opts.set["on-error"] {
		cfg.OnError = config.FailurePolicy(opts.onError)
	}
	return cfg
}

func run(args []string, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	if err := logger.Init(opts.verbose); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}
	defer logger.Sync()
	log := logger.Log()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	cfg = applyFlags(cfg, opts)
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	m, err := models.NewModel(model.NewModelArgs{
		Name:      model.ModelNameSCRFD,
		Path:      cfg.ModelPath,
		InputSide: cfg.InputSide(),
		Mean:      cfg.InputMean,
		Std:       cfg.InputStd,
	})
	if err != nil {
		return err
	}

	jobs, err := detector.PlanJobs(opts.input, opts.output)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		log.Warn("no images found", zap.String("input", opts.input))
		return nil
	}

	defer func() {
		if err := inference.DestroyEnvironment(); err != nil {
			log.Warn("failed to destroy ORT environment", zap.Error(err))
		}
	}()
	session, err := inference.NewEngineBuilder().
		WithLibraryPath(cfg.LibraryPath).
		WithModel(m.Options()).
		WithProvider(cfg.Provider).
		WithIntraOpThreads(cfg.IntraThreads).
		WithIONames(cfg.InputName, cfg.OutputNames).
		Build()
	if err != nil {
		return err
	}
	log.Info("model loaded",
		zap.String("model", cfg.ModelPath),
		zap.String("provider", string(cfg.Provider.Backend)),
		zap.String("input", session.InputName()),
		zap.Strings("outputs", session.OutputNames()),
	)

	d, err := detector.New(m, session, cfg.ConfidenceThreshold)
	if err != nil {
		_ = session.Close()
		return err
	}
	defer func() {
		if err := d.Close(); err != nil {
			log.Warn("failed to close session", zap.Error(err))
		}
	}()

	runner, err := detector.NewRunner(detector.RunnerArgs{
		Detector: d,
		Policy:   cfg.OnError,
		Verbose:  opts.verbose,
		Logger:   log,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := runner.Run(ctx, jobs)
	stats := session.Stats()
	log.Info("inference stats",
		zap.String("run_id", summary.RunID),
		zap.Int64("inferences", stats.Inferences),
		zap.Duration("mean", stats.Mean()),
	)
	return err
}
