package main

import (
	"bytes"
	"flag"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvr-ai/go-facedet/config"
	"github.com/nvr-ai/go-facedet/inference/providers"
)

// TestParseFlags validates short and long flags and explicit-flag tracking.
//
// Arguments:
//   - t: Testing context for assertions and error reporting.
func TestParseFlags(t *testing.T) {
	var stderr bytes.Buffer
	opts, err := parseFlags([]string{"-i", "photos", "--output", "out", "-t", "0.7", "-v", "-on-error", "skip"}, &stderr)
	require.NoError(t, err)

	assert.Equal(t, "photos", opts.input)
	assert.Equal(t, "out", opts.output)
	assert.Equal(t, 0.7, opts.threshold)
	assert.True(t, opts.verbose)
	assert.Equal(t, "det_10g.onnx", opts.model)
	assert.Equal(t, map[string]bool{
		"input":     true,
		"output":    true,
		"threshold": true,
		"verbose":   true,
		"on-error":  true,
	}, opts.set)
}

// TestParseFlagsErrors validates rejection of incomplete command lines.
func TestParseFlagsErrors(t *testing.T) {
	var stderr bytes.Buffer

	_, err := parseFlags(nil, &stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input path is required")

	_, err = parseFlags([]string{"-i", "a.jpg", "extra"}, &stderr)
	assert.Error(t, err)

	_, err = parseFlags([]string{"-h"}, &stderr)
	assert.True(t, errors.Is(err, flag.ErrHelp))

	_, err = parseFlags([]string{"-t", "high"}, &stderr)
	assert.Error(t, err)
}

// TestApplyFlags validates that only explicit flags override the configuration.
func TestApplyFlags(t *testing.T) {
	base := config.Default()
	base.ModelPath = "/models/from_config.onnx"
	base.ConfidenceThreshold = 0.3

	var stderr bytes.Buffer
	opts, err := parseFlags([]string{"-i", "a.jpg", "-provider", "cuda", "-lib", "/opt/ort.so"}, &stderr)
	require.NoError(t, err)

	cfg := applyFlags(base, opts)
	assert.Equal(t, "/models/from_config.onnx", cfg.ModelPath)
	assert.Equal(t, float32(0.3), cfg.ConfidenceThreshold)
	assert.Equal(t, providers.CUDAProviderBackend, cfg.Provider.Backend)
	assert.Equal(t, "/opt/ort.so", cfg.LibraryPath)
	assert.Equal(t, config.FailurePolicyAbort, cfg.OnError)

	opts, err = parseFlags([]string{"-i", "a.jpg", "-m", "other.onnx", "--threshold", "0.9"}, &stderr)
	require.NoError(t, err)
	cfg = applyFlags(base, opts)
	assert.Equal(t, "other.onnx", cfg.ModelPath)
	assert.InDelta(t, 0.9, cfg.ConfidenceThreshold, 1e-6)
}

// TestRunRejectsInvalidConfig validates that configuration errors stop the run early.
func TestRunRejectsInvalidConfig(t *testing.T) {
	var stderr bytes.Buffer
	err := run([]string{"-i", t.TempDir(), "-t", "2"}, &stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}
