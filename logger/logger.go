// Package logger - Process-wide structured logging.
package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logMu sync.RWMutex
	log   *zap.Logger
	sugar *zap.SugaredLogger
)

// InitProduction installs a JSON logger at info level.
func InitProduction() error {
	return build(zap.NewProductionConfig())
}

// InitDevelopment installs a console logger at debug level.
func InitDevelopment() error {
	return build(zap.NewDevelopmentConfig())
}

// Init installs the development logger when verbose is set and the
// production logger otherwise.
func Init(verbose bool) error {
	if verbose {
		return InitDevelopment()
	}
	return InitProduction()
}

func build(cfg zap.Config) error {
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	l, err := cfg.Build()
	if err != nil {
		return err
	}
	Set(l)
	return nil
}

// Set replaces the package logger and the zap globals.
func Set(l *zap.Logger) {
	logMu.Lock()
	defer logMu.Unlock()

	zap.ReplaceGlobals(l)
	if log != nil {
		_ = log.Sync()
	}
	log = l
	sugar = l.Sugar()
}

// Log returns the package logger, or the zap global (a no-op logger until one is installed).
func Log() *zap.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	if log != nil {
		return log
	}
	return zap.L()
}

// S returns the sugared package logger.
func S() *zap.SugaredLogger {
	logMu.RLock()
	defer logMu.RUnlock()
	if sugar != nil {
		return sugar
	}
	return zap.S()
}

// Sync flushes buffered log entries.
func Sync() {
	logMu.RLock()
	defer logMu.RUnlock()
	if log != nil {
		_ = log.Sync()
	}
}
