package logger

import (
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.Logger with forensics-specific functionality
type Logger struct {
	*zap.Logger
	serviceName string
}

// New creates a new logger instance
func New(serviceName, environment string, debug bool) (*Logger, error) {
	var config zap.Config

	if environment == "production" {
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if debug {
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	// Add service metadata
	config.InitialFields = map[string]interface{}{
		"service": serviceName,
		"env":     environment,
		"pid":     os.Getpid(),
	}

	zapLogger, err := config.Build(
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
	)
	if err != nil {
		return nil, err
	}

	return &Logger{
		Logger:      zapLogger,
		serviceName: serviceName,
	}, nil
}

// NewNop returns a no-op logger for tests.
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop(), serviceName: "test"}
}

// Named returns a named sub-logger
func (l *Logger) Named(name string) *Logger {
	return &Logger{
		Logger:      l.Logger.Named(name),
		serviceName: l.serviceName,
	}
}

// WithAnalysis returns a logger with analysis-run context
func (l *Logger) WithAnalysis(analysisID string) *Logger {
	return &Logger{
		Logger:      l.With(zap.String("analysis_id", analysisID)),
		serviceName: l.serviceName,
	}
}

// AnalysisStarted logs the start of an analysis run
func (l *Logger) AnalysisStarted(analysisID string, txCount, whitelistSize int) {
	l.Info("analysis started",
		zap.String("analysis_id", analysisID),
		zap.Int("tx_count", txCount),
		zap.Int("whitelist_size", whitelistSize),
	)
}

// GraphBuilt logs graph construction metrics
func (l *Logger) GraphBuilt(analysisID string, nodes, edges int) {
	l.Info("transaction graph built",
		zap.String("analysis_id", analysisID),
		zap.Int("nodes", nodes),
		zap.Int("edges", edges),
	)
}

// CycleDetectionCompleted logs cycle detector results
func (l *Logger) CycleDetectionCompleted(analysisID string, cycles int) {
	l.Info("cycle detection completed",
		zap.String("analysis_id", analysisID),
		zap.Int("cycles", cycles),
	)
}

// SmurfingDetectionCompleted logs smurfing detector results
func (l *Logger) SmurfingDetectionCompleted(analysisID string, fanIn, fanOut int) {
	l.Info("smurfing detection completed",
		zap.String("analysis_id", analysisID),
		zap.Int("fan_in_rings", fanIn),
		zap.Int("fan_out_rings", fanOut),
	)
}

// ShellDetectionCompleted logs shell network detector results
func (l *Logger) ShellDetectionCompleted(analysisID string, chains int) {
	l.Info("shell network detection completed",
		zap.String("analysis_id", analysisID),
		zap.Int("chains", chains),
	)
}

// AnalysisCompleted logs the completion of an analysis run
func (l *Logger) AnalysisCompleted(analysisID string, flagged, rings int, duration time.Duration) {
	l.Info("analysis completed",
		zap.String("analysis_id", analysisID),
		zap.Int("accounts_flagged", flagged),
		zap.Int("fraud_rings", rings),
		zap.Int64("duration_ms", duration.Milliseconds()),
	)
}

// AnalysisFailed logs a failed analysis run
func (l *Logger) AnalysisFailed(analysisID string, err error) {
	l.Warn("analysis failed",
		zap.String("analysis_id", analysisID),
		zap.Error(err),
	)
}

// Helper field functions

// ErrorField creates an error field
func ErrorField(err error) zap.Field {
	return zap.Error(err)
}

// StringField creates a string field
func StringField(key, value string) zap.Field {
	return zap.String(key, value)
}

// IntField creates an int field
func IntField(key string, value int) zap.Field {
	return zap.Int(key, value)
}

// Float64Field creates a float64 field
func Float64Field(key string, value float64) zap.Field {
	return zap.Float64(key, value)
}
