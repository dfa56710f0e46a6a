package services

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapAnnotationTracer writes one JSON line per resolver decision.
type ZapAnnotationTracer struct {
	logger *zap.Logger
}

// NewZapAnnotationTracer opens (or appends to) path and traces into it.
func NewZapAnnotationTracer(path string) (*ZapAnnotationTracer, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.Sampling = nil
	cfg.EncoderConfig.TimeKey = ""
	cfg.EncoderConfig.CallerKey = ""
	cfg.EncoderConfig.StacktraceKey = ""
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to open annotation trace %s: %w", path, err)
	}
	return newZapAnnotationTracer(logger), nil
}

func newZapAnnotationTracer(logger *zap.Logger) *ZapAnnotationTracer {
	return &ZapAnnotationTracer{logger: logger}
}

func (t *ZapAnnotationTracer) TraceAnnotation(trace AnnotationTrace) {
	fields := []zap.Field{
		zap.String("input", trace.Input),
		zap.String("cleaned", trace.Cleaned),
		zap.String("decision", string(trace.Decision)),
	}
	if trace.Core != "" {
		fields = append(fields, zap.String("core", trace.Core))
	}
	if trace.Title != "" {
		fields = append(fields, zap.String("title", trace.Title))
	}
	if trace.KoKR != "" {
		fields = append(fields, zap.String("koKR", trace.KoKR))
	}
	t.logger.Debug("annotation", fields...)
}

// Close flushes buffered trace lines.
func (t *ZapAnnotationTracer) Close() error {
	if err := t.logger.Sync(); err != nil {
		return fmt.Errorf("failed to flush annotation trace: %w", err)
	}
	return nil
}
