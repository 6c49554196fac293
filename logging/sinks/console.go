package sinks

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"wildmark/server/logging"
)

// Console renders events through a zap logger so simulation events share the
// process log stream and encoding.
type Console struct {
	logger *zap.Logger
}

func NewConsole(logger *zap.Logger) *Console {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Console{logger: logger}
}

func (s *Console) Write(event logging.Event) error {
	if s == nil || s.logger == nil {
		return nil
	}
	fields := []zap.Field{
		zap.Uint64("tick", event.Tick),
		zap.String("actor", formatEntity(event.Actor)),
	}
	if event.Category != "" {
		fields = append(fields, zap.String("category", event.Category))
	}
	if targets := formatTargets(event.Targets); targets != "" {
		fields = append(fields, zap.String("targets", targets))
	}
	if event.Payload != nil {
		fields = append(fields, zap.Any("payload", event.Payload))
	}
	msg := string(event.Type)
	switch event.Severity {
	case logging.SeverityDebug:
		s.logger.Debug(msg, fields...)
	case logging.SeverityWarn:
		s.logger.Warn(msg, fields...)
	case logging.SeverityError:
		s.logger.Error(msg, fields...)
	default:
		s.logger.Info(msg, fields...)
	}
	return nil
}

func (s *Console) Close(context.Context) error {
	if s == nil || s.logger == nil {
		return nil
	}
	// Sync errors on closed stderr are expected during shutdown.
	_ = s.logger.Sync()
	return nil
}

func formatEntity(ref logging.EntityRef) string {
	if ref.ID == "" {
		return string(ref.Kind)
	}
	if ref.Kind == "" {
		return ref.ID
	}
	return fmt.Sprintf("%s:%s", ref.Kind, ref.ID)
}

func formatTargets(targets []logging.EntityRef) string {
	if len(targets) == 0 {
		return ""
	}
	parts := make([]string, 0, len(targets))
	for _, target := range targets {
		parts = append(parts, formatEntity(target))
	}
	return strings.Join(parts, ",")
}
