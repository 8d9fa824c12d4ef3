package logger

import (
	"fmt"

	"github.com/Leopold1975/blog_platform/internal/pkg/config"
	"go.uber.org/zap"
)

type Logger interface {
	Debugf(template string, args ...interface{})
	Info(args ...interface{})
	Infof(template string, args ...interface{})
	Warnf(template string, args ...interface{})
	Error(args ...interface{})
	Errorf(template string, args ...interface{})
	Sync() error
}

type ZapLogger struct {
	*zap.SugaredLogger
}

func New(cfg config.Logger) (ZapLogger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return ZapLogger{}, fmt.Errorf("parse level error: %w", err)
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = level
	zcfg.Encoding = "json"
	zcfg.EncoderConfig.TimeKey = "time"

	zcfg.OutputPaths = []string{"stdout"}
	if len(cfg.Output) != 0 {
		zcfg.OutputPaths = cfg.Output
	}

	zcfg.ErrorOutputPaths = []string{"stderr"}
	if len(cfg.ErrOutput) != 0 {
		zcfg.ErrorOutputPaths = cfg.ErrOutput
	}

	l, err := zcfg.Build()
	if err != nil {
		return ZapLogger{}, fmt.Errorf("build logger error: %w", err)
	}

	return ZapLogger{l.Sugar()}, nil
}

// Nop discards everything. Used by tests.
func Nop() ZapLogger {
	return ZapLogger{zap.NewNop().Sugar()}
}
