package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Log struct {
	LogLevel zapcore.Level `envconfig:"LOG_LEVEL"`
	Sink     string        `envconfig:"LOG_SINK"`
}

// NewLogger builds a JSON logger named after the service. An empty Sink writes to stdout.
func NewLogger(cfg Log, name string) *zap.Logger {
	sink := cfg.Sink
	if sink == "" {
		sink = "stdout"
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	zcfg.OutputPaths = []string{sink}
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.InitialFields = map[string]any{"service": name}
	if host, err := os.Hostname(); err == nil {
		zcfg.InitialFields["host"] = host
	}

	log, err := zcfg.Build()
	if err != nil {
		log = zap.NewExample()
		log.Error("logger config", zap.Error(err))
	}
	return log.Named(name)
}
