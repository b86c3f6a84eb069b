package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// AuditTimeLayout is the timestamp format of audit log lines.
const AuditTimeLayout = "2006-01-02 15:04:05,000"

// NewLogger returns the process logger: JSON lines on stderr.
func NewLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(cfg), zapcore.Lock(os.Stderr), lvl)
	return zap.New(core), nil
}

// NewAuditLogger opens the append-only check log at path. Each entry is a
// single "<timestamp> - <message>" line. The returned close func syncs and
// releases the file.
func NewAuditLogger(path string) (*zap.Logger, func() error, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	sink := newAuditSink(path)
	log := zap.New(NewAuditCore(zapcore.AddSync(sink)))
	closeFn := func() error {
		return multierr.Combine(log.Sync(), sink.Close())
	}
	return log, closeFn, nil
}

// newAuditSink rotates by size only. Rotated files are never pruned, so no
// audit history is lost.
func newAuditSink(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // MB
		MaxBackups: 0,
		MaxAge:     0,
		Compress:   true,
	}
}

// NewAuditCore builds the audit encoder on top of an arbitrary sink.
func NewAuditCore(w zapcore.WriteSyncer) zapcore.Core {
	return zapcore.NewCore(zapcore.NewConsoleEncoder(AuditEncoderConfig()), w, zap.InfoLevel)
}

func AuditEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:          "time",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeTime:       zapcore.TimeEncoderOfLayout(AuditTimeLayout),
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " - ",
	}
}
