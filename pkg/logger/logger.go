package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ZapLoggerConfig struct {
	IsDevelopment     bool
	Encoding          string
	Level             string
	DisableCaller     bool
	DisableStacktrace bool
}

// ZapLogger is the logging facade injected into repositories, usecases and
// handlers. It is a thin interface over *zap.Logger so tests can swap in a noop.
type ZapLogger interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	Fatal(msg string, fields ...zap.Field)
	Sync() error
}

type zapLogger struct {
	*zap.Logger
}

func NewZapLogger(cfg *ZapLoggerConfig) ZapLogger {
	level := zapcore.InfoLevel
	if parsed, err := zapcore.ParseLevel(cfg.Level); err == nil {
		level = parsed
	}

	var encoderCfg zapcore.EncoderConfig
	if cfg.IsDevelopment {
		encoderCfg = zap.NewDevelopmentEncoderConfig()
	} else {
		encoderCfg = zap.NewProductionEncoderConfig()
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	var encoder zapcore.Encoder
	if cfg.Encoding == "console" {
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level)

	opts := []zap.Option{}
	if !cfg.DisableCaller {
		opts = append(opts, zap.AddCaller())
	}
	if !cfg.DisableStacktrace {
		opts = append(opts, zap.AddStacktrace(zapcore.ErrorLevel))
	}

	return &zapLogger{zap.New(core, opts...)}
}

// NewNop returns a logger that discards everything. Used in tests.
func NewNop() ZapLogger {
	return &zapLogger{zap.NewNop()}
}
