package logger

import (
	"log"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Init builds the global logger. format is "json" or "console"; level is a zap level name.
func Init(level, format string) {
	var cfg zap.Config
	if strings.EqualFold(format, "console") {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	sugar = l.Sugar()
}

func get() *zap.SugaredLogger {
	once.Do(func() {
		if sugar == nil {
			l, err := zap.NewDevelopment(zap.AddCallerSkip(1))
			if err != nil {
				l = zap.NewNop()
			}
			sugar = l.Sugar()
		}
	})
	return sugar
}

// Sync flushes buffered entries, call it on shutdown.
func Sync() {
	_ = get().Sync()
}

// Debug, Info, Warn and Error take a message followed by key/value pairs.
// A trailing value without a key (the old `logger.Error("msg", err)` form) is logged under "detail".
func Debug(msg string, keysAndValues ...any) {
	get().Debugw(msg, normalize(keysAndValues)...)
}

func Info(msg string, keysAndValues ...any) {
	get().Infow(msg, normalize(keysAndValues)...)
}

func Warn(msg string, keysAndValues ...any) {
	get().Warnw(msg, normalize(keysAndValues)...)
}

func Error(msg string, keysAndValues ...any) {
	get().Errorw(msg, normalize(keysAndValues)...)
}

func normalize(kv []any) []any {
	if len(kv) == 0 {
		return kv
	}
	out := make([]any, 0, len(kv)+1)
	for i := 0; i < len(kv); i++ {
		if _, ok := kv[i].(string); ok && i+1 < len(kv) {
			out = append(out, kv[i], kv[i+1])
			i++
			continue
		}
		out = append(out, "detail", kv[i])
	}
	return out
}
