package common

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/ValentinKolb/wActor/lib/actor"
	"github.com/lni/dragonboat/v4/logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// --------------------------------------------------------------------------
// Custom Logger (implements dragenboats logger.ILogger)
// --------------------------------------------------------------------------

// wActorLogger implements the ILogger interface on top of a zap logger
type wActorLogger struct {
	name   string
	level  logger.LogLevel
	logger *zap.SugaredLogger
}

func (l *wActorLogger) SetLevel(level logger.LogLevel) {
	l.level = level
}

func (l *wActorLogger) Debugf(format string, args ...interface{}) {
	if l.level >= logger.DEBUG {
		l.logger.Debugf(format, args...)
	}
}

func (l *wActorLogger) Infof(format string, args ...interface{}) {
	if l.level >= logger.INFO {
		l.logger.Infof(format, args...)
	}
}

func (l *wActorLogger) Warningf(format string, args ...interface{}) {
	if l.level >= logger.WARNING {
		l.logger.Warnf(format, args...)
	}
}

func (l *wActorLogger) Errorf(format string, args ...interface{}) {
	if l.level >= logger.ERROR {
		l.logger.Errorf(format, args...)
	}
}

func (l *wActorLogger) Panicf(format string, args ...interface{}) {
	if l.level >= logger.CRITICAL {
		panic(fmt.Sprintf(format, args...))
	}
}

// --------------------------------------------------------------------------
// Logger Factory
// --------------------------------------------------------------------------

var (
	baseLogger     *zap.Logger
	baseLoggerOnce sync.Once
	factoryOnce    sync.Once
)

// ZapLogger returns the zap logger all loggers of the application write to.
// The output layout is "time | LEVEL | name | message".
func ZapLogger() *zap.Logger {
	baseLoggerOnce.Do(func() {
		encoderConfig := zapcore.EncoderConfig{
			TimeKey:          "time",
			LevelKey:         "level",
			NameKey:          "name",
			MessageKey:       "msg",
			StacktraceKey:    "stacktrace",
			LineEnding:       zapcore.DefaultLineEnding,
			EncodeLevel:      paddedLevelEncoder,
			EncodeTime:       zapcore.TimeEncoderOfLayout("2006/01/02 15:04:05"),
			EncodeDuration:   zapcore.StringDurationEncoder,
			EncodeName:       paddedNameEncoder,
			ConsoleSeparator: " | ",
		}
		core := zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.Lock(os.Stdout),
			zap.DebugLevel,
		)
		baseLogger = zap.New(core)
	})
	return baseLogger
}

// CreateLogger implements the Factory interface of dragonboats logger package
func CreateLogger(pkgName string) logger.ILogger {
	return &wActorLogger{
		name:   pkgName,
		level:  logger.INFO,
		logger: ZapLogger().Named(pkgName).Sugar(),
	}
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func paddedLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(fmt.Sprintf("%-5s", l.CapitalString()))
}

func paddedNameEncoder(name string, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(fmt.Sprintf("%-15s", name))
}

// ParseLogLevel converts a string level to logger.LogLevel
func ParseLogLevel(level string) (logger.LogLevel, error) {
	switch strings.ToLower(level) {
	case "debug":
		return logger.DEBUG, nil
	case "info":
		return logger.INFO, nil
	case "warning", "warn":
		return logger.WARNING, nil
	case "error":
		return logger.ERROR, nil
	default:
		return logger.INFO, fmt.Errorf("invalid log level: %s. must be one of debug, info, warn, error", level)
	}
}

// toZapLevel maps a logger.LogLevel to the zap level with the same meaning
func toZapLevel(level logger.LogLevel) zapcore.Level {
	switch level {
	case logger.DEBUG:
		return zap.DebugLevel
	case logger.WARNING:
		return zap.WarnLevel
	case logger.ERROR, logger.CRITICAL:
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

// --------------------------------------------------------------------------
// Logger initialization
// --------------------------------------------------------------------------

// InitLoggers installs the logger factory and sets the level of all loggers
func InitLoggers(level string) error {
	logLevel, err := ParseLogLevel(level)
	if err != nil {
		return err
	}

	// Set as the global logger factory (only once, the loggers are created lazily)
	factoryOnce.Do(func() {
		logger.SetLoggerFactory(CreateLogger)
	})

	logger.GetLogger("rpc").SetLevel(logLevel)
	logger.GetLogger("transport/rpc").SetLevel(logLevel)
	logger.GetLogger("wasm").SetLevel(logLevel)
	logger.GetLogger("cli").SetLevel(logLevel)

	// library packages take a zap logger
	actor.SetLogger(ZapLogger().Named("actor").WithOptions(zap.IncreaseLevel(toZapLevel(logLevel))))

	return nil
}

// WasmLogger returns the zap logger for wasm engines at the given level
func WasmLogger(level string) *zap.Logger {
	logLevel, err := ParseLogLevel(level)
	if err != nil {
		logLevel = logger.INFO
	}
	return ZapLogger().Named("wasm").WithOptions(zap.IncreaseLevel(toZapLevel(logLevel)))
}
