package utils

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	unsupportedLogLevelTemplateConstant  = "unsupported log level %q"
	unsupportedLogFormatTemplateConstant = "unsupported log format %q"
	logTimeKeyConstant                   = "ts"
	logLevelKeyConstant                  = "level"
	logMessageKeyConstant                = "msg"
	logNameKeyConstant                   = "logger"
	logCallerKeyConstant                 = "caller"
	logStacktraceKeyConstant             = "stacktrace"
)

// LogLevel enumerates supported logging levels.
type LogLevel string

// LogFormat enumerates supported logging encodings.
type LogFormat string

const (
	// LogLevelDebug enables debug diagnostics.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo enables informational diagnostics.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn enables warnings and errors.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError limits diagnostics to errors.
	LogLevelError LogLevel = "error"

	// LogFormatStructured emits JSON diagnostics.
	LogFormatStructured LogFormat = "structured"
	// LogFormatConsole emits human-readable diagnostics and enables the console logger.
	LogFormatConsole LogFormat = "console"
)

// LoggerOutputs bundles the diagnostic logger with the human-facing console logger.
type LoggerOutputs struct {
	DiagnosticLogger *zap.Logger
	ConsoleLogger    *zap.Logger
}

// LoggerFactory builds zap loggers writing to standard error.
type LoggerFactory struct{}

// NewLoggerFactory constructs a LoggerFactory.
func NewLoggerFactory() LoggerFactory {
	return LoggerFactory{}
}

// CreateLoggerOutputs builds loggers for the requested level and format. The console logger is a
// no-op unless the console format is selected.
func (factory LoggerFactory) CreateLoggerOutputs(logLevel LogLevel, logFormat LogFormat) (LoggerOutputs, error) {
	level, levelError := resolveZapLevel(logLevel)
	if levelError != nil {
		return LoggerOutputs{}, levelError
	}

	errorSink := zapcore.Lock(zapcore.AddSync(os.Stderr))
	levelEnabler := zap.NewAtomicLevelAt(level)

	switch logFormat {
	case LogFormatStructured:
		diagnosticCore := zapcore.NewCore(zapcore.NewJSONEncoder(diagnosticEncoderConfig()), errorSink, levelEnabler)
		return LoggerOutputs{
			DiagnosticLogger: zap.New(diagnosticCore),
			ConsoleLogger:    zap.NewNop(),
		}, nil
	case LogFormatConsole:
		diagnosticConfig := diagnosticEncoderConfig()
		diagnosticConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		diagnosticCore := zapcore.NewCore(zapcore.NewConsoleEncoder(diagnosticConfig), errorSink, levelEnabler)
		consoleCore := zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEncoderConfig()), errorSink, levelEnabler)
		return LoggerOutputs{
			DiagnosticLogger: zap.New(diagnosticCore),
			ConsoleLogger:    zap.New(consoleCore),
		}, nil
	default:
		return LoggerOutputs{}, fmt.Errorf(unsupportedLogFormatTemplateConstant, logFormat)
	}
}

func resolveZapLevel(logLevel LogLevel) (zapcore.Level, error) {
	switch logLevel {
	case LogLevelDebug:
		return zapcore.DebugLevel, nil
	case LogLevelInfo:
		return zapcore.InfoLevel, nil
	case LogLevelWarn:
		return zapcore.WarnLevel, nil
	case LogLevelError:
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf(unsupportedLogLevelTemplateConstant, logLevel)
	}
}

func diagnosticEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        logTimeKeyConstant,
		LevelKey:       logLevelKeyConstant,
		NameKey:        logNameKeyConstant,
		CallerKey:      logCallerKeyConstant,
		MessageKey:     logMessageKeyConstant,
		StacktraceKey:  logStacktraceKeyConstant,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

func consoleEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		MessageKey:     logMessageKeyConstant,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
}
