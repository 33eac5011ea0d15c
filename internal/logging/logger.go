package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var globalLogger *zap.SugaredLogger

// Init builds the global logger. Production gets JSON output, anything
// else gets the development config.
func Init(appEnv string) error {
	var config zap.Config
	if appEnv == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	globalLogger = logger.Sugar()
	return nil
}

// L returns the global logger, falling back to a production logger when
// Init was not called (tests mostly).
func L() *zap.SugaredLogger {
	if globalLogger == nil {
		logger, _ := zap.NewProduction()
		globalLogger = logger.Sugar()
	}
	return globalLogger
}

// Close flushes buffered log entries.
func Close() error {
	if globalLogger != nil {
		return globalLogger.Sync()
	}
	return nil
}

func Info(msg string, fields ...interface{})  { L().Infow(msg, fields...) }
func Warn(msg string, fields ...interface{})  { L().Warnw(msg, fields...) }
func Error(msg string, fields ...interface{}) { L().Errorw(msg, fields...) }
func Debug(msg string, fields ...interface{}) { L().Debugw(msg, fields...) }
