package loggers

import (
	"fmt"
	"log"

	"github.com/spiceai/specs/pkg/util"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	zapLogger *zap.Logger
)

func ZapLogger() *zap.Logger {
	if zapLogger != nil {
		return zapLogger
	}

	var err error
	if util.IsDebug() {
		zapLogger, err = zap.NewDevelopment()
	} else {
		zapLogger, err = zap.NewProduction()
	}
	if err != nil {
		// Fall back to standard logging
		log.Println(fmt.Errorf("unable to create Zap logger: %w", err))
		return zap.NewNop()
	}

	return zapLogger
}

// Tees the process logger into a rotating JSON log file under logDir.
// Loggers obtained before the call keep writing to the console only.
func UseFileLogger(name string, logDir string) (string, error) {
	fileLogger, logFilePath, err := NewFileLogger(name, logDir)
	if err != nil {
		return "", err
	}

	zapLogger = zap.New(zapcore.NewTee(ZapLogger().Core(), fileLogger.Core()))
	return logFilePath, nil
}

func ZapLoggerSync() {
	if zapLogger != nil {
		err := zapLogger.Sync()
		if err != nil {
			// Swallow errors in sync
			// https://github.com/uber-go/zap/issues/880
			return
		}
	}
}
