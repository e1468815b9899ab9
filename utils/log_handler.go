package utils

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is shared by every handler. It stays a nop until InitLogger runs so
// package-level code and tests can log without setup.
var Logger = zap.NewNop()

func InitLogger() {
	config := zap.NewProductionConfig()
	if os.Getenv(ENV) == ENV_DEVELOPMENT {
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := config.Build()
	if err != nil {
		panic("[LOG] Failed to initialize logger: " + err.Error())
	}

	Logger = logger
}
