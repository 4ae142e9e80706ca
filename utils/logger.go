package utils

import (
	"log"
	"sync"

	"eventify/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Logger is the application logger. Use GetLogger to access it.
	Logger     *zap.Logger
	loggerOnce sync.Once
)

// InitializeLogger builds the logger for the current environment. Production logs JSON
// at info, development logs colored console output at debug; LOG_LEVEL overrides both.
func InitializeLogger() {
	var cfg zap.Config
	if config.IsProduction() {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	if lvl, err := zapcore.ParseLevel(config.AppConfig.LogLevel); err == nil && config.AppConfig.LogLevel != "" {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	logger, err := cfg.Build(zap.Fields(zap.String("app", "eventify")))
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	Logger = logger
	zap.ReplaceGlobals(Logger)
}

// GetLogger returns the application logger, building it on first use.
func GetLogger() *zap.Logger {
	loggerOnce.Do(func() {
		if Logger == nil {
			InitializeLogger()
		}
	})
	return Logger
}
