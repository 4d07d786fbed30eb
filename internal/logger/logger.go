package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Init builds the process logger. Production gets JSON with ISO timestamps,
// everything else gets the colored development encoder.
func Init(level, environment string) (*zap.Logger, error) {
	var lvl zapcore.Level
	switch level {
	case "debug":
		lvl = zapcore.DebugLevel
	case "info":
		lvl = zapcore.InfoLevel
	case "warn":
		lvl = zapcore.WarnLevel
	case "error":
		lvl = zapcore.ErrorLevel
	default:
		lvl = zapcore.InfoLevel
	}

	var log *zap.Logger
	var err error
	if environment == "production" {
		prodConfig := zap.NewProductionConfig()
		prodConfig.Level = zap.NewAtomicLevelAt(lvl)
		prodConfig.EncoderConfig.TimeKey = "timestamp"
		prodConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		log, err = prodConfig.Build(zap.Fields(
			zap.String("service", "order-portal"),
			zap.String("environment", environment),
		))
	} else {
		devConfig := zap.NewDevelopmentConfig()
		devConfig.Level = zap.NewAtomicLevelAt(lvl)
		devConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		log, err = devConfig.Build()
	}
	if err != nil {
		return nil, err
	}

	zap.ReplaceGlobals(log)
	return log, nil
}

// RequestLogger logs every HTTP request after it is handled.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("HTTP Request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		)
	}
}
