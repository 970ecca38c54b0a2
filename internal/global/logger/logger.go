package logger

import "gitlab.com/static-ip-db.net/internal/adapter/logging"

var Logger = logging.NewZapLogger()

// Configure replaces the package logger once the config is loaded
func Configure(level string, debug bool) {
	Logger = logging.NewZapLoggerWithLevel(level, debug)
}

func Info(msg string, args ...interface{}) {
	Logger.Info(msg, args...)
}

func Error(msg string, args ...interface{}) {
	Logger.Error(msg, args...)
}

func Debug(msg string, args ...interface{}) {
	Logger.Debug(msg, args...)
}

func Warn(msg string, args ...interface{}) {
	Logger.Warn(msg, args...)
}
