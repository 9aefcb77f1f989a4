package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

var Log *logrus.Logger

func Init(level, format string) {
	Log = logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	if format == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	Log.SetOutput(os.Stdout)
}

func WithFields(fields logrus.Fields) *logrus.Entry {
	return get().WithFields(fields)
}

func Info(args ...interface{}) {
	get().Info(args...)
}

func Infof(format string, args ...interface{}) {
	get().Infof(format, args...)
}

func Error(args ...interface{}) {
	get().Error(args...)
}

func Errorf(format string, args ...interface{}) {
	get().Errorf(format, args...)
}

func Warn(args ...interface{}) {
	get().Warn(args...)
}

func Debug(args ...interface{}) {
	get().Debug(args...)
}

func Fatalf(format string, args ...interface{}) {
	get().Fatalf(format, args...)
}

// get lazily initializes the logger so packages can log before Init runs
// (tests never call Init).
func get() *logrus.Logger {
	if Log == nil {
		Init("info", "text")
	}
	return Log
}
