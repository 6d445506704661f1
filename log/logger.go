// Package log is a thin key/value facade over logrus used across sealchain.
package log

import (
	"io"
	"os"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/sirupsen/logrus"
)

const timestampFormat = "2006-01-02T15:04:05.000"

// SetLogger configures level and format of the package logger.
// Levels follow logrus: 0 panic ... 4 info, 5 debug, 6 trace.
func SetLogger(logLevel uint32, jsonFormat, colorFormat bool) {
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.Level(logLevel))
	if jsonFormat {
		logrus.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: timestampFormat,
		})
		return
	}
	logrus.SetFormatter(&logrus.TextFormatter{
		ForceColors:     colorFormat,
		DisableColors:   !colorFormat,
		ForceQuote:      true,
		FullTimestamp:   true,
		TimestampFormat: timestampFormat,
		DisableSorting:  true,
	})
}

// SetLogFile duplicates log output into a rotating file.
// A zero rotation or maxAge keeps the rotatelogs defaults (1 day, 7 days).
func SetLogFile(logFile string, rotation, maxAge time.Duration) error {
	opts := []rotatelogs.Option{rotatelogs.WithLinkName(logFile)}
	if rotation > 0 {
		opts = append(opts, rotatelogs.WithRotationTime(rotation))
	}
	if maxAge > 0 {
		opts = append(opts, rotatelogs.WithMaxAge(maxAge))
	}
	writer, err := rotatelogs.New(logFile+".%Y%m%d%H", opts...)
	if err != nil {
		return err
	}
	logrus.SetOutput(io.MultiWriter(os.Stdout, writer))
	return nil
}

// SetOutput redirects log output, mainly for tests.
func SetOutput(w io.Writer) {
	logrus.SetOutput(w)
}

// WithFields turns alternating key/value pairs into a logrus entry.
func WithFields(ctx ...interface{}) *logrus.Entry {
	length := len(ctx)
	if length%2 != 0 {
		Debugf("log fields number %v is not even", length)
	}
	fields := make(logrus.Fields)
	for k := 0; k+2 <= length; k += 2 {
		key, ok := ctx[k].(string)
		if ok {
			fields[key] = ctx[k+1]
		} else {
			Debugf("log field key '%v' is not string", ctx[k])
		}
	}
	return logrus.WithFields(fields)
}

func Trace(msg string, ctx ...interface{}) {
	WithFields(ctx...).Trace(msg)
}

func Tracef(format string, args ...interface{}) {
	logrus.Tracef(format, args...)
}

func Debug(msg string, ctx ...interface{}) {
	WithFields(ctx...).Debug(msg)
}

func Debugf(format string, args ...interface{}) {
	logrus.Debugf(format, args...)
}

func Info(msg string, ctx ...interface{}) {
	WithFields(ctx...).Info(msg)
}

func Infof(format string, args ...interface{}) {
	logrus.Infof(format, args...)
}

func Println(msg ...interface{}) {
	logrus.Println(msg...)
}

func Warn(msg string, ctx ...interface{}) {
	WithFields(ctx...).Warn(msg)
}

func Warnf(format string, args ...interface{}) {
	logrus.Warnf(format, args...)
}

func Error(msg string, ctx ...interface{}) {
	WithFields(ctx...).Error(msg)
}

func Errorf(format string, args ...interface{}) {
	logrus.Errorf(format, args...)
}

func Fatal(msg string, ctx ...interface{}) {
	WithFields(ctx...).Fatal(msg)
}

func Fatalf(format string, args ...interface{}) {
	logrus.Fatalf(format, args...)
}
