// Package logging provides the package-level logger used across pagestore.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
)

var std = newDefault()

func newDefault() *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&CustomFormatter{})
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	return l
}

// Config controls logger initialization.
type Config struct {
	Level string // debug, info, warn, error
}

// Init (re)configures the package-level logger.
func Init(cfg Config) {
	std.SetLevel(parseLevel(cfg.Level))
}

// CustomFormatter renders log lines as "[time] [LEVL] (caller) message".
type CustomFormatter struct{}

func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	timestamp := entry.Time.Format("15:04:05 2006/01/02")

	level := strings.ToUpper(entry.Level.String())
	if len(level) > 4 {
		level = level[:4]
	}

	return []byte(fmt.Sprintf("[%s] [%s] (%s) %s\n",
		timestamp, level, caller(), entry.Message)), nil
}

func caller() string {
	for i := 2; i < 20; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}
		if strings.Contains(file, "/logrus/") || strings.Contains(file, "logging.go") {
			continue
		}
		fn := runtime.FuncForPC(pc).Name()
		return fmt.Sprintf("%s:%s:%d", filepath.Base(file), fn, line)
	}
	return "unknown:unknown:0"
}

func parseLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

func Debugf(format string, args ...interface{}) { std.Debugf(format, args...) }
func Infof(format string, args ...interface{})  { std.Infof(format, args...) }
func Warnf(format string, args ...interface{})  { std.Warnf(format, args...) }
func Errorf(format string, args ...interface{}) { std.Errorf(format, args...) }
