// Package log provides gated, file-backed structured logging on top of logrus.
package log

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/anisan-cli/peel/filesystem"
	"github.com/anisan-cli/peel/key"
	"github.com/anisan-cli/peel/where"
	logrus "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// enabled indicates whether logs.write was set when Setup ran.
var enabled bool

// Setup opens today's log file and configures format and level.
// When logging is disabled every emission below is discarded.
func Setup() error {
	enabled = viper.GetBool(key.LogsWrite)
	if !enabled {
		return nil
	}

	dir := where.Logs()
	if dir == "" {
		return errors.New("log directory path is empty")
	}

	path := filepath.Join(dir, time.Now().Format("2006-01-02")+".log")
	f, err := filesystem.API().OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logrus.SetOutput(f)

	if viper.GetBool(key.LogsJson) {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{DisableColors: true})
	}

	level, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	return nil
}

// Logger tags every entry with a fixed set of fields.
type Logger struct {
	fields logrus.Fields
}

// For returns a Logger whose entries carry component=name.
func For(name string) *Logger {
	return &Logger{fields: logrus.Fields{"component": name}}
}

// With returns a copy of l with one more field.
func (l *Logger) With(k string, v any) *Logger {
	fields := make(logrus.Fields, len(l.fields)+1)
	for fk, fv := range l.fields {
		fields[fk] = fv
	}
	fields[k] = v
	return &Logger{fields: fields}
}

func (l *Logger) entry() *logrus.Entry {
	return logrus.WithFields(l.fields)
}

func (l *Logger) Errorf(format string, args ...any) {
	if enabled {
		l.entry().Errorf(format, args...)
	}
}

func (l *Logger) Warnf(format string, args ...any) {
	if enabled {
		l.entry().Warnf(format, args...)
	}
}

func (l *Logger) Infof(format string, args ...any) {
	if enabled {
		l.entry().Infof(format, args...)
	}
}

func (l *Logger) Debugf(format string, args ...any) {
	if enabled {
		l.entry().Debugf(format, args...)
	}
}

func (l *Logger) Tracef(format string, args ...any) {
	if enabled {
		l.entry().Tracef(format, args...)
	}
}

// Package-level emissions, used where no component applies.

func Error(args ...any) {
	if enabled {
		logrus.Error(args...)
	}
}

func Errorf(format string, args ...any) {
	if enabled {
		logrus.Errorf(format, args...)
	}
}

func Warnf(format string, args ...any) {
	if enabled {
		logrus.Warnf(format, args...)
	}
}

func Infof(format string, args ...any) {
	if enabled {
		logrus.Infof(format, args...)
	}
}

func Debugf(format string, args ...any) {
	if enabled {
		logrus.Debugf(format, args...)
	}
}
