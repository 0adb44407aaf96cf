package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/krisalay/ttl-cache/config"
)

type logrusLogger struct {
	logger logrus.Ext1FieldLogger

	// file is the log file tee, nil when logging only to stderr.
	file *os.File
}

func NewLogrusLogger(cfg *config.LoggingConfig) Logger {
	l := logrus.New()
	if cfg.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			DisableQuote:    true,
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		l.WithFields(logrus.Fields{
			"log_level": cfg.Level,
		}).Warn("Log level not found. Fallback to 'info'")
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	var file *os.File
	if cfg.FilePath != "" {
		file, err = os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err == nil {
			l.SetOutput(io.MultiWriter(l.Out, file))
		} else {
			file = nil
			l.WithError(err).Warn("Failed to log to file, logging to stderr only")
		}
	}

	return &logrusLogger{
		logger: l,
		file:   file,
	}
}

// Close releases the log file opened by NewLogrusLogger. Loggers derived
// with WithField and friends share the file, so only the root is closed.
func (l *logrusLogger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Close closes l when it holds a resource and is a no-op otherwise.
func Close(l Logger) error {
	if c, ok := l.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// NewNop discards everything. The cache uses it when no logger is given.
func NewNop() Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return &logrusLogger{logger: l}
}

func (l *logrusLogger) Trace(args ...any) {
	l.logger.Trace(args...)
}

func (l *logrusLogger) Debug(args ...any) {
	l.logger.Debug(args...)
}

func (l *logrusLogger) Info(args ...any) {
	l.logger.Info(args...)
}

func (l *logrusLogger) Warn(args ...any) {
	l.logger.Warn(args...)
}

func (l *logrusLogger) Error(args ...any) {
	l.logger.Error(args...)
}

func (l *logrusLogger) Fatal(args ...any) {
	l.logger.Fatal(args...)
}

func (l *logrusLogger) WithFields(fields Fields) Logger {
	return &logrusLogger{
		logger: l.logger.WithFields(logrus.Fields(fields)),
	}
}

func (l *logrusLogger) WithField(key string, value any) Logger {
	return &logrusLogger{
		logger: l.logger.WithField(key, value),
	}
}

func (l *logrusLogger) WithError(err error) Logger {
	return &logrusLogger{
		logger: l.logger.WithError(err),
	}
}
