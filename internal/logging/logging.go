package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/gajzzs/focus/internal/config"
)

// New builds the focus logger. Everything at info and above goes to the rotating
// activity log; warnings and errors (debug too when verbose) are mirrored to stderr.
func New(cfg *config.Config, verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006/01/02 15:04:05",
	})
	logger.SetLevel(logrus.InfoLevel)
	logger.SetOutput(io.Discard)

	var setupErr error
	if path := cfg.LogFile(); path != "" {
		setupErr = prepareLogFile(path)
		if setupErr == nil || errors.Is(setupErr, config.ErrOwnership) {
			logger.SetOutput(&lumberjack.Logger{
				Filename:   path,
				MaxSize:    cfg.Log.MaxSize,
				MaxBackups: cfg.Log.MaxBackups,
				MaxAge:     cfg.Log.MaxAge,
			})
		}
	}

	levels := []logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel, logrus.WarnLevel}
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
		levels = append(levels, logrus.InfoLevel, logrus.DebugLevel)
	}
	logger.AddHook(NewWriterHook(os.Stderr, levels...))

	if setupErr != nil {
		logger.WithError(setupErr).Warn("activity log not fully set up")
	}
	return logger
}

// prepareLogFile creates the focus directory and the log file up front so that,
// under sudo, both can be handed back to the invoking user. lumberjack keeps the
// owner on rotation.
func prepareLogFile(path string) error {
	dirErr := config.EnsureDir(filepath.Dir(path))
	if dirErr != nil && !errors.Is(dirErr, config.ErrOwnership) {
		return dirErr
	}

	if _, err := os.Stat(path); err == nil {
		return dirErr
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	f.Close()
	return errors.Join(dirErr, config.ChownToInvoker(path))
}

// WriterHook copies entries of the given levels to an extra writer.
type WriterHook struct {
	out       io.Writer
	levels    []logrus.Level
	formatter logrus.Formatter
}

func NewWriterHook(out io.Writer, levels ...logrus.Level) *WriterHook {
	return &WriterHook{
		out:    out,
		levels: levels,
		formatter: &logrus.TextFormatter{
			DisableTimestamp: true,
		},
	}
}

func (h *WriterHook) Levels() []logrus.Level {
	return h.levels
}

func (h *WriterHook) Fire(entry *logrus.Entry) error {
	b, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = h.out.Write(b)
	return err
}
