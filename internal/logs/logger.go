package logs

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	Logger  = newLogger(io.Discard)
	logFile *os.File
	mu      sync.Mutex
)

func newLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.DebugLevel)
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return l
}

// Initialize points the logger at debug.log inside logDir. Until it is
// called, log output is discarded.
func Initialize(logDir string) error {
	mu.Lock()
	defer mu.Unlock()

	if logDir == "" {
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	logPath := filepath.Join(logDir, "debug.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		Logger.WithError(err).WithField("path", logPath).Error("failed to open log file")
		return err
	}

	if logFile != nil {
		logFile.Close()
	}

	logFile = f
	Logger.SetOutput(f)
	Logger.WithField("path", logPath).Info("logger initialized")

	return nil
}

// Close closes the log file and goes back to discarding output.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if logFile == nil {
		return nil
	}
	Logger.SetOutput(io.Discard)
	err := logFile.Close()
	logFile = nil
	return err
}
