// Package logging configures the process-wide logrus logger.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// StderrFile selects stderr instead of a rotated log file.
const StderrFile = "-"

// SetupParams controls where and how logs are written.
type SetupParams struct {
	LogFileName   string
	LogLevel      string
	LogFormatJSON bool
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup applies params to the global logger. The returned Closer releases
// the log file, if one was opened.
func Setup(params SetupParams) (io.Closer, error) {
	if params.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	logrus.SetLevel(GetLevel(params.LogLevel))

	if params.LogFileName == "" || params.LogFileName == StderrFile {
		logrus.SetOutput(os.Stderr)
		return nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(params.LogFileName), 0o755); err != nil {
		return nil, err
	}

	lumberJackLogger := &lumberjack.Logger{
		Filename:   params.LogFileName,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		LocalTime:  false,
		Compress:   true,
	}
	logrus.SetOutput(lumberJackLogger)
	return lumberJackLogger, nil
}

// GetLevel maps a level name to a logrus level. Unknown names fall back to info.
func GetLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return logrus.DebugLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "trace":
		return logrus.TraceLevel
	case "warn", "warning":
		return logrus.WarnLevel
	default:
		return logrus.InfoLevel
	}
}
