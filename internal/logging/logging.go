// Package logging configures the process wide logrus logger.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	rotates "github.com/lestrrat-go/file-rotatelogs"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"

	"github.com/Lukas-Klein/azure-config-cli/internal/config"
)

// ParseLevel maps a config level name to a logrus level. Unknown names
// fall back to WARN.
func ParseLevel(name string) logrus.Level {
	switch strings.ToUpper(name) {
	case "TRACE":
		return logrus.TraceLevel
	case "DEBUG":
		return logrus.DebugLevel
	case "INFO":
		return logrus.InfoLevel
	case "WARN", "WARNING":
		return logrus.WarnLevel
	case "ERROR":
		return logrus.ErrorLevel
	case "FATAL":
		return logrus.FatalLevel
	case "PANIC":
		return logrus.PanicLevel
	default:
		return logrus.WarnLevel
	}
}

// Init sends logs to stderr and, when cfg.Log.Dir is set, to a time
// rotated file in that directory as well.
func Init(cfg *config.Config, stderr io.Writer) error {
	logrus.SetOutput(stderr)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	logrus.SetLevel(ParseLevel(cfg.Log.Level))

	if cfg.Log.Dir == "" {
		return nil
	}
	if err := os.MkdirAll(cfg.Log.Dir, 0o755); err != nil {
		return err
	}
	logFileName := filepath.Join(cfg.Log.Dir, cfg.Log.Filename)

	maxAge := time.Duration(cfg.Log.MaxAge) * time.Hour
	rotateTime := time.Duration(cfg.Log.RotateTime) * time.Hour
	if rotateTime <= 0 {
		rotateTime = time.Hour
	}
	logWriter, err := rotates.New(
		logFileName+".%Y%m%d%H%M",
		rotates.WithMaxAge(maxAge),
		rotates.WithRotationTime(rotateTime),
	)
	if err != nil {
		return err
	}

	logrus.AddHook(lfshook.NewHook(lfshook.WriterMap{
		logrus.TraceLevel: logWriter,
		logrus.DebugLevel: logWriter,
		logrus.InfoLevel:  logWriter,
		logrus.WarnLevel:  logWriter,
		logrus.ErrorLevel: logWriter,
		logrus.FatalLevel: logWriter,
		logrus.PanicLevel: logWriter,
	}, &logrus.TextFormatter{}))
	return nil
}
