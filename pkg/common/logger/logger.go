package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is usable before Init so that library packages can log from tests.
var Log = logrus.New()

// Init configures Log from LOG_LEVEL and LOG_FORMAT (json or text) and tags
// every entry with the service name.
func Init(service string) {
	Log.SetOutput(os.Stdout)
	Log.SetFormatter(formatter(os.Getenv("LOG_FORMAT")))
	Log.SetLevel(level(os.Getenv("LOG_LEVEL")))
	Log.ReplaceHooks(make(logrus.LevelHooks))
	if service != "" {
		Log.AddHook(serviceHook(service))
	}
}

func formatter(format string) logrus.Formatter {
	if strings.EqualFold(format, "text") {
		return &logrus.TextFormatter{FullTimestamp: true}
	}
	return &logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"}
}

func level(name string) logrus.Level {
	if name == "" {
		return logrus.InfoLevel
	}
	lvl, err := logrus.ParseLevel(name)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

type serviceHook string

func (h serviceHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h serviceHook) Fire(e *logrus.Entry) error {
	if _, ok := e.Data["service"]; !ok {
		e.Data["service"] = string(h)
	}
	return nil
}

// Silence discards all output, for tests.
func Silence() {
	Log.SetOutput(io.Discard)
}
