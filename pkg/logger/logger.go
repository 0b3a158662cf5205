package logger

import (
	"fmt"
	"path"
	"runtime"

	log "github.com/sirupsen/logrus"
)

// staticFields stamps the same fields on every entry, e.g. the service name and version.
type staticFields log.Fields

func (h staticFields) Levels() []log.Level {
	return log.AllLevels
}

func (h staticFields) Fire(e *log.Entry) error {
	for k, v := range h {
		if _, ok := e.Data[k]; !ok {
			e.Data[k] = v
		}
	}
	return nil
}

// SetupLogger configures the global logrus logger. Fields, when given, are added to
// every line.
func SetupLogger(level string, fields ...log.Fields) {
	loggerLevel, err := log.ParseLevel(level)
	log.SetReportCaller(true)

	log.SetFormatter(&log.JSONFormatter{
		CallerPrettyfier: func(frame *runtime.Frame) (function string, file string) {
			return "", fmt.Sprintf("%s:%d", path.Base(frame.File), frame.Line)
		},
		TimestampFormat: "2006-01-02 15:04:05",
	})

	hooks := make(log.LevelHooks)
	for _, f := range fields {
		if len(f) > 0 {
			hooks.Add(staticFields(f))
		}
	}
	log.StandardLogger().ReplaceHooks(hooks)

	if err != nil {
		log.Infof("Level setup default INFO, err: %v", err)
		log.SetLevel(log.InfoLevel)
	} else {
		log.SetLevel(loggerLevel)
	}
}
