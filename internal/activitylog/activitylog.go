package activitylog

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	frontendFile    = "frontend/frontend.log"
	actionsFile     = "frontend/user_actions/actions.log"
	permissionsFile = "frontend/permissions/permissions.log"

	actionsLogger     = "frontend.actions"
	permissionsLogger = "frontend.permissions"
	apiLogger         = "frontend.api"
)

type Config struct {
	Root       string
	Enabled    bool
	MaxSizeMB  int
	MaxBackups int
}

// Logger writes the panel's own activity as JSON lines into the frontend log tree,
// where the log analyzer picks it up.
type Logger struct {
	actions     *log.Logger
	permissions *log.Logger
	api         *log.Logger
	closers     []io.Closer
}

type usernameKey struct{}

// WithUsername attaches the acting user to ctx so every record written under it names them.
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey{}, username)
}

func usernameFrom(ctx context.Context) string {
	name, _ := ctx.Value(usernameKey{}).(string)
	return name
}

func New(cfg Config) *Logger {
	if !cfg.Enabled {
		return Nop()
	}

	rotating := func(name string) *lumberjack.Logger {
		return &lumberjack.Logger{
			Filename:   filepath.Join(cfg.Root, filepath.FromSlash(name)),
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
		}
	}
	frontend := rotating(frontendFile)
	actions := rotating(actionsFile)
	permissions := rotating(permissionsFile)

	return &Logger{
		actions:     newJSONLogger(io.MultiWriter(actions, frontend)),
		permissions: newJSONLogger(io.MultiWriter(permissions, frontend)),
		api:         newJSONLogger(frontend),
		closers:     []io.Closer{frontend, actions, permissions},
	}
}

// Nop returns a logger that drops every record.
func Nop() *Logger {
	return &Logger{}
}

func newJSONLogger(out io.Writer) *log.Logger {
	l := log.New()
	l.SetOutput(out)
	l.SetLevel(log.InfoLevel)
	l.SetFormatter(&log.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
		FieldMap: log.FieldMap{
			log.FieldKeyTime: "timestamp",
			log.FieldKeyMsg:  "message",
		},
	})
	return l
}

func (l *Logger) Close() error {
	var errs []error
	for _, c := range l.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

func withUser(ctx context.Context, fields log.Fields, username string) log.Fields {
	if username == "" {
		username = usernameFrom(ctx)
	}
	if username != "" {
		fields["username"] = username
	}
	return fields
}

func entry(l *log.Logger, name string, fields log.Fields) *log.Entry {
	fields["logger"] = name
	return l.WithTime(time.Now().UTC()).WithFields(fields)
}
