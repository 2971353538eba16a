package logger

import (
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug
	case "info", "":
		return Info
	case "warn", "warning":
		return Warn
	case "error":
		return Error
	default:
		return Info
	}
}

func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return "info"
	}
}

func (l Level) zerolog() zerolog.Level {
	switch l {
	case Debug:
		return zerolog.DebugLevel
	case Warn:
		return zerolog.WarnLevel
	case Error:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	default:
		return FormatText
	}
}

type Logger interface {
	With(fields map[string]any) Logger

	Debug(msg string, fields map[string]any)
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

// LevelSetter lo implementan los loggers que aceptan cambio de nivel en caliente
// (recarga de config).
type LevelSetter interface {
	SetLevel(Level)
}

// ZeroLogger implementa Logger sobre zerolog.
// Los loggers derivados con With comparten el nivel con su padre.
type ZeroLogger struct {
	zl    zerolog.Logger
	level *levelRef
}

type levelRef struct {
	v atomic.Int32
}

func newLevelRef(lvl zerolog.Level) *levelRef {
	r := &levelRef{}
	r.v.Store(int32(lvl))
	return r
}

func (r *levelRef) get() zerolog.Level { return zerolog.Level(r.v.Load()) }

type Options struct {
	Level  Level
	Format Format
	App    string

	// Out es opcional (default os.Stdout); útil en tests.
	Out io.Writer
}

func New(opts Options) Logger {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}
	if format == FormatText {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: true}
	}

	ctx := zerolog.New(out).With().Timestamp()
	if app := strings.TrimSpace(opts.App); app != "" {
		ctx = ctx.Str("app", app)
	}

	return &ZeroLogger{zl: ctx.Logger(), level: newLevelRef(opts.Level.zerolog())}
}

// NewFromEnv crea logger desde env:
// - LOG_LEVEL=debug|info|warn|error (default info)
// - LOG_FORMAT=text|json (default text)
// - APP_NAME=zoo-admin (opcional)
func NewFromEnv() Logger {
	return New(Options{
		Level:  ParseLevel(os.Getenv("LOG_LEVEL")),
		Format: ParseFormat(os.Getenv("LOG_FORMAT")),
		App:    os.Getenv("APP_NAME"),
	})
}

// Nop descarta todo; para tests.
func Nop() Logger {
	return &ZeroLogger{zl: zerolog.Nop(), level: newLevelRef(zerolog.Disabled)}
}

func (l *ZeroLogger) With(fields map[string]any) Logger {
	if len(fields) == 0 {
		return l
	}
	ctx := l.zl.With()
	for k, v := range fields {
		if strings.TrimSpace(k) == "" {
			continue
		}
		ctx = ctx.Interface(k, v)
	}
	return &ZeroLogger{zl: ctx.Logger(), level: l.level}
}

func (l *ZeroLogger) SetLevel(lvl Level) {
	l.level.v.Store(int32(lvl.zerolog()))
}

func (l *ZeroLogger) Debug(msg string, fields map[string]any) { l.log(zerolog.DebugLevel, msg, fields) }
func (l *ZeroLogger) Info(msg string, fields map[string]any)  { l.log(zerolog.InfoLevel, msg, fields) }
func (l *ZeroLogger) Warn(msg string, fields map[string]any)  { l.log(zerolog.WarnLevel, msg, fields) }
func (l *ZeroLogger) Error(msg string, fields map[string]any) { l.log(zerolog.ErrorLevel, msg, fields) }

func (l *ZeroLogger) log(lvl zerolog.Level, msg string, fields map[string]any) {
	cur := l.level.get()
	if cur == zerolog.Disabled || lvl < cur {
		return
	}

	ev := l.zl.WithLevel(lvl)
	for k, v := range fields {
		if strings.TrimSpace(k) == "" {
			continue
		}
		if err, ok := v.(error); ok {
			ev = ev.AnErr(k, err)
			continue
		}
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
}
