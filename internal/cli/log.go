package cli

import (
	"context"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/openscad-ofl/ofltools/pkg/errors"
)

// Verbosity levels accepted by -v/--verbosity.
const (
	VerbositySilent = iota
	VerbosityError
	VerbosityWarn
	VerbosityInfo
	VerbosityDebug
)

// DefaultVerbosity reports errors only.
const DefaultVerbosity = VerbosityError

// levelSilent is above every level the logger emits.
const levelSilent = log.Level(math.MaxInt32)

// levelFor maps a verbosity to a logger level. Out of range values are
// clamped.
func levelFor(verbosity int) log.Level {
	switch {
	case verbosity <= VerbositySilent:
		return levelSilent
	case verbosity == VerbosityError:
		return log.ErrorLevel
	case verbosity == VerbosityWarn:
		return log.WarnLevel
	case verbosity == VerbosityInfo:
		return log.InfoLevel
	default:
		return log.DebugLevel
	}
}

func validateVerbosity(v int) error {
	if v < VerbositySilent || v > VerbosityDebug {
		return errors.New(errors.ErrCodeInvalidInput, "verbosity must be within %d-%d, got %d", VerbositySilent, VerbosityDebug, v)
	}
	return nil
}

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "ran 4 test cases (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logHooks reports renderer and cache events on the context logger at
// debug level.
type logHooks struct{}

func (logHooks) OnInvokeStart(ctx context.Context, argv []string) {
	loggerFromContext(ctx).Debug("renderer start", "command", strings.Join(argv, " "))
}

func (logHooks) OnInvokeComplete(ctx context.Context, argv []string, code int, d time.Duration, err error) {
	l := loggerFromContext(ctx)
	if err != nil {
		l.Debug("renderer error", "program", argv[0], "err", err, "duration", d.Round(time.Millisecond))
		return
	}
	l.Debug("renderer done", "program", argv[0], "code", code, "duration", d.Round(time.Millisecond))
}

func (logHooks) OnCacheHit(ctx context.Context, keyType string) {
	loggerFromContext(ctx).Debug("cache hit", "type", keyType)
}

func (logHooks) OnCacheMiss(ctx context.Context, keyType string) {
	loggerFromContext(ctx).Debug("cache miss", "type", keyType)
}

func (logHooks) OnCacheSet(ctx context.Context, keyType string, size int) {
	loggerFromContext(ctx).Debug("cache set", "type", keyType, "bytes", size)
}
