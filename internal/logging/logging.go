package logging

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	FormatAuto    = "auto"
	FormatConsole = "console"
	FormatJSON    = "json"
)

type Options struct {
	// Level is info, debug, or a logr verbosity such as "2".
	Level string
	// Format is auto, console or json. Auto picks console on a terminal.
	Format string
	Output io.Writer
}

// New builds a zap-backed logr.Logger. The returned func flushes buffered
// entries and should be deferred by the caller.
func New(opts Options) (logr.Logger, func(), error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return logr.Discard(), func() {}, err
	}
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var encoder zapcore.Encoder
	switch resolveFormat(opts.Format, out) {
	case FormatConsole:
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	case FormatJSON:
		encoder = zapcore.NewJSONEncoder(encCfg)
	default:
		return logr.Discard(), func() {}, fmt.Errorf("unsupported log format: %s", opts.Format)
	}

	zl := zap.New(zapcore.NewCore(encoder, zapcore.AddSync(out), level))
	return zapr.NewLogger(zl), func() { _ = zl.Sync() }, nil
}

// ParseLevel maps a level name or logr verbosity to the zap level zapr
// expects: V(n) logs at zap level -n.
func ParseLevel(name string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	}
	v, err := strconv.Atoi(name)
	if err != nil || v < 0 {
		return zapcore.InfoLevel, fmt.Errorf("unsupported log level: %s", name)
	}
	return zapcore.Level(-v), nil
}

func resolveFormat(format string, out io.Writer) string {
	if format != "" && format != FormatAuto {
		return format
	}
	if f, ok := out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return FormatConsole
	}
	return FormatJSON
}
