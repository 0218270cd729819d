package logger

import (
	"io"
	"os"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/pkg/errors"
)

var (
	Logger = log.NewNopLogger()
)

// InitLogger points Logger at stderr, filtered at lvl.
func InitLogger(lvl string) error {
	l, err := New(os.Stderr, lvl)
	if err != nil {
		return err
	}
	Logger = l
	return nil
}

// New builds a logfmt logger writing to w. lvl is one of debug, info, warn
// or error.
func New(w io.Writer, lvl string) (log.Logger, error) {
	opt, err := levelOption(lvl)
	if err != nil {
		return nil, err
	}
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = level.NewFilter(logger, opt)
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	return log.With(logger, "caller", log.Caller(3)), nil
}

func levelOption(lvl string) (level.Option, error) {
	switch lvl {
	case "debug":
		return level.AllowDebug(), nil
	case "", "info":
		return level.AllowInfo(), nil
	case "warn":
		return level.AllowWarn(), nil
	case "error":
		return level.AllowError(), nil
	}
	return nil, errors.Errorf("unknown log level %q", lvl)
}

func WithConn(connID, remote string, l log.Logger) log.Logger {
	return log.With(l, "conn", connID, "remote", remote)
}
