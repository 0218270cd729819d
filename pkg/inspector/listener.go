package inspector

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/jpillora/backoff"
	"github.com/pkg/errors"
)

// Listener accepts connections and hands each one to a Handler on its own
// goroutine.
type Listener struct {
	handler *Handler
	logger  log.Logger
	wg      sync.WaitGroup
}

func NewListener(h *Handler, logger log.Logger) *Listener {
	return &Listener{handler: h, logger: logger}
}

// ListenAndServe binds cfg.ListenAddress() and serves until ctx is cancelled.
func (l *Listener) ListenAndServe(ctx context.Context, cfg *Config) error {
	ln, err := net.Listen("tcp", cfg.ListenAddress())
	if err != nil {
		return errors.Wrapf(err, "failed to listen on %s", cfg.ListenAddress())
	}
	return l.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled or ln is closed,
// then waits for in-flight connections to finish within their deadlines.
// A failed accept is logged and retried with backoff.
func (l *Listener) Serve(ctx context.Context, ln net.Listener) error {
	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()
	defer l.wg.Wait()

	connCtx := context.WithoutCancel(ctx)

	b := &backoff.Backoff{
		Min:    5 * time.Millisecond,
		Max:    time.Second,
		Factor: 2,
	}
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				level.Info(l.logger).Log("msg", "listener stopped", "addr", ln.Addr())
				return nil
			}
			acceptErrors.Inc()
			wait := b.Duration()
			level.Error(l.logger).Log("msg", "failed to accept connection", "retry_in", wait, "err", err)
			select {
			case <-time.After(wait):
			case <-ctx.Done():
			}
			continue
		}
		b.Reset()

		connectionsAccepted.Inc()
		l.handler.stats.accepted.Add(1)
		l.wg.Add(1)
		go func() {
			defer l.wg.Done()
			l.handler.ServeConn(connCtx, conn)
		}()
	}
}
