package inspector

import (
	"bufio"
	"context"
	"net"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/weaveworks/common/instrument"

	logger2 "go.searchlight.dev/corgi/pkg/logger"
	"go.searchlight.dev/corgi/pkg/render"
	"go.searchlight.dev/corgi/pkg/request"
)

// Handler serves exactly one request per connection: it decodes the request,
// writes its record to the sink and answers with the fixed response.
type Handler struct {
	sink     RecordSink
	renderer render.ContentRenderer
	logger   log.Logger
	stats    *Stats

	readTimeout     time.Duration
	writeTimeout    time.Duration
	maxHeaderBytes  int
	maxBodyBytes    int64
	rejectMalformed bool
}

func NewHandler(cfg *Config, sink RecordSink, logger log.Logger, stats *Stats) *Handler {
	if stats == nil {
		stats = &Stats{}
	}
	return &Handler{
		sink:            sink,
		renderer:        render.ContentRenderer{Pretty: cfg.Pretty},
		logger:          logger,
		stats:           stats,
		readTimeout:     cfg.ReadTimeout,
		writeTimeout:    cfg.WriteTimeout,
		maxHeaderBytes:  cfg.MaxHeaderBytes,
		maxBodyBytes:    cfg.MaxBodyBytes,
		rejectMalformed: cfg.RejectMalformed,
	}
}

// ServeConn handles conn and closes it. Cancelling ctx closes the connection
// early.
func (h *Handler) ServeConn(ctx context.Context, conn net.Conn) Outcome {
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	connectionsInFlight.Inc()
	defer connectionsInFlight.Dec()

	logger := logger2.WithConn(uuid.NewString(), conn.RemoteAddr().String(), h.logger)

	var outcome Outcome
	err := instrument.CollectedRequest(ctx, "ServeConn", connectionDuration, func(error) string {
		return outcome.String()
	}, func(_ context.Context) error {
		outcome = h.serve(conn, logger)
		return outcome.Err()
	})
	if err != nil {
		level.Debug(logger).Log("msg", "connection not handled", "err", err)
	}

	requestsTotal.WithLabelValues(outcome.String()).Inc()
	h.stats.record(outcome)
	return outcome
}

func (h *Handler) serve(conn net.Conn, logger log.Logger) Outcome {
	if h.readTimeout > 0 {
		if err := conn.SetReadDeadline(time.Now().Add(h.readTimeout)); err != nil {
			level.Debug(logger).Log("msg", "failed to set read deadline", "err", err)
		}
	}

	d := request.NewDecoder(bufio.NewReader(conn))
	d.MaxHeaderBytes = h.maxHeaderBytes
	d.MaxBodyBytes = h.maxBodyBytes
	req, err := d.Decode()
	if err != nil {
		level.Warn(logger).Log("msg", "failed to decode request", "err", err)
		if h.rejectMalformed {
			h.respond(conn, logger, badRequestResponse)
		}
		return DecodeFailed
	}

	outcome := DispatchVersion(req.Version)
	if outcome != Handled {
		err := errors.Wrapf(ErrUnsupportedVersion, "%q", req.Proto)
		level.Warn(logger).Log("msg", "refusing request", "request", req.RequestLine(), "outcome", outcome, "err", err)
		h.respond(conn, logger, versionNotSupportedResponse)
		return outcome
	}

	class := render.ClassifyRequest(req)
	bodiesRendered.WithLabelValues(class.String()).Inc()
	body, err := h.renderer.Render(class, req.Body)
	if err != nil {
		level.Info(logger).Log("msg", "body could not be rendered", "classification", class, "err", err)
		body = render.SomeErrorOccurred
	}

	if err := h.sink.WriteRecord(render.Record(req, body)); err != nil {
		level.Error(logger).Log("msg", "failed to write log record", "err", err)
	}
	level.Debug(logger).Log("msg", "request logged", "request", req.RequestLine(), "classification", class)

	h.respond(conn, logger, fixedResponse)
	return Handled
}

func (h *Handler) respond(conn net.Conn, logger log.Logger, resp []byte) {
	if h.writeTimeout > 0 {
		if err := conn.SetWriteDeadline(time.Now().Add(h.writeTimeout)); err != nil {
			level.Debug(logger).Log("msg", "failed to set write deadline", "err", err)
		}
	}
	if _, err := conn.Write(resp); err != nil {
		level.Warn(logger).Log("msg", "failed to write response", "err", err)
	}
}
