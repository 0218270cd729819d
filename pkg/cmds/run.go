package cmds

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"syscall"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/oklog/run"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"go.searchlight.dev/corgi/pkg/inspector"
	"go.searchlight.dev/corgi/pkg/logger"
)

func NewCmdRun() *cobra.Command {
	cfg := inspector.NewConfig()
	logLevel := "info"

	cmd := &cobra.Command{
		Use:               "run",
		Short:             "Listen for HTTP requests and log each one",
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := logger.InitLogger(logLevel); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ln, err := net.Listen("tcp", cfg.ListenAddress())
			if err != nil {
				return errors.Wrapf(err, "failed to listen on %s", cfg.ListenAddress())
			}
			if err := printBanner(cmd.OutOrStdout(), ln.Addr().String()); err != nil {
				ln.Close()
				return err
			}
			level.Info(logger.Logger).Log("msg", "Starting corgi", "addr", ln.Addr(), "pretty", cfg.Pretty, "version", Version)

			err = serve(cfg, ln, os.Stdout, logger.Logger)
			var sig run.SignalError
			if errors.As(err, &sig) {
				level.Info(logger.Logger).Log("msg", "shutting down", "signal", sig.Signal)
				return nil
			}
			return err
		},
	}

	cfg.AddFlags(cmd.Flags())
	cmd.Flags().StringVar(&logLevel, "log.level", logLevel, "Diagnostic log level: debug, info, warn or error. Diagnostics go to stderr.")
	return cmd
}

func printBanner(w io.Writer, addr string) error {
	port, err := inspector.ListenPort(addr)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "Corgi HTTP request logger is listening on port %d\nVersion: %s\n", port, Version)
	return err
}

// serve runs the inspector on ln, plus the admin API when configured, until
// one of them fails or the process is signalled.
func serve(cfg *inspector.Config, ln net.Listener, out io.Writer, l log.Logger) error {
	stats := &inspector.Stats{}
	handler := inspector.NewHandler(cfg, inspector.NewSink(out), l, stats)
	listener := inspector.NewListener(handler, l)

	var g run.Group
	{
		ctx, cancel := context.WithCancel(context.Background())
		g.Add(func() error {
			return listener.Serve(ctx, ln)
		}, func(error) {
			cancel()
		})
	}
	if cfg.MetricsAddress != "" {
		srv := &http.Server{Addr: cfg.MetricsAddress, Handler: inspector.NewAPI(cfg, stats, log.With(l, "component", "api"))}
		g.Add(func() error {
			level.Info(l).Log("msg", "serving admin API", "addr", cfg.MetricsAddress)
			if err := srv.ListenAndServe(); err != http.ErrServerClosed {
				return errors.Wrap(err, "admin API")
			}
			return nil
		}, func(error) {
			srv.Close()
		})
	}
	g.Add(run.SignalHandler(context.Background(), os.Interrupt, syscall.SIGTERM))

	return g.Run()
}
