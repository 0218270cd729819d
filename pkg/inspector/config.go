package inspector

import (
	"net"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"go.searchlight.dev/corgi/pkg/request"
)

// Config is the configuration for the request inspector.
type Config struct {
	BindAddress string `validate:"required,ip|hostname_rfc1123"`
	Port        int    `validate:"gte=0,lte=65535"`
	Pretty      bool

	ReadTimeout    time.Duration `validate:"gt=0"`
	WriteTimeout   time.Duration `validate:"gt=0"`
	MaxHeaderBytes int           `validate:"gt=0"`
	MaxBodyBytes   int64         `validate:"gt=0"`

	RejectMalformed bool

	MetricsAddress string `validate:"omitempty,hostname_port"`
}

// NewConfig returns a Config holding the flag defaults.
func NewConfig() *Config {
	return &Config{
		BindAddress:    "127.0.0.1",
		Port:           8080,
		Pretty:         true,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: request.DefaultMaxHeaderBytes,
		MaxBodyBytes:   request.DefaultMaxBodyBytes,
	}
}

// AddFlags adds the flags required to config this to the given FlagSet.
func (cfg *Config) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&cfg.BindAddress, "bind-address", cfg.BindAddress, "Address to listen on.")
	f.IntVarP(&cfg.Port, "port", "p", cfg.Port, "Port to listen on.")
	f.BoolVar(&cfg.Pretty, "pretty", cfg.Pretty, "Indent JSON bodies. With --pretty=false they are logged compact.")

	f.DurationVar(&cfg.ReadTimeout, "read-timeout", cfg.ReadTimeout, "Deadline for reading a whole request off a connection.")
	f.DurationVar(&cfg.WriteTimeout, "write-timeout", cfg.WriteTimeout, "Deadline for writing the response.")
	f.IntVar(&cfg.MaxHeaderBytes, "max-header-bytes", cfg.MaxHeaderBytes, "Limit on the request line plus headers.")
	f.Int64Var(&cfg.MaxBodyBytes, "max-body-bytes", cfg.MaxBodyBytes, "Limit on the request body.")
	f.BoolVar(&cfg.RejectMalformed, "reject-malformed", cfg.RejectMalformed, "Answer undecodable requests with 400 Bad Request instead of closing the connection silently.")

	f.StringVar(&cfg.MetricsAddress, "metrics.listen-address", cfg.MetricsAddress, "host:port for /metrics and the status API. Disabled when empty.")
}

func (cfg *Config) Validate() error {
	if err := validator.New().Struct(cfg); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	if cfg.MetricsAddress != "" && cfg.MetricsAddress == cfg.ListenAddress() {
		return errors.New("--metrics.listen-address must differ from the inspector address")
	}
	return nil
}

// ListenAddress is the host:port the inspector binds to.
func (cfg *Config) ListenAddress() string {
	return net.JoinHostPort(cfg.BindAddress, strconv.Itoa(cfg.Port))
}
