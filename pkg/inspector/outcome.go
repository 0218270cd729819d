package inspector

import (
	"github.com/pkg/errors"

	"go.searchlight.dev/corgi/pkg/request"
)

// Outcome is how a connection ended.
type Outcome int

const (
	// Handled means a record was written and the fixed response was sent.
	Handled Outcome = iota
	HTTP2Unsupported
	HTTP3Unsupported
	OtherUnsupported
	// DecodeFailed means the bytes on the connection were not a request.
	DecodeFailed
)

func (o Outcome) String() string {
	switch o {
	case Handled:
		return "handled"
	case HTTP2Unsupported:
		return "http2_unsupported"
	case HTTP3Unsupported:
		return "http3_unsupported"
	case OtherUnsupported:
		return "other_unsupported"
	case DecodeFailed:
		return "decode_failed"
	}
	return "unknown"
}

// Unsupported reports whether the request was refused for its version.
func (o Outcome) Unsupported() bool {
	return o == HTTP2Unsupported || o == HTTP3Unsupported || o == OtherUnsupported
}

// Err is nil for Handled and describes every other outcome.
func (o Outcome) Err() error {
	if o == Handled {
		return nil
	}
	return errors.Errorf("connection ended with outcome %s", o)
}

// DispatchVersion maps a decoded version onto the outcome of handling it.
// Only HTTP/1.1 is handled.
func DispatchVersion(v request.Version) Outcome {
	switch v {
	case request.HTTP11:
		return Handled
	case request.HTTP2:
		return HTTP2Unsupported
	case request.HTTP3:
		return HTTP3Unsupported
	}
	return OtherUnsupported
}
