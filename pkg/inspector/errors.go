package inspector

import "github.com/pkg/errors"

// ErrUnsupportedVersion is logged for requests whose protocol version is not
// HTTP/1.1. Those requests are answered with 505 and produce no record.
var ErrUnsupportedVersion = errors.New("unsupported protocol version")
