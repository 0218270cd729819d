package inspector

import (
	"net"
	"strconv"

	"github.com/pkg/errors"
)

// ListenPort extracts the port from a host:port address, e.g. the address a
// listener actually bound to when configured with port 0.
func ListenPort(addr string) (int, error) {
	_, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return 0, errors.Wrap(err, "invalid listen address")
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 0, errors.Wrap(err, "invalid address port")
	}
	return port, nil
}
