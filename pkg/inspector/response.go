package inspector

import (
	"fmt"
	"net/http"
)

// fixedResponse acknowledges every decoded HTTP/1.1 request.
var fixedResponse = []byte("HTTP/1.1 200 OK\r\nContent-Length: 9\r\n\r\nwoof woof")

var (
	badRequestResponse          = emptyResponse(http.StatusBadRequest)
	versionNotSupportedResponse = emptyResponse(http.StatusHTTPVersionNotSupported)
)

// FixedResponse returns a copy of the acknowledgement bytes.
func FixedResponse() []byte {
	return append([]byte(nil), fixedResponse...)
}

func emptyResponse(status int) []byte {
	return []byte(fmt.Sprintf("HTTP/1.1 %d %s\r\nContent-Length: 0\r\nConnection: close\r\n\r\n", status, http.StatusText(status)))
}
