package request

import "strings"

// Version is the protocol version named on the request line.
type Version int

const (
	VersionUnknown Version = iota
	HTTP10
	HTTP11
	HTTP2
	HTTP3
)

// ParseVersion maps a request-line version token to a Version. Anything it
// does not recognise, including an empty token, is VersionUnknown.
func ParseVersion(token string) Version {
	switch token {
	case "HTTP/1.0":
		return HTTP10
	case "HTTP/1.1":
		return HTTP11
	case "HTTP/2", "HTTP/2.0":
		return HTTP2
	case "HTTP/3", "HTTP/3.0":
		return HTTP3
	}
	return VersionUnknown
}

func (v Version) String() string {
	switch v {
	case HTTP10:
		return "HTTP/1.0"
	case HTTP11:
		return "HTTP/1.1"
	case HTTP2:
		return "HTTP/2.0"
	case HTTP3:
		return "HTTP/3.0"
	default:
		return "unknown"
	}
}

// Header is one header line as it arrived. Value holds the raw bytes after
// the colon with surrounding whitespace removed; it is not guaranteed to be
// printable text.
type Header struct {
	Name  string
	Value string
}

// InspectedRequest is one decoded request. Headers keep wire order and
// duplicates. Body holds exactly the bytes taken off the connection.
type InspectedRequest struct {
	Method  string
	Target  string
	Version Version
	// Proto is the version token exactly as received, empty if the request
	// line had none.
	Proto   string
	Headers []Header
	Body    []byte
}

// Get returns the first value of the named header. Names compare
// case-insensitively.
func (r *InspectedRequest) Get(name string) (string, bool) {
	for _, h := range r.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value, true
		}
	}
	return "", false
}

// Values returns every value of the named header in arrival order.
func (r *InspectedRequest) Values(name string) []string {
	var vv []string
	for _, h := range r.Headers {
		if strings.EqualFold(h.Name, name) {
			vv = append(vv, h.Value)
		}
	}
	return vv
}

// RequestLine renders "<method> <target> <version>".
func (r *InspectedRequest) RequestLine() string {
	return r.Method + " " + r.Target + " " + r.Version.String()
}
