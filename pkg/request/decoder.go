package request

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/http/httpguts"
)

const (
	DefaultMaxHeaderBytes       = 1 << 20
	DefaultMaxBodyBytes   int64 = 10 << 20

	// chunk-size and trailer lines
	maxChunkLineBytes = 4 << 10
)

// Decoder reads one request off a byte stream.
type Decoder struct {
	br *bufio.Reader

	// MaxHeaderBytes bounds the request line plus the header section.
	MaxHeaderBytes int
	// MaxBodyBytes bounds the body, whether declared by Content-Length or
	// framed as chunks.
	MaxBodyBytes int64
}

// NewDecoder returns a Decoder with default limits. If r is already a
// *bufio.Reader it is used as is.
func NewDecoder(r io.Reader) *Decoder {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Decoder{
		br:             br,
		MaxHeaderBytes: DefaultMaxHeaderBytes,
		MaxBodyBytes:   DefaultMaxBodyBytes,
	}
}

// Decode reads the request line, the header section and the body.
//
// Errors wrap ErrMalformedRequest or ErrIncompleteBody.
func (d *Decoder) Decode() (*InspectedRequest, error) {
	budget := d.MaxHeaderBytes
	if budget <= 0 {
		budget = DefaultMaxHeaderBytes
	}

	line, err := d.readLine(&budget)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedRequest, "reading request line: %v", err)
	}
	req, err := parseRequestLine(line)
	if err != nil {
		return nil, err
	}

	for {
		line, err := d.readLine(&budget)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedRequest, "reading headers: %v", err)
		}
		if line == "" {
			break
		}
		h, err := parseHeaderLine(line)
		if err != nil {
			return nil, err
		}
		req.Headers = append(req.Headers, h)
	}

	body, err := d.readBody(req)
	if err != nil {
		return nil, err
	}
	req.Body = body
	return req, nil
}

func parseRequestLine(line string) (*InspectedRequest, error) {
	parts := strings.SplitN(line, " ", 3)
	if len(parts) < 2 {
		return nil, errors.Wrapf(ErrMalformedRequest, "request line %q", line)
	}
	method, target := parts[0], parts[1]
	if !httpguts.ValidHeaderFieldName(method) {
		return nil, errors.Wrapf(ErrMalformedRequest, "invalid method %q", method)
	}
	if target == "" {
		return nil, errors.Wrap(ErrMalformedRequest, "empty request target")
	}
	req := &InspectedRequest{
		Method: method,
		Target: target,
	}
	if len(parts) == 3 {
		req.Proto = parts[2]
	}
	req.Version = ParseVersion(req.Proto)
	return req, nil
}

func parseHeaderLine(line string) (Header, error) {
	if line[0] == ' ' || line[0] == '\t' {
		return Header{}, errors.Wrap(ErrMalformedRequest, "obsolete header line folding")
	}
	i := strings.IndexByte(line, ':')
	if i < 0 {
		return Header{}, errors.Wrapf(ErrMalformedRequest, "header line %q has no colon", line)
	}
	name := line[:i]
	if !httpguts.ValidHeaderFieldName(name) {
		return Header{}, errors.Wrapf(ErrMalformedRequest, "invalid header name %q", name)
	}
	return Header{
		Name:  name,
		Value: strings.Trim(line[i+1:], " \t"),
	}, nil
}

func (d *Decoder) readBody(req *InspectedRequest) ([]byte, error) {
	limit := d.MaxBodyBytes
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}

	if cls := req.Values("Content-Length"); len(cls) > 0 {
		n, err := contentLength(cls)
		if err != nil {
			return nil, err
		}
		if n > limit {
			return nil, errors.Wrapf(ErrMalformedRequest, "declared body of %d bytes exceeds limit of %d", n, limit)
		}
		body := make([]byte, n)
		got, err := io.ReadFull(d.br, body)
		if err != nil {
			return nil, errors.Wrapf(ErrIncompleteBody, "declared %d bytes, received %d: %v", n, got, err)
		}
		return body, nil
	}

	if isChunked(req) {
		return d.readChunkedRaw(limit)
	}
	return []byte{}, nil
}

// contentLength accepts repeated Content-Length values only when they agree.
func contentLength(values []string) (int64, error) {
	var n int64 = -1
	for _, v := range values {
		for _, f := range strings.Split(v, ",") {
			f = strings.TrimSpace(f)
			if f == "" || strings.TrimLeft(f, "0123456789") != "" {
				return 0, errors.Wrapf(ErrMalformedRequest, "invalid Content-Length %q", v)
			}
			m, err := strconv.ParseInt(f, 10, 64)
			if err != nil {
				return 0, errors.Wrapf(ErrMalformedRequest, "invalid Content-Length %q", v)
			}
			if n >= 0 && m != n {
				return 0, errors.Wrapf(ErrMalformedRequest, "conflicting Content-Length values %q", values)
			}
			n = m
		}
	}
	return n, nil
}

func isChunked(req *InspectedRequest) bool {
	for _, v := range req.Values("Transfer-Encoding") {
		if strings.Contains(strings.ToLower(v), "chunked") {
			return true
		}
	}
	return false
}

// readLine returns one line without its terminator. Both CRLF and a bare LF
// end a line. Every byte read is charged against budget.
func (d *Decoder) readLine(budget *int) (string, error) {
	var sb strings.Builder
	for {
		b, err := d.br.ReadByte()
		if err != nil {
			return "", err
		}
		*budget--
		if *budget < 0 {
			return "", errors.New("header section too large")
		}
		if b == '\n' {
			break
		}
		sb.WriteByte(b)
	}
	return strings.TrimSuffix(sb.String(), "\r"), nil
}
