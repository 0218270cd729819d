package request

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// readChunkedRaw walks chunked framing to find the end of the body and
// returns the framed bytes untouched: sizes, extensions, CRLFs and trailers
// included. Bodies are never unchunked.
func (d *Decoder) readChunkedRaw(limit int64) ([]byte, error) {
	var raw bytes.Buffer
	for {
		line, err := d.readRawLine(&raw, limit)
		if err != nil {
			return nil, err
		}
		size, err := parseChunkSize(line)
		if err != nil {
			return nil, err
		}
		if size == 0 {
			break
		}
		if size > limit-int64(raw.Len()) {
			return nil, errors.Wrapf(ErrMalformedRequest, "chunked body exceeds limit of %d", limit)
		}
		if n, err := io.CopyN(&raw, d.br, size); err != nil {
			return nil, errors.Wrapf(ErrIncompleteBody, "chunk of %d bytes, received %d: %v", size, n, err)
		}
		line, err = d.readRawLine(&raw, limit)
		if err != nil {
			return nil, err
		}
		if trimEOL(line) != "" {
			return nil, errors.Wrap(ErrMalformedRequest, "chunk data not followed by CRLF")
		}
	}

	// trailer section, terminated by an empty line
	for {
		line, err := d.readRawLine(&raw, limit)
		if err != nil {
			return nil, err
		}
		if trimEOL(line) == "" {
			return raw.Bytes(), nil
		}
	}
}

// readRawLine appends one line, terminator included, to raw and returns it.
func (d *Decoder) readRawLine(raw *bytes.Buffer, limit int64) (string, error) {
	var sb strings.Builder
	for {
		b, err := d.br.ReadByte()
		if err != nil {
			return "", errors.Wrapf(ErrIncompleteBody, "chunked body: %v", err)
		}
		sb.WriteByte(b)
		if sb.Len() > maxChunkLineBytes || int64(raw.Len()+sb.Len()) > limit {
			return "", errors.Wrap(ErrMalformedRequest, "chunked body line too long")
		}
		if b == '\n' {
			break
		}
	}
	raw.WriteString(sb.String())
	return sb.String(), nil
}

func parseChunkSize(line string) (int64, error) {
	s := trimEOL(line)
	if i := strings.IndexByte(s, ';'); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.Wrap(ErrMalformedRequest, "empty chunk size")
	}
	n, err := strconv.ParseInt(s, 16, 64)
	if err != nil || n < 0 {
		return 0, errors.Wrapf(ErrMalformedRequest, "invalid chunk size %q", s)
	}
	return n, nil
}

func trimEOL(s string) string {
	return strings.TrimSuffix(strings.TrimSuffix(s, "\n"), "\r")
}
