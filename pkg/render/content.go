package render

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"unicode/utf8"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding/unicode"

	"go.searchlight.dev/corgi/pkg/request"
)

const (
	NoContentType     = "No content type is provided"
	SomeErrorOccurred = "Some error occurred"

	rawPrefix = "raw: "
	jsonType  = "application/json"
)

// ErrBodyFormat is returned for a body declared as JSON that does not parse.
var ErrBodyFormat = errors.New("body is not valid JSON")

// Classification buckets a body by its declared Content-Type.
type Classification int

const (
	// Absent means no Content-Type header was sent.
	Absent Classification = iota
	JSON
	Other
	// Malformed means the Content-Type value is not printable text.
	Malformed
)

func (c Classification) String() string {
	switch c {
	case Absent:
		return "absent"
	case JSON:
		return "json"
	case Other:
		return "other"
	case Malformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Classify buckets a Content-Type value. present is false when the request
// carried no Content-Type header.
func Classify(contentType string, present bool) Classification {
	if !present {
		return Absent
	}
	v, ok := headerText(contentType)
	switch {
	case !ok:
		return Malformed
	case v == jsonType:
		return JSON
	default:
		return Other
	}
}

// ClassifyRequest classifies by the first Content-Type header of req.
func ClassifyRequest(req *request.InspectedRequest) Classification {
	return Classify(req.Get("Content-Type"))
}

// canonicalJSON sorts object keys and keeps number literals verbatim.
var canonicalJSON = jsoniter.Config{
	SortMapKeys:            true,
	UseNumber:              true,
	ValidateJsonRawMessage: true,
}.Froze()

const jsonIndent = "  "

// ContentRenderer turns a body into display text. Pretty selects indented
// JSON output; otherwise JSON is rendered compact.
type ContentRenderer struct {
	Pretty bool
}

// Render returns the display text for body. It fails only for a JSON body
// that does not parse, with an error wrapping ErrBodyFormat. body is never
// modified.
func (r ContentRenderer) Render(c Classification, body []byte) (string, error) {
	switch c {
	case JSON:
		return r.renderJSON(body)
	case Other:
		return rawPrefix + lossyText(body), nil
	case Absent:
		return NoContentType, nil
	default:
		return SomeErrorOccurred, nil
	}
}

// Format is Render with the JSON failure replaced by SomeErrorOccurred.
func (r ContentRenderer) Format(c Classification, body []byte) string {
	s, err := r.Render(c, body)
	if err != nil {
		return SomeErrorOccurred
	}
	return s
}

func (r ContentRenderer) renderJSON(body []byte) (string, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return "", errors.Wrap(ErrBodyFormat, "empty body")
	}
	if !utf8.Valid(body) {
		return "", errors.Wrap(ErrBodyFormat, "invalid UTF-8")
	}
	var v interface{}
	if err := canonicalJSON.Unmarshal(body, &v); err != nil {
		return "", errors.Wrap(ErrBodyFormat, err.Error())
	}
	if err := checkNumbers(v); err != nil {
		return "", err
	}
	out, err := canonicalJSON.Marshal(v)
	if err != nil {
		return "", errors.Wrap(ErrBodyFormat, err.Error())
	}
	if !r.Pretty {
		return string(out), nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, out, "", jsonIndent); err != nil {
		return "", errors.Wrap(ErrBodyFormat, err.Error())
	}
	return buf.String(), nil
}

// checkNumbers rejects number literals that do not fit a float64, e.g. 1e999.
func checkNumbers(v interface{}) error {
	switch v := v.(type) {
	case json.Number:
		if _, err := strconv.ParseFloat(string(v), 64); err != nil {
			return errors.Wrapf(ErrBodyFormat, "number %s out of range", v)
		}
	case []interface{}:
		for _, e := range v {
			if err := checkNumbers(e); err != nil {
				return err
			}
		}
	case map[string]interface{}:
		for _, e := range v {
			if err := checkNumbers(e); err != nil {
				return err
			}
		}
	}
	return nil
}

// lossyText decodes body as UTF-8, replacing invalid sequences with U+FFFD.
func lossyText(body []byte) string {
	out, err := unicode.UTF8.NewDecoder().Bytes(body)
	if err != nil {
		return strings.ToValidUTF8(string(body), "\uFFFD")
	}
	return string(out)
}
