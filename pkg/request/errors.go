package request

import "github.com/pkg/errors"

var (
	// ErrMalformedRequest marks a request line or header section that could
	// not be parsed, or a request that exceeds the decoder limits.
	ErrMalformedRequest = errors.New("malformed request")
	// ErrIncompleteBody marks a body that ended before its declared length.
	ErrIncompleteBody = errors.New("incomplete body")
)

// IsMalformed reports whether err is a MalformedRequestError.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformedRequest)
}

// IsIncompleteBody reports whether err is an IncompleteBodyError.
func IsIncompleteBody(err error) bool {
	return errors.Is(err, ErrIncompleteBody)
}
