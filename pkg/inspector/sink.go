package inspector

import (
	"io"
	"sync"

	"github.com/pkg/errors"
)

// RecordSink receives rendered log records.
type RecordSink interface {
	WriteRecord(record string) error
}

// Sink writes each record plus a trailing newline to an io.Writer in a single
// Write call, so records from concurrent connections never interleave.
type Sink struct {
	mu sync.Mutex
	w  io.Writer
}

func NewSink(w io.Writer) *Sink {
	return &Sink{w: w}
}

func (s *Sink) WriteRecord(record string) error {
	buf := make([]byte, 0, len(record)+1)
	buf = append(buf, record...)
	buf = append(buf, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.w.Write(buf); err != nil {
		return errors.Wrap(err, "failed to write log record")
	}
	return nil
}
