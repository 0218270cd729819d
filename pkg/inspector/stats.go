package inspector

import "sync/atomic"

// Stats counts connections for the status API.
type Stats struct {
	accepted    atomic.Int64
	handled     atomic.Int64
	unsupported atomic.Int64
	failed      atomic.Int64
}

type StatsSnapshot struct {
	Accepted     int64 `json:"accepted"`
	Handled      int64 `json:"handled"`
	Unsupported  int64 `json:"unsupported"`
	DecodeFailed int64 `json:"decodeFailed"`
}

func (s *Stats) record(o Outcome) {
	switch {
	case o == Handled:
		s.handled.Add(1)
	case o.Unsupported():
		s.unsupported.Add(1)
	default:
		s.failed.Add(1)
	}
}

func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Accepted:     s.accepted.Load(),
		Handled:      s.handled.Load(),
		Unsupported:  s.unsupported.Load(),
		DecodeFailed: s.failed.Load(),
	}
}
