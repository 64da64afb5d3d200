package host

// Spy wraps a Host and records frame requests and cancellations.
type Spy struct {
	*Host
	Requested []FrameID
	Cancelled []FrameID
}

func NewSpy(width, height int) *Spy {
	return &Spy{Host: New(width, height)}
}

func (s *Spy) RequestFrame(cb FrameCallback) FrameID {
	id := s.Host.RequestFrame(cb)
	s.Requested = append(s.Requested, id)
	return id
}

func (s *Spy) CancelFrame(id FrameID) {
	s.Cancelled = append(s.Cancelled, id)
	s.Host.CancelFrame(id)
}

// LastRequested is the most recent frame id handed out, or zero.
func (s *Spy) LastRequested() FrameID {
	if len(s.Requested) == 0 {
		return 0
	}
	return s.Requested[len(s.Requested)-1]
}
