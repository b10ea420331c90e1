package http1

import "io"

// ReaderSource adapts an io.Reader to the Source interface with a fixed
// read buffer. Only one Unread is buffered between Reads.
type ReaderSource struct {
	r       io.Reader
	buff    []byte
	pending []byte
}

func NewReaderSource(r io.Reader, buffSize int) *ReaderSource {
	if buffSize <= 0 {
		buffSize = 4096
	}

	return &ReaderSource{r: r, buff: make([]byte, buffSize)}
}

func (s *ReaderSource) Read() ([]byte, error) {
	if len(s.pending) > 0 {
		data := s.pending
		s.pending = nil

		return data, nil
	}

	n, err := s.r.Read(s.buff)
	if n > 0 {
		return s.buff[:n], nil
	}
	if err == nil {
		err = io.EOF
	}

	return nil, err
}

func (s *ReaderSource) Unread(tail []byte) {
	if len(tail) > 0 {
		s.pending = tail
	}
}
