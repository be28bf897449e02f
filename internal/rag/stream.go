package rag

import (
	"strings"
	"sync"
)

// Stream is an ordered sequence of answer chunks with a single producer.
// The producer closes it when done; a consumer that stops reading calls Abandon.
type Stream struct {
	ch        chan string
	abandoned chan struct{}
	closeOnce sync.Once
	leaveOnce sync.Once
}

// NewStream creates a Stream buffering up to buffer chunks.
func NewStream(buffer int) *Stream {
	return &Stream{
		ch:        make(chan string, buffer),
		abandoned: make(chan struct{}),
	}
}

// Chunks returns the chunk channel. It is closed after the last chunk.
func (s *Stream) Chunks() <-chan string {
	return s.ch
}

// Text reads the remaining chunks and returns them concatenated.
func (s *Stream) Text() string {
	var b strings.Builder
	for chunk := range s.ch {
		b.WriteString(chunk)
	}
	return b.String()
}

// Abandon tells the producer nobody is reading anymore.
func (s *Stream) Abandon() {
	s.leaveOnce.Do(func() { close(s.abandoned) })
}

// Send delivers chunk. It returns false once the stream was abandoned.
func (s *Stream) Send(chunk string) bool {
	select {
	case <-s.abandoned:
		return false
	default:
	}
	select {
	case s.ch <- chunk:
		return true
	case <-s.abandoned:
		return false
	}
}

// Close marks the end of the stream. Only the producer calls it.
func (s *Stream) Close() {
	s.closeOnce.Do(func() { close(s.ch) })
}
