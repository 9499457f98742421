package docsearch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// StreamState is the lifecycle state of a Stream.
type StreamState int32

// Stream states.
const (
	StreamSending StreamState = iota
	StreamReceiving
	StreamDone
)

// String returns the state name.
func (s StreamState) String() string {
	switch s {
	case StreamSending:
		return "sending"
	case StreamReceiving:
		return "receiving"
	default:
		return "done"
	}
}

// StreamEventType identifies a StreamEvent.
type StreamEventType int

// Stream event types.
const (
	EventDelta StreamEventType = iota
	EventDone
	EventError
)

// StreamEvent is one message received from a streaming answer.
type StreamEvent struct {
	Type StreamEventType
	Text string
	Err  error
}

// errStreamClosed is returned from the emit callback once the consumer closed the stream.
var errStreamClosed = errors.New("stream closed")

// ReceiveFunc drives a streaming call. It calls emit once per decoded text
// delta and returns when the underlying stream ends. It must stop and return
// when emit returns an error.
type ReceiveFunc func(ctx context.Context, emit func(delta string) error) error

// Stream delivers an answer as text delta events followed by one EventDone,
// or by one EventError if the call failed. Events arrive on Events until the
// channel is closed.
type Stream struct {
	events chan StreamEvent
	cancel context.CancelFunc
	state  atomic.Int32

	// done is closed by Close and unblocks a pending final event.
	done      chan struct{}
	closeOnce sync.Once

	mu     sync.Mutex
	closed bool
}

// NewStream starts recv in its own goroutine and returns the stream it feeds.
func NewStream(ctx context.Context, recv ReceiveFunc) *Stream {
	ctx, cancel := context.WithCancel(ctx)
	s := &Stream{
		events: make(chan StreamEvent),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	s.state.Store(int32(StreamSending))

	go func() {
		defer close(s.events)
		defer cancel()

		err := recv(ctx, func(delta string) error {
			s.state.CompareAndSwap(int32(StreamSending), int32(StreamReceiving))
			return s.send(ctx, StreamEvent{Type: EventDelta, Text: delta})
		})

		// A cancelled or expired parent context ends the answer early. That
		// is a failure unless the consumer closed the stream itself.
		if ctxErr := ctx.Err(); ctxErr != nil && (err == nil || errors.Is(err, errStreamClosed)) {
			err = ctxErr
		}
		if err == nil {
			s.finish(StreamEvent{Type: EventDone})
		} else {
			s.finish(StreamEvent{Type: EventError, Err: err})
		}
		s.state.Store(int32(StreamDone))
	}()

	return s
}

// send delivers ev unless the stream was closed.
func (s *Stream) send(ctx context.Context, ev StreamEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errStreamClosed
	}
	select {
	case <-ctx.Done():
		return errStreamClosed
	case <-s.done:
		return errStreamClosed
	case s.events <- ev:
		return nil
	}
}

// finish delivers the final event unless the consumer closed the stream.
func (s *Stream) finish(ev StreamEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	select {
	case <-s.done:
	case s.events <- ev:
	}
}

// Events returns the event channel. It is closed after the final event.
func (s *Stream) Events() <-chan StreamEvent {
	return s.events
}

// State returns the current lifecycle state.
func (s *Stream) State() StreamState {
	return StreamState(s.state.Load())
}

// Close cancels the underlying call. No events are delivered after Close returns.
func (s *Stream) Close() {
	s.closeOnce.Do(func() { close(s.done) })
	s.cancel()
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.state.Store(int32(StreamDone))
}

// Collect reads the stream to completion and returns the concatenated text.
// A stream that ends without EventDone returns the partial text and an error.
func (s *Stream) Collect() (string, error) {
	var text []byte
	for ev := range s.events {
		switch ev.Type {
		case EventDelta:
			text = append(text, ev.Text...)
		case EventError:
			return string(text), ev.Err
		case EventDone:
			return string(text), nil
		}
	}
	return string(text), ErrStreamIncomplete
}

// ErrStreamIncomplete is returned by Collect when the stream was closed
// before the answer completed.
var ErrStreamIncomplete = Errorf(EUNAVAILABLE, "stream ended before the answer completed")
