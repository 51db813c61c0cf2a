package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

var ErrReceiverUnreachable = errors.New("could not establish connection: receiving end does not exist")

// Handler answers messages on the privileged side of the bridge.
type Handler interface {
	HandleMessage(ctx context.Context, msg Message) (Message, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, msg Message) (Message, error)

func (f HandlerFunc) HandleMessage(ctx context.Context, msg Message) (Message, error) {
	return f(ctx, msg)
}

// Runtime connects a page context to at most one privileged listener.
// Every message is serialised on the way in and on the way out, so neither
// side ever shares memory with the other.
type Runtime struct {
	mu      sync.RWMutex
	handler Handler
	closed  bool
}

func NewRuntime() *Runtime {
	return &Runtime{}
}

// Listen attaches h as the receiver, replacing any previous one.
func (r *Runtime) Listen(h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handler = h
}

// Close detaches the receiver. Later sends fail with ErrReceiverUnreachable.
func (r *Runtime) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	r.handler = nil
}

type reply struct {
	raw []byte
	err error
}

// SendMessage performs one request/response round trip. It waits for the
// receiver's answer unless ctx is done first. Errors returned by the
// receiver are passed through wrapped.
func (r *Runtime) SendMessage(ctx context.Context, msg Message) (Message, error) {
	r.mu.RLock()
	h, closed := r.handler, r.closed
	r.mu.RUnlock()
	if closed || h == nil {
		return Message{}, ErrReceiverUnreachable
	}

	raw, err := json.Marshal(msg)
	if err != nil {
		return Message{}, fmt.Errorf("%w: %v", ErrProtocol, err)
	}

	done := make(chan reply, 1)
	go func() {
		in, err := Decode(raw)
		if err != nil {
			done <- reply{err: err}
			return
		}
		out, err := h.HandleMessage(ctx, in)
		if err != nil {
			done <- reply{err: fmt.Errorf("receiver: %w", err)}
			return
		}
		b, err := json.Marshal(out)
		done <- reply{raw: b, err: err}
	}()

	select {
	case <-ctx.Done():
		return Message{}, ctx.Err()
	case rep := <-done:
		if rep.err != nil {
			return Message{}, rep.err
		}
		return Decode(rep.raw)
	}
}
