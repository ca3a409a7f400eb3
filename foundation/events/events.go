// Package events supports the fan-out of tool activity, such as mining
// progress, to any goroutine that wants to listen. Web socket handlers
// acquire a channel per client and receive every message sent while they
// are registered.
package events

import (
	"fmt"
	"sync"
)

// messageBuffer gives a slow receiver room before messages are dropped. A
// web socket write can take a while; mining events come fast.
const messageBuffer = 100

// Events maintains a mapping of unique id and channels so goroutines can
// register and receive events.
type Events struct {
	m  map[string]chan string
	mu sync.RWMutex
}

// New constructs an events value for registering and receiving events.
func New() *Events {
	return &Events{
		m: make(map[string]chan string),
	}
}

// Shutdown closes and removes all channels that were provided by the call
// to Acquire.
func (evt *Events) Shutdown() {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	for id, ch := range evt.m {
		delete(evt.m, id)
		close(ch)
	}
}

// Acquire takes a unique id and returns a channel that can be used to
// receive events. Acquiring an id twice returns the same channel.
func (evt *Events) Acquire(id string) chan string {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	ch, exists := evt.m[id]
	if exists {
		return ch
	}

	evt.m[id] = make(chan string, messageBuffer)
	return evt.m[id]
}

// Release closes and removes the channel that was provided by the call to
// Acquire.
func (evt *Events) Release(id string) error {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	ch, exists := evt.m[id]
	if !exists {
		return fmt.Errorf("id %q does not exist", id)
	}

	delete(evt.m, id)
	close(ch)
	return nil
}

// Send signals a formatted message to every registered channel. Send will
// not block waiting for a receiver on any given channel; a full channel
// drops the message.
func (evt *Events) Send(v string, args ...any) {
	evt.mu.RLock()
	defer evt.mu.RUnlock()

	s := v
	if len(args) > 0 {
		s = fmt.Sprintf(v, args...)
	}

	for _, ch := range evt.m {
		select {
		case ch <- s:
		default:
		}
	}
}
