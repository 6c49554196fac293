package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func registerSubscriber(h *Hub, id string, sub *subscriber) {
	h.subMu.Lock()
	h.subscribers[id] = sub
	h.subMu.Unlock()
}

func TestDropSubscriberIgnoresReplacedConnection(t *testing.T) {
	h := newHub(nil, nil, nil)

	stale := &subscriber{send: make(chan []byte, 1)}
	registerSubscriber(h, "p1", stale)
	replacement := &subscriber{send: make(chan []byte, 1)}
	registerSubscriber(h, "p1", replacement)

	// The replaced connection tears itself down; the reconnect it was
	// replaced by must survive.
	h.dropSubscriber("p1", stale)
	assert.Equal(t, 1, h.subscriberCount())

	// The replacement's channel is still open and deliverable.
	replacement.send <- []byte("frame")
	assert.Equal(t, []byte("frame"), <-replacement.send)

	h.dropSubscriber("p1", replacement)
	assert.Equal(t, 0, h.subscriberCount())
}

func TestDropSubscriberNilDropsCurrent(t *testing.T) {
	h := newHub(nil, nil, nil)
	sub := &subscriber{send: make(chan []byte, 1)}
	registerSubscriber(h, "p1", sub)

	h.dropSubscriber("p1", nil)
	assert.Equal(t, 0, h.subscriberCount())

	_, open := <-sub.send
	assert.False(t, open, "dropped subscriber channel should be closed")

	// Dropping an absent id is a no-op.
	h.dropSubscriber("p1", nil)
	assert.Equal(t, 0, h.subscriberCount())
}
