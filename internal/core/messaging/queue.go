package messaging

import (
	"github.com/orbisengine/orbis/pkg/sequence"
)

// Queue is a double-buffered, per-channel message queue.
//
// Send enqueues into a channel's stand-by buffer; Receive reads the active
// buffer. Nothing sent becomes visible until Shift swaps stand-by into
// active at a tick boundary. This gives one-tick-deferred delivery as a
// sequencing device: messages sent while a tick is processing are seen by
// the next processing pass, never the current one.
//
// The queue is single-threaded by contract, like the rest of the core: all
// calls happen on the simulation thread.
type Queue struct {
	channels map[string]*channelBuffers
}

type channelBuffers struct {
	active  *sequence.Ring[Message]
	standby *sequence.Ring[Message]
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{channels: make(map[string]*channelBuffers)}
}

// Send enqueues msg into the stand-by buffer for channel. It is not
// visible to Receive until the next Shift.
func (q *Queue) Send(channel string, msg Message) {
	q.buffers(channel).standby.Push(msg)
}

// Receive invokes handler once per message currently in the active buffer
// for channel, in send order. Messages sent during the traversal land in
// stand-by and are not observed.
func (q *Queue) Receive(channel string, handler Handler) {
	ch, ok := q.channels[channel]
	if !ok {
		return
	}
	for i := 0; i < ch.active.Len(); i++ {
		msg, _ := ch.active.At(i)
		handler(msg)
	}
}

// Pending returns the number of messages visible on a channel's active
// buffer.
func (q *Queue) Pending(channel string) int {
	ch, ok := q.channels[channel]
	if !ok {
		return 0
	}
	return ch.active.Len()
}

// Shift swaps every channel's stand-by buffer into active and clears the
// new stand-by. The orchestrator calls it exactly once per tick boundary,
// before lifecycle commands are drained. Backing arrays are swapped rather
// than reallocated, so a steady message rate settles into zero allocation.
func (q *Queue) Shift() {
	for _, ch := range q.channels {
		ch.active, ch.standby = ch.standby, ch.active
		ch.standby.Reset()
	}
}

func (q *Queue) buffers(channel string) *channelBuffers {
	ch, ok := q.channels[channel]
	if !ok {
		ch = &channelBuffers{
			active:  sequence.NewRing[Message](0),
			standby: sequence.NewRing[Message](0),
		}
		q.channels[channel] = ch
	}
	return ch
}
