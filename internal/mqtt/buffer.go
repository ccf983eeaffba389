package mqtt

import "log"

// queuedMsg is a serialized message waiting for the broker.
type queuedMsg struct {
	topic    string
	payload  []byte
	qos      byte
	retained bool
}

// backlog holds messages published while the broker is unreachable. It keeps
// the newest capacity messages, counting the ones it drops.
// Not safe for concurrent use; the caller must synchronize.
type backlog struct {
	msgs     []queuedMsg
	capacity int
	next     int // next write position
	count    int
	dropped  int // dropped since the last take
}

func newBacklog(capacity int) *backlog {
	return &backlog{
		msgs:     make([]queuedMsg, capacity),
		capacity: capacity,
	}
}

func (b *backlog) add(msg queuedMsg) {
	if b.count == b.capacity {
		if b.dropped == 0 {
			log.Printf("mqtt: backlog full (%d messages), dropping oldest", b.capacity)
		}
		b.dropped++
		b.msgs[b.next] = msg
		b.next = (b.next + 1) % b.capacity
		return
	}
	b.msgs[b.next] = msg
	b.next = (b.next + 1) % b.capacity
	b.count++
}

// take returns the queued messages oldest first, with the number dropped,
// and empties the backlog.
func (b *backlog) take() ([]queuedMsg, int) {
	dropped := b.dropped
	if b.count == 0 {
		b.dropped = 0
		return nil, dropped
	}

	out := make([]queuedMsg, b.count)
	oldest := (b.next - b.count + b.capacity) % b.capacity
	for i := range out {
		out[i] = b.msgs[(oldest+i)%b.capacity]
	}

	b.count = 0
	b.next = 0
	b.dropped = 0
	return out, dropped
}

func (b *backlog) size() int {
	return b.count
}
