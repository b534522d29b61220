package mqtt

// queuedMsg stores a serialized MQTT message for replay after reconnection.
type queuedMsg struct {
	topic    string
	payload  []byte
	qos      byte
	retained bool
}

// replayQueue is a fixed-capacity FIFO holding messages published while the
// broker is unreachable. When full, the oldest message is dropped so the
// queue always holds the most recent history. Not safe for concurrent use —
// the publisher synchronizes access.
type replayQueue struct {
	buf     []queuedMsg
	head    int // index of the oldest message
	count   int
	dropped int // messages discarded since the last take
}

func newReplayQueue(capacity int) *replayQueue {
	return &replayQueue{buf: make([]queuedMsg, capacity)}
}

func (q *replayQueue) add(msg queuedMsg) {
	if q.count == len(q.buf) {
		// Drop the oldest to make room.
		q.buf[q.head] = msg
		q.head = (q.head + 1) % len(q.buf)
		q.dropped++
		return
	}
	q.buf[(q.head+q.count)%len(q.buf)] = msg
	q.count++
}

// take empties the queue, returning the messages oldest-first and the number
// of messages dropped to overflow since the previous take.
func (q *replayQueue) take() (msgs []queuedMsg, dropped int) {
	dropped = q.dropped
	q.dropped = 0

	if q.count == 0 {
		return nil, dropped
	}

	msgs = make([]queuedMsg, q.count)
	for i := range msgs {
		msgs[i] = q.buf[(q.head+i)%len(q.buf)]
	}
	q.head = 0
	q.count = 0
	return msgs, dropped
}

func (q *replayQueue) len() int {
	return q.count
}
