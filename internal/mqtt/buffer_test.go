package mqtt

import "testing"

func TestReplayQueueEmptyTake(t *testing.T) {
	q := newReplayQueue(10)
	msgs, dropped := q.take()
	if msgs != nil {
		t.Errorf("expected nil from empty take, got %d items", len(msgs))
	}
	if dropped != 0 {
		t.Errorf("expected 0 dropped, got %d", dropped)
	}
}

func TestReplayQueueAddAndTake(t *testing.T) {
	q := newReplayQueue(10)
	for i := 0; i < 5; i++ {
		q.add(queuedMsg{topic: "t", payload: []byte{byte(i)}})
	}
	if q.len() != 5 {
		t.Fatalf("len: got %d, want 5", q.len())
	}

	msgs, dropped := q.take()
	if dropped != 0 {
		t.Errorf("dropped: got %d, want 0", dropped)
	}
	if len(msgs) != 5 {
		t.Fatalf("expected 5 items, got %d", len(msgs))
	}
	for i := 0; i < 5; i++ {
		if msgs[i].payload[0] != byte(i) {
			t.Errorf("item %d: expected payload %d, got %d", i, i, msgs[i].payload[0])
		}
	}

	// Second take should be empty
	msgs, _ = q.take()
	if msgs != nil {
		t.Errorf("expected nil from second take, got %d items", len(msgs))
	}
}

func TestReplayQueueFillToCapacity(t *testing.T) {
	const capacity = 10
	q := newReplayQueue(capacity)
	for i := 0; i < capacity; i++ {
		q.add(queuedMsg{topic: "t", payload: []byte{byte(i)}})
	}

	msgs, dropped := q.take()
	if dropped != 0 {
		t.Errorf("dropped: got %d, want 0", dropped)
	}
	if len(msgs) != capacity {
		t.Fatalf("expected %d items, got %d", capacity, len(msgs))
	}
	for i := 0; i < capacity; i++ {
		if msgs[i].payload[0] != byte(i) {
			t.Errorf("item %d: expected payload %d, got %d", i, i, msgs[i].payload[0])
		}
	}
}

func TestReplayQueueOverflowDropsOldest(t *testing.T) {
	const capacity = 5
	q := newReplayQueue(capacity)

	// Add capacity+3 items (0..7); the queue keeps the most recent 5 (3..7).
	for i := 0; i < capacity+3; i++ {
		q.add(queuedMsg{topic: "t", payload: []byte{byte(i)}})
	}

	msgs, dropped := q.take()
	if dropped != 3 {
		t.Errorf("dropped: got %d, want 3", dropped)
	}
	if len(msgs) != capacity {
		t.Fatalf("expected %d items, got %d", capacity, len(msgs))
	}
	for i := 0; i < capacity; i++ {
		want := byte(i + 3) // oldest 3 were dropped
		if msgs[i].payload[0] != want {
			t.Errorf("item %d: expected payload %d, got %d", i, want, msgs[i].payload[0])
		}
	}
}

func TestReplayQueueDroppedCountResets(t *testing.T) {
	q := newReplayQueue(2)
	for i := 0; i < 5; i++ {
		q.add(queuedMsg{topic: "t"})
	}
	if _, dropped := q.take(); dropped != 3 {
		t.Errorf("first take dropped: got %d, want 3", dropped)
	}

	q.add(queuedMsg{topic: "t"})
	if _, dropped := q.take(); dropped != 0 {
		t.Errorf("second take dropped: got %d, want 0", dropped)
	}
}

func TestReplayQueueInterleavedAddTake(t *testing.T) {
	q := newReplayQueue(4)
	q.add(queuedMsg{payload: []byte{0}})
	q.add(queuedMsg{payload: []byte{1}})
	q.take()

	// Writes after a take land at the start again.
	q.add(queuedMsg{payload: []byte{2}})
	q.add(queuedMsg{payload: []byte{3}})
	q.add(queuedMsg{payload: []byte{4}})

	msgs, _ := q.take()
	if len(msgs) != 3 {
		t.Fatalf("expected 3 items, got %d", len(msgs))
	}
	for i, want := range []byte{2, 3, 4} {
		if msgs[i].payload[0] != want {
			t.Errorf("item %d: expected payload %d, got %d", i, want, msgs[i].payload[0])
		}
	}
}

func TestReplayQueuePreservesMessageFields(t *testing.T) {
	q := newReplayQueue(2)
	q.add(queuedMsg{topic: TopicSystem, payload: []byte("x"), qos: 1, retained: true})

	msgs, _ := q.take()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 item, got %d", len(msgs))
	}
	m := msgs[0]
	if m.topic != TopicSystem || m.qos != 1 || !m.retained || string(m.payload) != "x" {
		t.Errorf("message fields not preserved: %+v", m)
	}
}
