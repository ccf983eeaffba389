package mqtt

import "testing"

func fill(b *backlog, from, to int) {
	for i := from; i < to; i++ {
		b.add(queuedMsg{topic: Topic, payload: []byte{byte(i)}})
	}
}

func TestBacklogEmptyTake(t *testing.T) {
	b := newBacklog(4)
	got, dropped := b.take()
	if got != nil || dropped != 0 {
		t.Errorf("expected nothing, got %d msgs, %d dropped", len(got), dropped)
	}
}

func TestBacklogKeepsOrder(t *testing.T) {
	tests := []struct {
		name        string
		capacity    int
		n           int
		wantFirst   byte
		wantLen     int
		wantDropped int
	}{
		{"partial", 10, 5, 0, 5, 0},
		{"exactly full", 5, 5, 0, 5, 0},
		{"overflow keeps newest", 5, 8, 3, 5, 3},
		{"overflow wraps twice", 3, 10, 7, 3, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBacklog(tt.capacity)
			fill(b, 0, tt.n)

			got, dropped := b.take()
			if len(got) != tt.wantLen {
				t.Fatalf("len: got %d, want %d", len(got), tt.wantLen)
			}
			if dropped != tt.wantDropped {
				t.Errorf("dropped: got %d, want %d", dropped, tt.wantDropped)
			}
			for i, m := range got {
				if want := tt.wantFirst + byte(i); m.payload[0] != want {
					t.Errorf("msg %d: got %d, want %d", i, m.payload[0], want)
				}
			}
		})
	}
}

func TestBacklogReusableAfterTake(t *testing.T) {
	b := newBacklog(5)
	fill(b, 0, 7)
	b.take()

	fill(b, 10, 14)
	if b.size() != 4 {
		t.Fatalf("size: got %d, want 4", b.size())
	}
	got, dropped := b.take()
	if dropped != 0 {
		t.Errorf("dropped count should reset, got %d", dropped)
	}
	for i, m := range got {
		if want := byte(10 + i); m.payload[0] != want {
			t.Errorf("msg %d: got %d, want %d", i, m.payload[0], want)
		}
	}
	if b.size() != 0 {
		t.Errorf("size after take: got %d", b.size())
	}
}

func TestBacklogPreservesFields(t *testing.T) {
	b := newBacklog(2)
	b.add(queuedMsg{topic: TopicSystem, payload: []byte(`{"x":1}`), qos: 1, retained: true})

	got, _ := b.take()
	if len(got) != 1 {
		t.Fatalf("expected 1 msg, got %d", len(got))
	}
	m := got[0]
	if m.topic != TopicSystem || string(m.payload) != `{"x":1}` || m.qos != 1 || !m.retained {
		t.Errorf("fields not preserved: %+v", m)
	}
}
