package queue

import (
	"context"
	"testing"
	"time"
)

func TestInMemoryPublishConsume(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := NewInMemory(4)
	if err := q.Publish(ctx, Message{Type: "attendance", Body: []byte("id-1|2024-03-05")}); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	ch, err := q.Consume(ctx)
	if err != nil {
		t.Fatalf("Consume: %v", err)
	}

	select {
	case msg := <-ch:
		if msg.Type != "attendance" || string(msg.Body) != "id-1|2024-03-05" {
			t.Errorf("got %q %q", msg.Type, msg.Body)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
	}
}

func TestInMemoryPublishCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	q := NewInMemory(0)
	if err := q.Publish(ctx, Message{Type: "attendance"}); err == nil {
		t.Error("expected context error after cancellation")
	}
}

func TestInMemoryPublishDropsWhenFull(t *testing.T) {
	ctx := context.Background()

	q := NewInMemory(1)
	if err := q.Publish(ctx, Message{Type: "attendance", Body: []byte("kept")}); err != nil {
		t.Fatalf("first publish: %v", err)
	}
	// Full buffer: the message is dropped, the caller is not held up.
	done := make(chan error, 1)
	go func() { done <- q.Publish(ctx, Message{Type: "attendance", Body: []byte("dropped")}) }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("publish on full queue: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full queue")
	}

	consumeCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	ch, err := q.Consume(consumeCtx)
	if err != nil {
		t.Fatalf("Consume: %v", err)
	}
	msg := <-ch
	if string(msg.Body) != "kept" {
		t.Errorf("got %q, want the first message", msg.Body)
	}
}

func TestInMemoryConsumeStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	q := NewInMemory(2)
	if err := q.Publish(ctx, Message{Type: "attendance", Body: []byte("pending")}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	ch, err := q.Consume(ctx)
	if err != nil {
		t.Fatalf("Consume: %v", err)
	}
	cancel()

	// The channel must close even though nothing drained the pending
	// message before cancellation.
	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("consumer did not stop after cancellation")
		}
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	tests := []Message{
		{Type: "attendance", Body: []byte("id-1|2024-03-05")},
		{Type: "attendance", Body: []byte("")},
		{Type: "", Body: []byte("just-a-body")},
	}

	for _, msg := range tests {
		got := deserialize(serialize(msg))
		if got.Type != msg.Type || string(got.Body) != string(msg.Body) {
			t.Errorf("round trip %+v -> %+v", msg, got)
		}
	}
}
