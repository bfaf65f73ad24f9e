package eventbus

import "testing"

func TestBusPublishSubscribe(t *testing.T) {
	bus := New()
	ch := bus.Subscribe()
	bus.Publish("assignment")
	if v := <-ch; v != "assignment" {
		t.Fatalf("expected assignment, got %v", v)
	}
	bus.Unsubscribe(ch)
	if _, ok := <-ch; ok {
		t.Fatal("channel should be closed after unsubscribe")
	}
}

func TestBusPublishAfterClose(t *testing.T) {
	bus := New()
	ch := bus.Subscribe()
	bus.Close()
	bus.Publish("dropped")
	if _, ok := <-ch; ok {
		t.Fatal("channel should be closed")
	}
}

func TestBusSubscribeAfterClose(t *testing.T) {
	bus := New()
	bus.Close()
	ch := bus.Subscribe()
	if _, ok := <-ch; ok {
		t.Fatal("subscription after close should return a closed channel")
	}
}

func TestBusNonBlockingPublish(t *testing.T) {
	bus := New()
	_ = bus.Subscribe()
	for i := 0; i < subscriberBuffer*2; i++ {
		bus.Publish(i) // must not block on a full buffer
	}
}
