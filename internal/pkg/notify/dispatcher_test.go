package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// capturePublisher 收集发布的事件
type capturePublisher struct {
	mu     sync.Mutex
	events []Event
	err    error
	done   chan struct{}
}

func newCapturePublisher(expected int) *capturePublisher {
	return &capturePublisher{done: make(chan struct{}, expected)}
}

func (p *capturePublisher) Publish(ctx context.Context, event Event) error {
	p.mu.Lock()
	p.events = append(p.events, event)
	p.mu.Unlock()
	p.done <- struct{}{}
	return p.err
}

func (p *capturePublisher) wait(t *testing.T, n int) []Event {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-p.done:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for event %d of %d", i+1, n)
		}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Event(nil), p.events...)
}

func TestDispatcherDeliversEvents(t *testing.T) {
	pub := newCapturePublisher(2)
	d := NewDispatcher(pub, 2, 16)
	d.Start()
	defer d.Stop()

	d.NotifyNewOrder(map[string]interface{}{"orderNo": "ORDER1"})
	d.NotifyOrderUpdate(7, map[string]interface{}{"orderNo": "ORDER1"})

	events := pub.wait(t, 2)
	assert.Len(t, events, 2)

	types := map[string]Event{}
	for _, e := range events {
		types[e.Type] = e
	}
	assert.Contains(t, types, EventNewOrder)
	assert.Contains(t, types, EventOrderUpdate)
	assert.Equal(t, uint(0), types[EventNewOrder].UserID)
	assert.Equal(t, uint(7), types[EventOrderUpdate].UserID)
	assert.False(t, types[EventNewOrder].At.IsZero())
}

func TestDispatcherDropsWhenQueueFull(t *testing.T) {
	// 不启动 worker，队列容量 1，第二条直接被丢弃
	pub := newCapturePublisher(1)
	d := NewDispatcher(pub, 1, 1)

	d.NotifyNewOrder("first")
	d.NotifyNewOrder("second")

	assert.Len(t, d.queue, 1)
}

func TestDispatcherIgnoresPublishErrors(t *testing.T) {
	pub := newCapturePublisher(1)
	pub.err = errors.New("redis down")
	d := NewDispatcher(pub, 1, 16)
	d.Start()
	defer d.Stop()

	// 投递失败不 panic 不重试，事件照常消费
	d.NotifyNewOrder("whatever")
	pub.wait(t, 1)
}

func TestDispatcherDefaults(t *testing.T) {
	d := NewDispatcher(newCapturePublisher(0), 0, 0)
	assert.Equal(t, 2, d.workers)
	assert.Equal(t, 1024, cap(d.queue))
}
