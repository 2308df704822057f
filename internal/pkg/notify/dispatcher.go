package notify

import (
	"context"
	"time"

	"bbq_ordering/pkg/logger"

	"go.uber.org/zap"
)

// Dispatcher 异步事件投递器
// 事件入队后立即返回，由后台 worker 负责发布
// 投递失败只记日志不重试：订单正确性不依赖通知是否送达
type Dispatcher struct {
	queue   chan Event
	pub     Publisher
	workers int

	cancel context.CancelFunc
}

func NewDispatcher(pub Publisher, workers, queueSize int) *Dispatcher {
	if workers <= 0 {
		workers = 2
	}
	if queueSize <= 0 {
		queueSize = 1024
	}
	return &Dispatcher{
		queue:   make(chan Event, queueSize),
		pub:     pub,
		workers: workers,
	}
}

// Start 启动投递协程
func (d *Dispatcher) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	for i := 0; i < d.workers; i++ {
		go d.worker(ctx, i)
	}
	if logger.Log != nil {
		logger.Log.Info("notify dispatcher started", zap.Int("workers", d.workers))
	}
}

// Stop 停止投递，队列中未投递的事件丢弃
func (d *Dispatcher) Stop() {
	if d.cancel != nil {
		d.cancel()
	}
}

func (d *Dispatcher) worker(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-d.queue:
			pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := d.pub.Publish(pubCtx, event)
			cancel()
			if err != nil && logger.Log != nil {
				logger.Log.Warn("order event publish failed",
					zap.Int("worker", id),
					zap.String("type", event.Type),
					zap.Uint("user_id", event.UserID),
					zap.Error(err),
				)
			}
		}
	}
}

// enqueue 非阻塞入队，队列满直接丢弃并记日志
func (d *Dispatcher) enqueue(event Event) {
	select {
	case d.queue <- event:
	default:
		if logger.Log != nil {
			logger.Log.Warn("notify queue full, event dropped",
				zap.String("type", event.Type),
				zap.Uint("user_id", event.UserID),
			)
		}
	}
}

// NotifyNewOrder 广播新订单事件（商家端刷新订单列表）
func (d *Dispatcher) NotifyNewOrder(order interface{}) {
	d.enqueue(Event{Type: EventNewOrder, Order: order, At: time.Now()})
}

// NotifyOrderUpdate 推送订单状态变更
func (d *Dispatcher) NotifyOrderUpdate(userID uint, order interface{}) {
	d.enqueue(Event{Type: EventOrderUpdate, UserID: userID, Order: order, At: time.Now()})
}
