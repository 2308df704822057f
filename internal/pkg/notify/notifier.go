package notify

import "time"

// 事件类型，与前端 websocket 网关约定一致
const (
	EventNewOrder    = "newOrder"
	EventOrderUpdate = "orderUpdate"
)

// Event 订单生命周期事件
type Event struct {
	Type   string      `json:"type"`
	UserID uint        `json:"userId,omitempty"` // 0 表示广播
	Order  interface{} `json:"order"`
	At     time.Time   `json:"at"`
}

// Notifier 通知出口
// 订单核心只调用该接口，不依赖投递是否成功
type Notifier interface {
	NotifyNewOrder(order interface{})
	NotifyOrderUpdate(userID uint, order interface{})
}

// NopNotifier 空实现，测试用
type NopNotifier struct{}

func (NopNotifier) NotifyNewOrder(order interface{}) {}

func (NopNotifier) NotifyOrderUpdate(userID uint, order interface{}) {}
