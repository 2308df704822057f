package notify

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

// Publisher 事件发布出口
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// RedisPublisher 把订单事件广播到 redis 频道
// 推送网关订阅该频道后转发给在线客户端，核心流程不感知网关存在
type RedisPublisher struct {
	rdb     *redis.Client
	channel string
}

func NewRedisPublisher(rdb *redis.Client, channel string) *RedisPublisher {
	return &RedisPublisher{rdb: rdb, channel: channel}
}

func (p *RedisPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.rdb.Publish(ctx, p.channel, payload).Err()
}
